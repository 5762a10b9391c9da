package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmuldo/labpal/baseline"
	labimage "github.com/mmuldo/labpal/image"
	"github.com/mmuldo/labpal/palette"
	"github.com/mmuldo/labpal/theme"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <image>",
	Short: "Compares labpal's palette with other quantizers",
	Long: `Extracts a palette with labpal, median cut, plain k-means, prominentcolor's
k-means++ and raw color frequency, and prints each with its distinctness: the
smallest CIEDE2000 difference between two of its colors. Higher is better
separated.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := compare(os.Stdout, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func compare(w io.Writer, path string) error {
	i, err := labimage.Load(path)
	if err != nil {
		return err
	}
	i = labimage.Resize(i, viper.GetInt("max-dimension"))
	pixels := labimage.Pixels(i, 0)

	options := extractOptions()
	result, err := palette.Extract(pixels, options)
	if err != nil {
		return err
	}
	num := result.Options.Size

	means, err := baseline.KMeans(pixels, num)
	if err != nil {
		return err
	}

	prominent, err := baseline.Prominent(i, num)
	if err != nil {
		return err
	}

	rows := []struct {
		method   string
		swatches []palette.Swatch
	}{
		{"labpal", result.Swatches},
		{"median-cut", baseline.MedianCut(i, num)},
		{"k-means", means},
		{"prominentcolor", prominent},
		{"frequency", baseline.Frequent(pixels, num)},
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "method\tdistinctness\tcolors")
	for _, r := range rows {
		hexes := make([]string, len(r.swatches))
		for j, s := range r.swatches {
			hexes[j] = theme.Hex(s.Color)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", r.method, palette.Distinctness(r.swatches), strings.Join(hexes, " "))
	}
	return tw.Flush()
}
