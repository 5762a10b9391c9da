package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	labimage "github.com/mmuldo/labpal/image"
	"github.com/mmuldo/labpal/palette"
	"github.com/mmuldo/labpal/theme"
)

var (
	rawInput     bool
	keepOrder    bool
	showPreview  bool
	format       string
	templatePath string
	outputPath   string
	saveName     string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create <image>",
	Aliases: []string{"extract"},
	Short:   "Creates a new theme from image",
	Long: `Extracts a palette from an image and prints it as a theme.

The image may be any png, jpeg, gif, webp or qoi file. With --raw the file is
read as interleaved 8-bit RGB triplets instead, zstd-compressed when its name
ends in .zst.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := create(args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().BoolVar(&rawInput, "raw", false, "read the input as raw RGB8 pixels")
	createCmd.Flags().BoolVar(&keepOrder, "keep-order", false, "keep extraction order instead of assigning roles by darkness")
	createCmd.Flags().BoolVarP(&showPreview, "preview", "p", false, "print a truecolor preview to stderr")
	createCmd.Flags().StringVarP(&format, "format", "f", "hex", fmt.Sprintf("output format, one of %v", theme.Formats()))
	createCmd.Flags().StringVar(&templatePath, "template", "", "render with this pongo2 template instead of --format")
	createCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the output to a file instead of stdout")
	createCmd.Flags().StringVarP(&saveName, "save", "s", "", "save the theme under this name in the themes directory")
}

func create(path string) error {
	pixels, err := loadPixels(path)
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("%s: %d pixels, %d distinct colors", path, len(pixels)/3, len(labimage.GetColors(pixels)))
	}

	result, err := palette.Extract(pixels, extractOptions())
	if err != nil {
		return err
	}

	if verbose {
		log.Printf("%d colors after %d iterations (converged: %t), distinctness %.2f",
			len(result.Swatches), result.Iterations, result.Converged, palette.Distinctness(result.Swatches))
	}

	p := theme.Delegate(result.Swatches)
	if keepOrder {
		p = make(theme.Palette)
		for i, s := range result.Swatches {
			p[i] = s
		}
	}
	t := theme.Create(p, nil)

	if showPreview {
		if err := theme.Preview(os.Stderr, t); err != nil {
			return err
		}
	}

	var o string
	if templatePath != "" {
		o, err = theme.RenderFile(t, templatePath)
	} else {
		o, err = theme.Render(t, format)
	}
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := ioutil.WriteFile(outputPath, []byte(o), 0644); err != nil {
			return err
		}
	} else {
		fmt.Print(o)
	}

	if saveName != "" {
		return theme.Save(themesDir, saveName, t)
	}
	return nil
}

// loadPixels reads path as raw RGB8 or as an image downscaled to max-dimension.
func loadPixels(path string) ([]byte, error) {
	if rawInput {
		return labimage.LoadRaw(path)
	}

	i, err := labimage.Load(path)
	if err != nil {
		return nil, err
	}

	i = labimage.Resize(i, viper.GetInt("max-dimension"))
	return labimage.Pixels(i, 0), nil
}
