/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmuldo/labpal/palette"
)

var (
	cfgFile      string
	themesDir    string
	templatesDir string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labpal",
	Short: "Extracts representative color palettes from images",
	Long: `labpal picks a small set of colors that summarize an image.

Pixels are binned into a perceptual (CIELAB) histogram, well separated seed
colors are chosen from it and refined with a weighted k-means. The palette can
be printed in several formats, saved as a theme and rendered into application
config files with templates.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/labpal/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log extraction details")
	flags.IntP("size", "n", 5, "number of palette colors")
	flags.Int("workers", 0, "goroutines used for extraction (0 picks one per CPU)")
	flags.Int("max-iterations", 300, "k-means iteration cap")
	flags.Int("max-dimension", 400, "downscale images so their longest side is at most this many pixels (0 keeps full size)")
	flags.String("themes-dir", "", "directory holding saved themes (default is $HOME/.config/labpal/themes)")
	flags.String("templates-dir", "", "directory holding app templates (default is $HOME/.config/labpal/templates)")

	if err := bindFlags(rootCmd, "size", "workers", "max-iterations", "max-dimension", "themes-dir", "templates-dir"); err != nil {
		log.Fatal(err)
	}
}

// bindFlags makes cmd's persistent flags the lowest priority source of the viper keys of the same name.
func bindFlags(cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("bind %s: no such flag", name)
		}
		if err := viper.BindPFlag(name, flag); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatal(err)
	}
	configDir := filepath.Join(home, ".config", "labpal")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("labpal")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		log.Println("using config file:", viper.ConfigFileUsed())
	}

	themesDir = configuredDir("themes-dir", filepath.Join(configDir, "themes"))
	templatesDir = configuredDir("templates-dir", filepath.Join(configDir, "templates"))
}

func configuredDir(key string, fallback string) string {
	dir := viper.GetString(key)
	if dir == "" {
		return fallback
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		log.Fatal(err)
	}
	return expanded
}

// extractOptions collects the palette options from flags, config and environment.
func extractOptions() palette.Options {
	return palette.Options{
		Size:          viper.GetInt("size"),
		Workers:       viper.GetInt("workers"),
		MaxIterations: viper.GetInt("max-iterations"),
	}
}
