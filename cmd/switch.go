/*
Copyright © 2019 Matt Muldowney <matt.muldowney@gmail.com>

*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmuldo/labpal/theme"
)

var (
	terminal string
)

// app config files, relative to both the templates directory and $HOME
var apps = map[string]string{
	"termite":    filepath.Join(".config", "termite", "config"),
	"alacritty":  filepath.Join(".config", "alacritty", "colors.yml"),
	"xresources": ".Xresources",
}

// switchCmd represents the switch command
var switchCmd = &cobra.Command{
	Use:   "switch <theme>",
	Short: "Applies a saved theme to an app",
	Long: `Renders a theme saved with 'create --save' through the app's template and
writes the result over the app's config file in $HOME.

Templates are looked up in the templates directory under the same relative path
as the config file, e.g. <templates-dir>/.config/termite/config.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaults()

		target, ok := apps[terminal]
		if !ok {
			fmt.Println(fmt.Errorf("'%s' is not a supported app", terminal))
			os.Exit(1)
		}

		if err := template(target, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)

	switchCmd.Flags().StringVarP(&terminal, "terminal", "t", "", "user terminal")
}

func setDefaults() {
	if terminal == "" {
		terminal = viper.GetString("terminal")
	}
}

func template(relpath string, name string) error {
	t, err := theme.Load(themesDir, name)
	if err != nil {
		return err
	}

	o, err := theme.RenderFile(t, filepath.Join(templatesDir, relpath))
	if err != nil {
		return err
	}

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	dst := filepath.Join(home, relpath)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	return ioutil.WriteFile(dst, []byte(o), 0644)
}
