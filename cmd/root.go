// Package cmd is the widgets command line: batch cropping through the crop
// pipeline, a terminal rendition of the spin animation and preference editing.
package cmd

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/ouaf/widgets/config"
	"github.com/spf13/cobra"
)

// newPreferences opens the persistent preference store. Tests swap it for an
// in-memory store.
var newPreferences = func() fyne.Preferences {
	return app.NewWithID(config.AppID).Preferences()
}

// NewRootCmd builds the widgets command tree.
func NewRootCmd() *cobra.Command {
	var tuningPath string

	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Image crop pipeline and spin animation tools",
		Long: `Widgets drives the page widgets headlessly.

The crop command runs picked images through the same crop pipeline a page
uses and writes the re-encoded results. The spin command plays the badge
animation and can trace every frame. The prefs command edits the stored
defaults both commands start from.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&tuningPath, "tuning", "", "YAML tuning file (default $"+config.TuningEnvVar+", else built-in values)")

	cmd.AddCommand(newCropCmd(&tuningPath))
	cmd.AddCommand(newSpinCmd(&tuningPath))
	cmd.AddCommand(newPrefsCmd())

	return cmd
}
