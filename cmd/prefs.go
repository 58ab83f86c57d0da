package cmd

import (
	"fmt"

	"github.com/ouaf/widgets/config"
	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	var (
		smart     bool
		face      bool
		faceModel string
		fps       int
	)

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change stored defaults",
		Long: `Prints the stored preferences. Any flag given is saved first, so later
crop and spin runs start from it.`,
		Example: `  # Frame on faces by default
  widgets prefs --face --face-model ~/models/facefinder`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewAppConfig(newPreferences())
			flags := cmd.Flags()
			if flags.Changed("smart") {
				cfg.SetSmartFraming(smart)
			}
			if flags.Changed("face") {
				cfg.SetFaceFraming(face)
			}
			if flags.Changed("face-model") {
				cfg.SetFaceModelPath(faceModel)
			}
			if flags.Changed("fps") {
				if fps <= 0 {
					return fmt.Errorf("fps must be positive, got %d", fps)
				}
				cfg.SetSpinFPS(fps)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "smart framing: %t\n", cfg.GetSmartFraming())
			fmt.Fprintf(out, "face framing:  %t\n", cfg.GetFaceFraming())
			fmt.Fprintf(out, "face model:    %s\n", cfg.GetFaceModelPath())
			fmt.Fprintf(out, "spin fps:      %d\n", cfg.GetSpinFPS())
			return nil
		},
	}

	cmd.Flags().BoolVar(&smart, "smart", true, "Frame on the most detailed region")
	cmd.Flags().BoolVar(&face, "face", false, "Frame on detected faces")
	cmd.Flags().StringVar(&faceModel, "face-model", "", "pigo facefinder cascade location")
	cmd.Flags().IntVar(&fps, "fps", 60, "Spin animation frame rate")

	return cmd
}
