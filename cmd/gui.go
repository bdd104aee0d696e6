package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sustainlab/materiality/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the assessment form in a desktop window",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, "gui")
		if err != nil {
			return err
		}
		defer env.Close()

		return gui.Run(gui.Options{
			Session:  env.session,
			StartDir: env.cfg.StartDir(),
			Logger:   env.logger,
		})
	},
}
