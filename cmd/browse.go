package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wavefarer/ndbc/cmd/browse"
)

// browseCmd starts the interactive station browser for a dataset.
var browseCmd = &cobra.Command{
	Use:   "browse [dataset]",
	Short: "Interactively browse stations and their observations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset := viper.GetString("dataset")
		if len(args) > 0 {
			dataset = args[0]
		}

		p := tea.NewProgram(browse.New(newClient(), dataset), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
