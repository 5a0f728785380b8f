package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [form-file]",
		Short: "Browse a form's progression and settlement interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := tui.NewModel(args[0], config.ExpandPath(viper.GetString("tables.path")), newEngine())
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
