package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/egpension/internal/config"
	"github.com/rgehrsitz/egpension/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: egpension-tui <form-file> [tables-file]")
		os.Exit(1)
	}
	formPath := os.Args[1]
	tablesPath := filepath.Join(config.DefaultConfigDir(), "tables.yaml")
	if len(os.Args) > 2 {
		tablesPath = config.ExpandPath(os.Args[2])
	} else if env := os.Getenv("EGPENSION_TABLES_PATH"); env != "" {
		tablesPath = config.ExpandPath(env)
	}

	for _, p := range []string{formPath, tablesPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			fmt.Printf("Error: file not found: %s\n", p)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(formPath, tablesPath, nil),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
