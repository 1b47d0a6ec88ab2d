package main

import (
	"fmt"
	"os"

	"github.com/minigit-vcs/minigit/cmd/ui"
	"github.com/minigit-vcs/minigit/pkg/repository/repo"
)

// findRepository finds the repository containing the current directory
func findRepository() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	r, err := repo.Discover(cwd)
	if err != nil {
		return nil, fmt.Errorf("not a minigit repository (or any parent up to mount point)")
	}
	return r, nil
}

// Color functions for terminal output
func colorGreen(s string) string {
	return fmt.Sprintf("\033[32m%s\033[0m", s)
}

func colorRed(s string) string {
	return fmt.Sprintf("\033[31m%s\033[0m", s)
}

func colorYellow(s string) string {
	return fmt.Sprintf("\033[33m%s\033[0m", s)
}

func colorCyan(s string) string {
	return fmt.Sprintf("\033[36m%s\033[0m", s)
}

func colorMagenta(s string) string {
	return fmt.Sprintf("\033[35m%s\033[0m", s)
}

// renderHeader renders a banner-style section header
func renderHeader(text string) string {
	return ui.Header(text)
}
