// Package ux renders errors and confirmations for the terminal.
package ux

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/srbarik25/opsagent/internal/classify"
	"github.com/srbarik25/opsagent/internal/devops"
)

var (
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Family returns the user-facing error family label.
func Family(err error) string {
	var classified *classify.Error
	if errors.As(err, &classified) {
		switch classified.Provider {
		case "aws":
			return "AWS Error"
		case "github":
			return "GitHub Error"
		}
	}
	if errors.Is(err, devops.ErrNoCredentials) {
		return "Credential Error"
	}
	return "Unexpected Error"
}

// PrintError writes the three-line error rendering: a red family header, the
// message, and a yellow suggestion when the error carries one.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(w, errorStyle.Render("ERROR: "+Family(err)))

	var classified *classify.Error
	if errors.As(err, &classified) {
		fmt.Fprintln(w, classified.Message)
		if classified.Suggestion != "" {
			fmt.Fprintln(w, suggestionStyle.Render("SUGGESTION: "+classified.Suggestion))
		}
		return
	}

	fmt.Fprintln(w, err.Error())
	if errors.Is(err, devops.ErrNoCredentials) {
		fmt.Fprintln(w, suggestionStyle.Render(
			"SUGGESTION: Run 'opsagent auth login' or set the provider's credential environment variables."))
	}
}
