package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm shows a warning box and asks a yes/no question on in. Only "y" or
// "yes" (any case) counts as agreement; EOF counts as no.
func (p *Printer) Confirm(in io.Reader, title string, warnings []string, question string) bool {
	details := make([]Detail, 0, len(warnings))
	for _, w := range warnings {
		details = append(details, Detail{Key: "•", Value: w})
	}
	p.PrintWarning(title, details)

	p.Print(lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render(question + " [y/N]: "))

	input, err := bufio.NewReader(in).ReadString('\n')
	p.Newline()
	if err != nil && input == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	return false
}

// Confirmf is Confirm with a formatted question
func (p *Printer) Confirmf(in io.Reader, title string, warnings []string, format string, args ...any) bool {
	return p.Confirm(in, title, warnings, fmt.Sprintf(format, args...))
}
