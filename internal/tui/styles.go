package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/studentportal/profilecli/internal/version"
)

// AppName is shown in the application header
const AppName = "STUDENT PROFILE"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	DefaultWidth     = 80
	DefaultHeight    = 30
	InputWidth       = 40
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	FocusColor     = lipgloss.Color("#34D399") // Emerald - focused field
	SuccessColor   = lipgloss.Color("#43BF6D") // Green
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	ButtonTextOnBg = lipgloss.Color("#1A1A1A") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(FocusColor).
				Bold(true)

	CheckStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// ErrorBannerStyle frames the single form error above the fields
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ErrorColor).
				Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	FocusedButtonStyle = lipgloss.NewStyle().
				Background(FocusColor).
				Foreground(ButtonTextOnBg).
				Bold(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	DetailKeyStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(16)

	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true).
				MarginTop(1)
)

// BuildHeaderContent creates header content with app name and version
func BuildHeaderContent(right string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	if right == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", lipgloss.NewStyle().Foreground(SubtleColor).Render(right))
}

// RenderApplicationContainer wraps a screen with the application header,
// the help footer and an outer border sized to the terminal. Every screen
// uses it.
func RenderApplicationContainer(content, headerRight, footerText string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 2)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(headerRight)),
		contentStyle.Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Render(inner)
}
