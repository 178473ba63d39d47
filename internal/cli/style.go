package cli

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")). // verde
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")). // vermelho
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")). // amarelo
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")) // azul

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // cinza

	boldStyle = lipgloss.NewStyle().Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("#2563EB")).
			Bold(true).
			Padding(0, 1)

	currentPageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2563EB")).
				Bold(true)

	successPrefix = successStyle.Render("✓")
	errorPrefix   = errorStyle.Render("✗")
	warningPrefix = warningStyle.Render("⚠")
	infoPrefix    = infoStyle.Render("→")
)
