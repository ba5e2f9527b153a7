package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/raysh454/apiprobe/internal/model"
)

var styleTitle = lipgloss.NewStyle().
	Bold(true).
	PaddingBottom(1)

var styleLabel = lipgloss.NewStyle().
	Bold(true).
	Width(10)

var styleHeading = lipgloss.NewStyle().Bold(true)

var styleSelected = lipgloss.NewStyle().
	Bold(true).
	Reverse(true).
	PaddingLeft(1).
	PaddingRight(1)

var styleOption = lipgloss.NewStyle().
	PaddingLeft(1).
	PaddingRight(1)

var styleURL = lipgloss.NewStyle().Faint(true)

var styleHelp = lipgloss.NewStyle().Faint(true)

var styleDefault = lipgloss.NewStyle().
	Bold(true)

var style2xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#04B575"))

var style3xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FDD835"))

var style4xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFA726"))

var style5xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF7043"))

var styleFailure = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF5F5F"))

var styleAdded = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))

var styleRemoved = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7043"))

// StatusStyle picks the colour band for a status code.
func StatusStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return style2xx
	case code >= 300 && code < 400:
		return style3xx
	case code >= 400 && code < 500:
		return style4xx
	case code >= 500 && code < 600:
		return style5xx
	}
	return styleDefault
}

// OutcomeStyle colours a whole outcome: failures red, responses by band.
func OutcomeStyle(out model.Outcome) lipgloss.Style {
	if out.Response == nil {
		return styleFailure
	}
	return StatusStyle(out.Response.StatusCode)
}
