package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/pocket-debrief/internal/config"
	"github.com/mattn/go-runewidth"
)

// Design system colors, adapted to the terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	ColorText       lipgloss.Color
	ColorTextMuted  lipgloss.Color
	ColorTextDim    lipgloss.Color
	ColorBorder     lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
)

// Component styles, built by initializeStyles once the palette is known
var (
	StyleTitle     lipgloss.Style
	StyleSubtitle  lipgloss.Style
	StyleText      lipgloss.Style
	StyleTextMuted lipgloss.Style
	StyleTextDim   lipgloss.Style

	StyleFocused    lipgloss.Style
	StyleSelected   lipgloss.Style
	StyleUnselected lipgloss.Style

	StyleButtonPrimary   lipgloss.Style
	StyleButtonSecondary lipgloss.Style

	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleError   lipgloss.Style
	StyleInfo    lipgloss.Style

	StyleModal            lipgloss.Style
	StyleDropdown         lipgloss.Style
	StyleContentContainer lipgloss.Style

	StyleFormLabel        lipgloss.Style
	StyleFormLabelFocused lipgloss.Style
	StyleFormHelp         lipgloss.Style

	StyleEntryDate       lipgloss.Style
	StyleSectionLabel    lipgloss.Style
	StylePlaceholder     lipgloss.Style
	StyleSearchIndicator lipgloss.Style

	StyleScrollIndicator       lipgloss.Style
	StyleScrollIndicatorActive lipgloss.Style
)

// initializeColors picks the palette. A forced theme wins over detection.
func initializeColors(theme string) {
	switch theme {
	case config.ThemeLight:
		setLightThemeColors()
	case config.ThemeDark:
		setDarkThemeColors()
	default:
		if lipgloss.HasDarkBackground() {
			setDarkThemeColors()
		} else {
			setLightThemeColors()
		}
	}
	initializeStyles()
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorInfo = lipgloss.Color("12")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorBackground = lipgloss.Color("235")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorInfo = lipgloss.Color("24")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorBackground = lipgloss.Color("255")
	ColorSurface = lipgloss.Color("254")
}

func initializeStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().Foreground(ColorText)
	StyleTextMuted = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleTextDim = lipgloss.NewStyle().Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorAccent).
		Bold(true).
		Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StyleButtonPrimary = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	StyleButtonSecondary = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorSurface).
		Padding(0, 2).
		MarginRight(1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Padding(0, 1)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Padding(0, 1)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true).Padding(0, 1)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Padding(0, 1)

	StyleModal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	StyleDropdown = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)

	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	StyleFormLabel = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleFormLabelFocused = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleFormHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Italic(true)

	StyleEntryDate = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleSectionLabel = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	StylePlaceholder = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Padding(0, 1)

	StyleSearchIndicator = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Background(ColorSurface).
		Bold(true).
		Padding(0, 1)

	StyleScrollIndicator = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Align(lipgloss.Center)

	StyleScrollIndicatorActive = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Align(lipgloss.Center)
}

// CreateMainHeader renders the page title
func CreateMainHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

// CreateContextualHelp renders the essential key hints on one line, with a
// pointer to the full list when more is available
func CreateContextualHelp(essential []string, hasMore bool, width int) string {
	parts := essential
	if hasMore {
		parts = append(parts, "Ctrl+g for more")
	}
	return StyleTextDim.Render(truncateHelp(strings.Join(parts, " • "), width))
}

func truncateHelp(text string, width int) string {
	if width <= 4 {
		return text
	}
	return runewidth.Truncate(text, width-4, "...")
}

// CreateStatus renders a status line in the style named by statusType
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateButton renders an inline action label
func CreateButton(label string, primary bool) string {
	if primary {
		return StyleButtonPrimary.Render(label)
	}
	return StyleButtonSecondary.Render(label)
}

// CenterModal places content in the middle of the screen
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// AddMainPadding adds the left gutter used by every page
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// CreateScrollIndicators shows whether the log list continues above or below
func CreateScrollIndicators(canScrollUp, canScrollDown bool) (string, string) {
	indicator := func(active bool) string {
		if active {
			return StyleScrollIndicatorActive.Render("...")
		}
		return StyleScrollIndicator.Render("─────────")
	}
	return indicator(canScrollUp), indicator(canScrollDown)
}
