package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderContent renders the main area for the current mode.
func (m Model) renderContent() string {
	var body string
	switch m.mode {
	case modeConfig:
		body = m.renderConfig()
	case modePlaying:
		body = m.renderPlayer()
	case modeIdle:
		body = m.theme.Styles().MutedText.Render(messageIdle)
	default:
		body = m.spinner.View() + " " + m.theme.Styles().MutedText.Render("Connecting to Lanyard...")
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

// renderPlayer shows the current track with a locally advanced progress bar.
func (m Model) renderPlayer() string {
	styles := m.theme.Styles()
	t := m.track
	now := m.now()
	width := maxInt(m.width-4, 20)

	lines := []string{
		styles.Song.Render(truncate(t.Song, width)),
		styles.MutedText.Render("by ") + styles.Text.Render(truncate(t.Artist, width-3)),
	}
	if t.Album != "" {
		lines = append(lines, styles.MutedText.Render("on ")+styles.Text.Render(truncate(t.Album, width-3)))
	}
	lines = append(lines, "")

	elapsed := formatClock(t.Elapsed(now))
	remaining := "-" + formatClock(t.Remaining(now))
	bar := m.progress.ViewAs(t.Progress(now))
	lines = append(lines,
		styles.FaintText.Render(padRight(elapsed, 6))+bar+" "+styles.FaintText.Render(remaining))

	return strings.Join(lines, "\n")
}

// renderConfig shows the Discord ID form.
func (m Model) renderConfig() string {
	styles := m.theme.Styles()

	lines := []string{
		styles.Text.Bold(true).Render("Enter your Discord ID"),
		styles.FaintText.Render("Your presence must be visible to Lanyard (discord.gg/lanyard)."),
		"",
		styles.Input.Render(m.input.View()),
	}
	return strings.Join(lines, "\n")
}
