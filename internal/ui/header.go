package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const logoText = "♫ nowplaying"

// renderMain renders header, content and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// badge returns the header badge label for the current state.
func (m Model) badge() string {
	if m.snapshot.IsOffline() {
		return "offline"
	}
	switch m.mode {
	case modeConfig:
		return "configuring"
	case modePlaying:
		return "playing"
	case modeIdle:
		return "idle"
	default:
		return "connecting"
	}
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render(logoText, styles.Logo),
		styles.StatusStyle(m.badge()).Render(strings.ToUpper(m.badge())),
	}

	if id := m.snapshot.Identifier; id != "" {
		parts = append(parts,
			bg.Render("ID", styles.MutedText)+bg.Space()+bg.Render(truncate(id, 24), styles.Text))
	}

	if m.width >= LayoutCompactWidth && !m.snapshot.LastPoll.IsZero() {
		label := "Updated"
		style := styles.MutedText
		if m.snapshot.LastError != nil {
			label = "Last try"
			style = styles.WarningText
		}
		parts = append(parts,
			bg.Render(label, styles.FaintText)+bg.Space()+
				bg.Render(m.snapshot.LastPoll.Format("15:04:05"), style))
	}

	return styles.Header.Width(maxInt(m.width, 1)).Render(bg.Join(parts, "  "))
}

// renderFooter shows the transient status message, or key hints when there
// is none.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch m.status.kind {
	case statusError:
		content = bg.Render(m.status.text, styles.DangerText)
	case statusSuccess:
		content = bg.Render(m.status.text, styles.SuccessText)
	case statusInfo:
		content = bg.Render(m.status.text, styles.InfoText)
	default:
		content = m.renderKeyHints(styles, bg)
	}
	return styles.Footer.Width(maxInt(m.width, 1)).Render(content)
}

func (m Model) renderKeyHints(styles Styles, bg BgStyle) string {
	bindings := m.keys.ShortHelp()
	if m.mode == modeConfig {
		bindings = []key.Binding{m.keys.Submit, m.keys.Cancel}
	}
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints,
			bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return bg.Join(hints, "  ")
}

// renderCompact renders the one-line panel used when the player is folded.
func (m Model) renderCompact() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var line string
	switch m.mode {
	case modePlaying:
		now := m.now()
		line = bg.Render("♫", styles.Logo) + bg.Space() +
			bg.Render(truncate(m.track.Song, 40), styles.Song) +
			bg.Render(" · ", styles.FaintText) +
			bg.Render(truncate(m.track.Artist, 30), styles.MutedText) + bg.Spaces(2) +
			bg.Render(formatClock(m.track.Elapsed(now))+"/"+formatClock(m.track.Duration()), styles.AccentText)
	case modeIdle:
		line = bg.Render("♫", styles.Logo) + bg.Space() + bg.Render("Not playing", styles.MutedText)
	case modeConfig:
		line = bg.Render("♫", styles.Logo) + bg.Space() +
			bg.Render("Discord ID needed, press p to expand", styles.WarningText)
	default:
		line = bg.Render("♫", styles.Logo) + bg.Space() + bg.Render("Connecting...", styles.MutedText)
	}
	if m.status.kind == statusError {
		line += bg.Spaces(2) + bg.Render(truncate(m.status.text, 40), styles.DangerText)
	}
	return lipgloss.NewStyle().Width(maxInt(m.width, 1)).Render(bg.FillLine(line, maxInt(m.width, 1)))
}
