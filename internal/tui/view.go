package tui

import (
	"fmt"
	"strings"
)

const panelWidth = 80
const panelWidthForStyle = panelWidth - 2
const panelContentWidth = panelWidth - 6

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	titleText := "  XREMAP-CORE  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	title := strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barRight)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Device:  "))
	b.WriteString(bodyStyle.Render(m.Device))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Rules:   "))
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%d modmap, %d keymap", m.ModmapCount, m.KeymapCount)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Status:  "))
	b.WriteString(m.renderBadge())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Last trigger:"))
	b.WriteString("\n")
	if m.LastTrigger != "" {
		b.WriteString(transcriptStyle.Width(panelContentWidth).Render(m.LastTrigger))
	} else {
		b.WriteString(bodyStyle.Render("(none yet)"))
	}
	b.WriteString("\n\n")

	b.WriteString(quitStyle.Render("Press t to cycle theme, q to quit"))

	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	return borderStyle.Width(panelWidthForStyle).Render(b.String())
}

const debugPanelMaxLines = 8

const (
	colTimeWidth     = 15
	colCategoryWidth = 10
	colSepWidth      = 3
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSepStyle.Render(" │ ")
	rule := debugRuleStyle.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder
	db.WriteString(debugTitleStyle.Render("Debug"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")
	db.WriteString(
		debugHeaderStyle.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeaderStyle.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeaderStyle.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		timeStr := entry.Time
		if len(timeStr) > colTimeWidth {
			timeStr = timeStr[:colTimeWidth]
		}
		cat := entry.Category
		if len(cat) > colCategoryWidth {
			cat = cat[:colCategoryWidth]
		}
		msg := entry.Message
		if len(msg) > colMsgWidth {
			msg = msg[:colMsgWidth-3] + "..."
		}
		db.WriteString("\n")
		db.WriteString(
			debugTimeStyle.Width(colTimeWidth).Render(timeStr) +
				sep +
				debugCategoryStyle.Width(colCategoryWidth).Render(cat) +
				sep +
				debugMsgStyle.Width(colMsgWidth).Render(msg))
	}

	return db.String()
}

func (m Model) renderBadge() string {
	switch m.State {
	case StateSubmap:
		return transcribingBadge.Render("● Sub-map active")
	case StateError:
		errText := m.LastError
		if len(errText) > 50 {
			errText = errText[:50] + "..."
		}
		return errorBadge.Render(fmt.Sprintf("● Error: %s", errText))
	default:
		return idleBadge.Render("● Idle")
	}
}
