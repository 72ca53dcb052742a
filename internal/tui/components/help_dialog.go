// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/nbview/internal/core/styles"
)

// HelpSection groups related bindings under a title.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists key bindings in a bordered box.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections ...HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the dialog.
func (h *HelpDialog) View() string {
	keyStyle := styles.CommandHeaderStyle.Width(keyColumnWidth(h.sections))
	separator := styles.DividerStyle.Render(strings.Repeat("─", 24))

	lines := []string{styles.CommandHeaderStyle.Render(h.title)}
	for _, section := range h.sections {
		lines = append(lines, "")
		if section.Title != "" {
			lines = append(lines, styles.TextMutedStyle.Render(section.Title), separator)
		}
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, keyStyle.Render(help.Key)+styles.MenuItemStyle.Render(help.Desc))
		}
	}
	lines = append(lines, "", styles.TextMutedStyle.Render("esc/? close"))

	return styles.MenuStyle.Render(strings.Join(lines, "\n"))
}

// Overlay centers the dialog over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func keyColumnWidth(sections []HelpSection) int {
	w := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			w = max(w, lipgloss.Width(b.Help().Key))
		}
	}
	return w + 2
}
