package notebook

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hay-kot/nbview/internal/core/styles"
)

// ErrUnknownAction is returned when selecting an action the open menu
// does not offer.
var ErrUnknownAction = errors.New("unknown menu action")

type menuBounds struct {
	x, y, w, h int
}

func (b menuBounds) contains(p Point) bool {
	return p.X >= b.x && p.X < b.x+b.w && p.Y >= b.y && p.Y < b.y+b.h
}

// ContextMenu is a small popup list of actions anchored at a screen point.
type ContextMenu struct {
	open    bool
	anchor  Point
	actions []MenuAction
	cursor  int
	bounds  menuBounds
	keys    MenuKeyMap
}

var _ ContextMenuService = (*ContextMenu)(nil)

// NewContextMenu creates a closed menu.
func NewContextMenu() *ContextMenu {
	return &ContextMenu{keys: DefaultMenuKeyMap()}
}

// Show opens the menu at anchor with actions.
func (m *ContextMenu) Show(anchor Point, actions []MenuAction) {
	m.open = len(actions) > 0
	m.anchor = anchor
	m.actions = actions
	m.cursor = 0
	m.bounds = menuBounds{}
}

// IsOpen reports whether the menu is showing.
func (m *ContextMenu) IsOpen() bool { return m.open }

// Close hides the menu.
func (m *ContextMenu) Close() {
	m.open = false
	m.actions = nil
}

// Anchor returns the point the menu was opened at.
func (m *ContextMenu) Anchor() Point { return m.anchor }

// Actions returns the offered actions.
func (m *ContextMenu) Actions() []MenuAction { return m.actions }

// Select runs the action with id and closes the menu.
func (m *ContextMenu) Select(id string) error {
	for _, a := range m.actions {
		if a.ID == id {
			m.Close()
			return a.Run()
		}
	}
	return ErrUnknownAction
}

// HandleKey processes a key while the menu is open. It reports whether the
// key was consumed.
func (m *ContextMenu) HandleKey(msg tea.KeyPressMsg) (bool, error) {
	if !m.open {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.actions)) % len(m.actions)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.actions)
	case key.Matches(msg, m.keys.Select):
		return true, m.Select(m.actions[m.cursor].ID)
	case key.Matches(msg, m.keys.Close):
		m.Close()
	}
	return true, nil
}

// HandleClick runs the item under p. A click outside the menu closes it
// and is not consumed.
func (m *ContextMenu) HandleClick(p Point) (bool, error) {
	if !m.open {
		return false, nil
	}
	if !m.bounds.contains(p) {
		m.Close()
		return false, nil
	}

	// Rows inside the rounded border.
	item := p.Y - m.bounds.y - 1
	if item < 0 || item >= len(m.actions) {
		return true, nil
	}
	return true, m.Select(m.actions[item].ID)
}

// View renders the menu box.
func (m *ContextMenu) View() string {
	lines := make([]string, len(m.actions))
	for i, a := range m.actions {
		if i == m.cursor {
			lines[i] = styles.MenuItemActiveStyle.Render(a.Label)
		} else {
			lines[i] = styles.MenuItemStyle.Render(a.Label)
		}
	}
	return styles.MenuStyle.Render(strings.Join(lines, "\n"))
}

// Overlay draws the menu over background, below its anchor and kept inside
// width x height.
func (m *ContextMenu) Overlay(background string, width, height int) string {
	if !m.open {
		return background
	}

	menu := m.View()
	w, h := lipgloss.Width(menu), lipgloss.Height(menu)
	x := min(max(m.anchor.X, 0), max(width-w, 0))
	y := m.anchor.Y + 1
	if y+h > height {
		y = max(m.anchor.Y-h, 0)
	}
	m.bounds = menuBounds{x: x, y: y, w: w, h: h}

	bgLayer := lipgloss.NewLayer(background)
	menuLayer := lipgloss.NewLayer(menu)
	menuLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, menuLayer).Render()
}
