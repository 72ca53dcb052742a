package tui

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/nbview/internal/core/config"
	corenb "github.com/hay-kot/nbview/internal/core/notebook"
	"github.com/hay-kot/nbview/internal/tui/testutil"
	"github.com/hay-kot/nbview/pkg/tuitest"
)

// drain runs cmd and feeds the resulting messages back into m.
func drain(t *testing.T, m *NotebookModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case nil:
	default:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

func TestNotebookModel_OpensOnInit(t *testing.T) {
	doc := corenb.NewDocument("mem://nb", []*corenb.Cell{
		corenb.NewMarkdownCell("# Hello"),
		corenb.NewCodeCell("x = 1"),
	})
	resolver := corenb.ResolverFunc(func(_ context.Context, uri string) (*corenb.Document, error) {
		if uri != "mem://nb" {
			return nil, errors.New("unexpected uri")
		}
		return doc, nil
	})

	m := NewNotebook(context.Background(), NotebookOptions{
		Path:     "mem://nb",
		Resolver: resolver,
		Logger:   zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	drain(t, m, m.Init())

	require.Same(t, doc, m.Editor().Document())
	assert.Equal(t, 2, m.Editor().List().Len())

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeCellMotion, v.MouseMode)
	assert.Contains(t, testutil.StripANSI(m.Editor().View()), "x = 1")

	require.NoError(t, m.Close())
	assert.Nil(t, m.Editor().Document())
}

func TestNotebookModel_MouseDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	off := false
	cfg.TUI.Mouse = &off

	m := NewNotebook(context.Background(), NotebookOptions{
		Path:     "mem://none",
		Config:   &cfg,
		Resolver: corenb.ResolverFunc(func(context.Context, string) (*corenb.Document, error) { return nil, errors.New("nope") }),
		Logger:   zerolog.Nop(),
	})

	assert.Equal(t, tea.MouseModeNone, m.View().MouseMode)
}

func TestNotebookModel_CtrlCQuits(t *testing.T) {
	m := NewNotebook(context.Background(), NotebookOptions{Path: "x.ipynb", Logger: zerolog.Nop()})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestNotebookModel_HelpDialog(t *testing.T) {
	doc := corenb.NewDocument("mem://nb", []*corenb.Cell{
		corenb.NewCodeCell("a = 1"),
		corenb.NewCodeCell("b = 2"),
	})
	m := NewNotebook(context.Background(), NotebookOptions{
		Path:     "mem://nb",
		Resolver: corenb.ResolverFunc(func(context.Context, string) (*corenb.Document, error) { return doc, nil }),
		Logger:   zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	drain(t, m, m.Init())

	m.Update(tuitest.Key("?"))
	require.True(t, m.HelpOpen())

	// Keys do not reach the list while help is shown.
	m.Update(tuitest.Key("j"))
	assert.Equal(t, 0, m.Editor().List().Focused())

	view := m.help.Overlay(m.Editor().View(), 60, 24)
	assert.Contains(t, testutil.StripANSI(view), "Keyboard shortcuts")
	assert.Contains(t, testutil.StripANSI(view), "toggle help")

	m.Update(tuitest.Key("esc"))
	assert.False(t, m.HelpOpen())

	m.Update(tuitest.Key("j"))
	assert.Equal(t, 1, m.Editor().List().Focused())
}

func TestNotebookModel_HelpIgnoredWhileEditing(t *testing.T) {
	doc := corenb.NewDocument("mem://nb", []*corenb.Cell{corenb.NewCodeCell("a = 1")})
	m := NewNotebook(context.Background(), NotebookOptions{
		Path:     "mem://nb",
		Resolver: corenb.ResolverFunc(func(context.Context, string) (*corenb.Document, error) { return doc, nil }),
		Logger:   zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	drain(t, m, m.Init())

	m.Update(tuitest.Key("enter"))
	require.True(t, m.Editor().Editing())

	m.Update(tuitest.Key("?"))
	assert.False(t, m.HelpOpen())
}
