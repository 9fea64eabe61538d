package serverselector

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/config"
)

func TestSelectServer(t *testing.T) {
	servers := []config.Server{
		{Name: "local", Server: `localhost\SQLEXPRESS`, User: "sa"},
		{Name: "prod", Server: "db.internal", User: "reader"},
	}
	m := New(config.DefaultConfig().Theme).Open(servers)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Visible() {
		t.Error("selector visible after enter")
	}
	sel, ok := cmd().(SelectedMsg)
	if !ok || sel.Server.Name != "prod" {
		t.Errorf("msg = %#v, want prod", sel)
	}
}

func TestDeleteServer(t *testing.T) {
	m := New(config.DefaultConfig().Theme).Open([]config.Server{{Name: "local", Server: "localhost"}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if del, ok := cmd().(DeleteMsg); !ok || del.Name != "local" {
		t.Errorf("msg = %#v, want DeleteMsg{local}", del)
	}
}

func TestEmptySelector(t *testing.T) {
	m := New(config.DefaultConfig().Theme).Open(nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on empty list produced a command")
	}
	if m.View() == "" {
		t.Error("visible selector rendered nothing")
	}
}
