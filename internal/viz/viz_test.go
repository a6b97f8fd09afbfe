package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/experiment"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Pixels(); w != 4 || h != 4 {
		t.Fatalf("expected 4x4 pixels, got %dx%d", w, h)
	}
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestDrawProfile(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawProfile([]float64{0, 1, 0}, 1)

	// Peak in the middle lands on the top row.
	if c.Grid[0][4]|c.Grid[0][5] == 0x2800 {
		t.Error("expected the peak on the top row")
	}
	// Both ends sit on the bottom row.
	if c.Grid[1][0]&pixelMap[3][0] == 0 || c.Grid[1][9]&pixelMap[3][1] == 0 {
		t.Error("expected the ends on the bottom row")
	}

	flat := NewCanvas(4, 1)
	flat.DrawProfile([]float64{0, 0}, 0)
	if !strings.ContainsRune(flat.String(), 0x28C0) {
		t.Errorf("expected a bottom line, got %q", flat.String())
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("missing").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	th := Themes[0]
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != Themes[0].Name {
		t.Errorf("cycling through all themes should return to the start, got %s", th.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestModelAdvances(t *testing.T) {
	cfg := config.GetPreset("pulse")
	e, err := experiment.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Setup(); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewModel(e, cfg.Name, 3)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	for i := 0; i < 3; i++ {
		m, _ = m.Update(TickMsg{})
	}

	if got := e.Simulation().Steps; got != 3 {
		t.Errorf("expected 3 steps, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "DONE") {
		t.Errorf("expected DONE status in view:\n%s", view)
	}
	if !strings.Contains(view, "total_energy") {
		t.Error("expected metrics in view")
	}
	if m.(Model).Err() != nil {
		t.Errorf("unexpected error %v", m.(Model).Err())
	}
}
