package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/control"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/palette"
	"github.com/san-kum/harmograph/internal/render"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, palette.RGB555(10, 0, 0))
	c.Set(3, 3, palette.RGB555(0, 0, 5))
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	if !c.Lit(0, 0) || c.Lit(1, 0) || c.Lit(-1, 0) || c.Lit(4, 0) {
		t.Error("Lit disagrees with Set")
	}
	c.Set(99, 99, palette.RGB555(31, 31, 31))

	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvasKeepsBrightestColour(t *testing.T) {
	c := NewCanvas(1, 1)
	dim := palette.RGB555(2, 2, 2)
	bright := palette.RGB555(30, 30, 30)
	c.Set(0, 0, bright)
	c.Set(1, 1, dim)
	if c.Colour[0][0] != bright {
		t.Errorf("expected brightest colour, got %#04x", c.Colour[0][0])
	}
}

func TestCanvasFromBuffer(t *testing.T) {
	b := buffer.New(8, 8)
	b.Set(0, 0, palette.RGB555(31, 0, 0))
	b.Set(7, 7, palette.RGB555(0, 31, 0))
	b.Set(4, 4, 0x7FFF) // unlit

	c := NewCanvas(2, 1) // 4x4 dots, half resolution
	c.FromBuffer(b)
	if !c.Lit(0, 0) || !c.Lit(3, 3) {
		t.Error("corners should be lit")
	}
	if c.Lit(2, 2) {
		t.Error("pixel without the control bit should not be drawn")
	}
	if !strings.Contains(c.Styled(""), "⠁") {
		t.Error("styled output lost the cell")
	}
}

func TestKeyStateEdgesAndHold(t *testing.T) {
	s := NewKeyState()
	if s.Key("x") {
		t.Error("unmapped key accepted")
	}
	s.Key(" ")
	in := s.Frame()
	if in.Pressed != control.Pause || in.Held != control.Pause {
		t.Fatalf("expected pause press, got %+v", in)
	}

	s.Key("left")
	if in = s.Frame(); in.Pressed != control.PanLeft {
		t.Fatalf("expected pan press, got %+v", in)
	}
	// autorepeat while held: no new press
	s.Key("left")
	in = s.Frame()
	if in.Pressed != 0 || !in.Held.Has(control.PanLeft) {
		t.Errorf("autorepeat should not press again, got %+v", in)
	}

	for i := 0; i < holdFrames; i++ {
		in = s.Frame()
	}
	if in.Held != 0 {
		t.Errorf("key should be released after the hold window, got %v", in.Held)
	}

	s.Key(" ")
	if in = s.Frame(); in.Pressed != control.Pause {
		t.Error("a fresh event after release should press again")
	}
}

func TestKeyStateDoubleTapToggles(t *testing.T) {
	s := NewKeyState()
	presses := 0
	for _, tap := range []bool{true, false, false, true, false} {
		if tap {
			s.Key("t")
		}
		if s.Frame().Pressed.Has(control.Trails) {
			presses++
		}
	}
	if presses != 2 {
		t.Errorf("expected two trails presses inside the hold window, got %d", presses)
	}
}

func TestKeyStateShiftIsFast(t *testing.T) {
	s := NewKeyState()
	s.Key("shift+left")
	if in := s.Frame(); !in.Held.Has(control.PanLeft | control.Fast) {
		t.Errorf("expected fast pan, got %v", in.Held)
	}
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		cols, rows   int
		wantC, wantR int
	}{
		{200, 24, 64, 24},
		{40, 60, 40, 15},
		{2, 2, defaultCols, defaultRows},
	}
	for _, tt := range tests {
		c, r := fitCanvas(tt.cols, tt.rows, 256, 192)
		if c != tt.wantC || r != tt.wantR {
			t.Errorf("fitCanvas(%d,%d) = %d,%d want %d,%d", tt.cols, tt.rows, c, r, tt.wantC, tt.wantR)
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	seen := map[string]bool{}
	name := Themes[0].Name
	for range Themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if len(seen) != len(ThemeNames()) {
		t.Errorf("NextTheme should visit every theme, saw %v", seen)
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8); got != "▁▂▃▄▅▆▇█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if got := sparkline(nil, 3); got != "───" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
	if got := meter(0.5, 4); got != "[==--]" {
		t.Errorf("unexpected meter %q", got)
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStepsEngine(t *testing.T) {
	e := engine.New(engine.DefaultOptions())
	var tm tea.Model = NewModel(e, Options{OutDir: t.TempDir()})

	tm, _ = tm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	tm, _ = tm.Update(TickMsg{})
	if e.Frames() != 1 {
		t.Fatalf("expected one frame, got %d", e.Frames())
	}

	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeySpace})
	tm, _ = tm.Update(TickMsg{})
	if !e.Params().Paused() {
		t.Error("space should pause")
	}

	tm, _ = tm.Update(runeKey("m"))
	if e.Renderer().ColourMode() != render.ColourMono {
		t.Error("m should switch to mono")
	}

	tm, _ = tm.Update(runeKey("c"))
	if tm.(Model).theme.Name != Themes[1].Name {
		t.Error("c should cycle the theme")
	}

	view := tm.View()
	for _, want := range []string{"HARMOGRAPH", "PAUSED", "Speed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	tm, _ = tm.Update(runeKey("?"))
	if !strings.Contains(tm.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}

	_, cmd := tm.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
}

func TestModelScreenshotAndRecording(t *testing.T) {
	dir := t.TempDir()
	e := engine.New(engine.DefaultOptions())
	var tm tea.Model = NewModel(e, Options{OutDir: dir, ExportScale: 1})

	tm, _ = tm.Update(TickMsg{})
	tm, _ = tm.Update(runeKey("p"))
	if msg := tm.(Model).message; !strings.HasPrefix(msg, "saved ") {
		t.Fatalf("screenshot failed: %s", msg)
	}

	tm, _ = tm.Update(runeKey("g"))
	for i := 0; i < 3; i++ {
		tm, _ = tm.Update(TickMsg{})
	}
	tm, _ = tm.Update(runeKey("g"))
	if msg := tm.(Model).message; !strings.Contains(msg, "(3 frames)") {
		t.Errorf("recording not saved: %s", msg)
	}
}

func TestMenuStartsLiveView(t *testing.T) {
	var tm tea.Model = NewMenu(Options{})
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyDown})
	want := tm.(Menu).Selected()

	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("starting a preset should schedule a tick")
	}
	if !strings.Contains(tm.View(), strings.ToUpper(want)) {
		t.Errorf("live view should show the preset name %q", want)
	}
}
