package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/harmograph/internal/config"
	"github.com/san-kum/harmograph/internal/engine"
)

var presetInfo = map[string]string{
	"classic": "256 curves, step 4, the original demo",
	"dense":   "512 curves, step 2",
	"sparse":  "few curves, short tails, fast",
	"zoomed":  "double scale, no circular mask",
	"trails":  "accumulating paint, slow",
	"mono":    "single colour",
}

// Menu lets the user pick a preset before the live view starts.
type Menu struct {
	presets []string
	cursor  int
	opts    Options
	st      styles
	live    *Model
	err     error
}

func NewMenu(opts Options) Menu {
	return Menu{
		presets: config.ListPresets(),
		opts:    opts,
		st:      newStyles(GetTheme(opts.Theme)),
	}
}

func (m Menu) Init() tea.Cmd { return nil }

// Selected returns the highlighted preset name.
func (m Menu) Selected() string { return m.presets[m.cursor] }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(m.Selected())
	e, err := engine.FromConfig(cfg, nil)
	if err != nil {
		m.err = err
		return m, nil
	}
	opts := m.opts
	opts.Title = "harmograph · " + m.Selected()
	if opts.Theme == "" {
		opts.Theme = cfg.Theme
	}
	live := NewModel(e, opts)
	m.live = &live
	return m, live.Init()
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}
	var s strings.Builder
	s.WriteString(m.st.header.Render("HARMOGRAPH") + "\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-8s %s", name, presetInfo[name])
		if i == m.cursor {
			s.WriteString(m.st.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + m.st.value.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + m.st.recording.Render(m.err.Error()) + "\n")
	}
	s.WriteString(m.st.help.Render("↑↓:Select  Enter:Start  Q:Quit"))
	return s.String()
}

func RunMenu(opts Options) error {
	final, err := tea.NewProgram(NewMenu(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Menu); ok && m.live != nil {
		return m.live.Err()
	}
	return nil
}
