package viz

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/export"
	"github.com/san-kum/harmograph/internal/render"
)

const (
	panelWidth      = 36
	historyCapacity = 120
	defaultCols     = 64
	defaultRows     = 24
)

type TickMsg time.Time

// Options configures the terminal front end.
type Options struct {
	FPS    int
	Theme  string
	Title  string
	OutDir string
	// ExportScale enlarges screenshots and recordings.
	ExportScale int
}

// Model drives an engine from bubbletea ticks and draws its front buffer
// as coloured braille.
type Model struct {
	engine   *engine.Engine
	ctx      context.Context
	keys     *KeyState
	canvas   *Canvas
	theme    Theme
	st       styles
	opts     Options
	last     engine.FrameStats
	frameMs  []float64
	litHist  []float64
	rec      *export.Recorder
	showHelp bool
	message  string
	err      error
}

func NewModel(e *engine.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "harmograph"
	}
	if opts.ExportScale < 1 {
		opts.ExportScale = 2
	}
	theme := GetTheme(opts.Theme)
	return Model{
		engine:  e,
		ctx:     context.Background(),
		keys:    NewKeyState(),
		canvas:  NewCanvas(defaultCols, defaultRows),
		theme:   theme,
		st:      newStyles(theme),
		opts:    opts,
		frameMs: make([]float64, 0, historyCapacity),
		litHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Err reports the error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Update handles input events and steps the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stopRecording()
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "c":
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case "m":
			r := m.engine.Renderer()
			if r.ColourMode() == render.ColourTable {
				r.SetColourMode(render.ColourMono)
			} else {
				r.SetColourMode(render.ColourTable)
			}
		case "g":
			if m.rec != nil {
				m.stopRecording()
			} else {
				m.rec = export.NewRecorder(m.opts.ExportScale, 0)
				m.message = "recording"
			}
		case "p":
			m.screenshot()
		default:
			m.keys.Key(msg.String())
		}
	case tea.WindowSizeMsg:
		w, h := m.engine.Size()
		cols, rows := fitCanvas(msg.Width-panelWidth-4, msg.Height-1, w, h)
		m.canvas = NewCanvas(cols, rows)
	case TickMsg:
		fs, err := m.engine.Step(m.ctx, m.keys.Frame())
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.last = fs
		front := m.engine.Front()
		m.frameMs = pushHistory(m.frameMs, float64(fs.Draw)/float64(time.Millisecond))
		m.litHist = pushHistory(m.litHist, float64(fs.Render.Painted))
		m.canvas.FromBuffer(front)
		if m.rec != nil {
			m.rec.Add(front)
		}
		return m, m.tick()
	}
	return m, nil
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// fitCanvas picks the largest cell grid inside cols x rows that keeps the
// buffer aspect ratio, assuming cells twice as tall as wide.
func fitCanvas(cols, rows, bufW, bufH int) (int, int) {
	if cols < 8 || rows < 4 {
		return defaultCols, defaultRows
	}
	// A cell is 2x4 dots, so square dots need cols*2/bufW == rows*4/bufH.
	c := rows * 2 * bufW / bufH
	if c <= cols {
		return c, rows
	}
	return cols, cols * bufH / (2 * bufW)
}

func (m *Model) outPath(ext string) string {
	name := fmt.Sprintf("harmograph_%s.%s", time.Now().Format("20060102_150405"), ext)
	return filepath.Join(m.opts.OutDir, name)
}

func (m *Model) screenshot() {
	path := m.outPath("png")
	if err := export.WriteFile(path, m.engine.Front(), m.opts.ExportScale); err != nil {
		m.message = err.Error()
		log.Printf("screenshot: %v", err)
		return
	}
	m.message = "saved " + path
	log.Printf("saved %s", path)
}

func (m *Model) stopRecording() {
	if m.rec == nil {
		return
	}
	rec := m.rec
	m.rec = nil
	if rec.Len() == 0 {
		return
	}
	path := m.outPath("gif")
	f, err := os.Create(path)
	if err != nil {
		m.message = err.Error()
		return
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		m.message = err.Error()
		log.Printf("record: %v", err)
		return
	}
	m.message = fmt.Sprintf("saved %s (%d frames)", path, rec.Len())
	log.Printf("saved %s (%d frames)", path, rec.Len())
}

func (m Model) status() string {
	p := m.engine.Params()
	var parts []string
	switch {
	case p.Paused():
		parts = append(parts, m.st.paused.Render("PAUSED"))
	default:
		parts = append(parts, m.st.running.Render("RUNNING"))
	}
	if p.Trails {
		parts = append(parts, m.st.paused.Render("TRAILS"))
	}
	if m.rec != nil {
		parts = append(parts, m.st.recording.Render(fmt.Sprintf("REC %d", m.rec.Len())))
	}
	return strings.Join(parts, " ")
}

func (m Model) row(label, value string) string {
	return m.st.label.Render(label) + m.st.value.Render(value) + "\n"
}

// View renders the TUI interface.
func (m Model) View() string {
	var mono lipgloss.Color
	if m.engine.Renderer().ColourMode() == render.ColourMono {
		mono = m.theme.Trace
	}
	canvasView := m.st.canvas.Render(m.canvas.Styled(mono))

	p := m.engine.Params()
	var s strings.Builder
	s.WriteString(m.st.header.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.frameMs) > 1 {
		chart := asciigraph.Plot(m.frameMs, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption("frame ms"))
		s.WriteString(m.st.graph.Render(chart) + "\n\n")
	}

	s.WriteString(m.row("Speed", fmt.Sprintf("%d", p.Speed)))
	s.WriteString(m.row("Scale", fmt.Sprintf("%s %d", meter(float64(p.Scale)/float64(m.engine.Controller().MaxScale), 10), p.Scale)))
	s.WriteString(m.row("Pan", fmt.Sprintf("%+d, %+d", p.PanX, p.PanY)))
	s.WriteString(m.row("Time", fmt.Sprintf("%d", m.engine.Time())))
	s.WriteString(m.row("Frame", fmt.Sprintf("%d", m.engine.Frames())))
	s.WriteString(m.row("Buffers", modeName(m.engine.Mode())))
	s.WriteString(m.row("Painted", fmt.Sprintf("%d/%d", m.last.Render.Painted, m.last.Render.Samples)))
	s.WriteString(m.row("", m.st.graph.Render(sparkline(m.litHist, panelWidth-14))))
	if rep := m.engine.Report(); rep.Frames > 0 {
		s.WriteString(m.row("Timing", rep.String()))
	}
	s.WriteString(m.row("Theme", m.theme.Name))

	if m.message != "" {
		s.WriteString("\n" + m.st.value.Render(m.message) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + m.st.recording.Render(m.err.Error()) + "\n")
	}
	s.WriteString(m.st.help.Render("─────────────────────\nSP:Pause T:Trails R:Reset\n+/-:Zoom [/]:Speed Q:Quit\nC:Theme G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func modeName(md buffer.Mode) string {
	if md == buffer.ModeAccumulate {
		return "single (trails)"
	}
	return "double"
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows/HJKL  - Pan (Shift: faster)  ║
║  + / -        - Zoom in / out        ║
║  ] / [        - Speed up / down      ║
║  } / {        - Speed, large steps   ║
║  Space        - Pause / resume       ║
║  T            - Toggle trails        ║
║  R / 0        - Reset view           ║
║  M            - Colour / mono        ║
║  C            - Cycle themes         ║
║  P            - Save PNG             ║
║  G            - Toggle GIF recording ║
║  ?            - Toggle this help     ║
║  Q            - Quit                 ║
╚══════════════════════════════════════╝`

// Run starts the terminal front end and blocks until it exits.
func Run(e *engine.Engine, opts Options) error {
	final, err := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
