package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/paint"
	"github.com/san-kum/lifesim/internal/sim"
)

// Screen layout: two header lines and a blank line above the grid, a
// one-column left margin, and two terminal columns per cell.
const (
	gridTop   = 3
	gridLeft  = 1
	cellWidth = 2

	chartHeight   = 6
	maxChartWidth = 72
)

type Options struct {
	Theme   string
	Density float64
	History int
}

// changeMsg signals that the controller state was replaced.
type changeMsg struct{}

type Model struct {
	ctrl    *sim.Controller
	painter *paint.Painter
	history *sim.History
	changes chan struct{}
	done    chan struct{}
	stop    func()

	snap    sim.Snapshot
	density float64
	theme   int
	st      styles
	preset  int
	status  string
	failed  bool

	width, height int
}

// New wires a model to ctrl. The controller's observers feed a one-slot
// channel so timer ticks never block on the UI.
func New(ctrl *sim.Controller, opts Options) Model {
	if opts.Density <= 0 {
		opts.Density = life.DefaultDensity
	}
	if opts.History <= 0 {
		opts.History = 120
	}
	done := make(chan struct{})
	m := Model{
		ctrl:    ctrl,
		painter: paint.New(ctrl),
		history: sim.NewHistory(opts.History),
		changes: make(chan struct{}, 1),
		done:    done,
		stop:    sync.OnceFunc(func() { close(done) }),
		density: opts.Density,
		theme:   themeIndex(opts.Theme),
		width:   80,
		height:  24,
	}
	m.st = newStyles(Themes[m.theme])
	ctrl.AddObserver(m.history)
	ctrl.AddObserver(sim.ObserverFunc(func(sim.Snapshot) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}))
	m.snap = ctrl.Snapshot()
	m.history.OnChange(m.snap)
	return m
}

// waitForChange returns nil once done is closed, ending the listener.
func waitForChange(ch, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return changeMsg{}
		case <-done:
			return nil
		}
	}
}

func (m Model) Init() tea.Cmd { return waitForChange(m.changes, m.done) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m = m.handleMouse(msg)
		return m, nil
	case tea.BlurMsg:
		// losing focus mid-drag ends the gesture, like a pointer cancel
		m.painter.Cancel()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case changeMsg:
		m.snap = m.ctrl.Snapshot()
		return m, waitForChange(m.changes, m.done)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.status, m.failed = "", false

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.painter.Release()
		m.ctrl.Close()
		m.stop()
		return m, tea.Quit
	case "s":
		m.ctrl.Start()
	case "x":
		m.ctrl.Stop()
	case " ", "space", "enter":
		if m.ctrl.Snapshot().Running {
			m.ctrl.Stop()
		} else {
			m.ctrl.Start()
		}
	case "n", "right":
		if !m.ctrl.Step() {
			m.status = "step is disabled while running"
		}
	case "+", "=", "f":
		m.ctrl.SetSpeed(sim.Faster)
	case "-", "_", "d":
		m.ctrl.SetSpeed(sim.Slower)
	case "r":
		m.history.Reset()
		m.ctrl.Randomize(m.density)
	case "g":
		m.seed("glider")
	case "p":
		names := life.PresetNames()
		m.preset = (m.preset + 1) % len(names)
		m.seed(names[m.preset])
	case "c":
		m.history.Reset()
		m.ctrl.Clear()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.st = newStyles(Themes[m.theme])
		m.status = "theme " + Themes[m.theme].Name
	}

	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m *Model) seed(name string) {
	m.history.Reset()
	if err := m.ctrl.SeedPreset(name); err != nil {
		m.report(err)
		return
	}
	m.status = "seeded " + name
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		r, c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return m
		}
		m.report(m.painter.PointerDown(r, c))
	case tea.MouseActionMotion:
		if !m.painter.Active() {
			return m
		}
		r, c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return m
		}
		m.report(m.painter.PointerEnter(r, c))
	case tea.MouseActionRelease:
		// reported wherever the pointer is, on or off the grid
		m.painter.Release()
	}
	m.snap = m.ctrl.Snapshot()
	return m
}

// cellAt maps a terminal position to a grid cell.
func (m Model) cellAt(x, y int) (int, int, bool) {
	if x < gridLeft || y < gridTop {
		return 0, 0, false
	}
	r := y - gridTop
	c := (x - gridLeft) / cellWidth
	if !m.snap.Grid.InBounds(r, c) {
		return 0, 0, false
	}
	return r, c, true
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	slog.Warn("edit rejected", "error", err)
	m.status, m.failed = err.Error(), true
}

func (m Model) View() string {
	var b strings.Builder
	s := m.snap

	status := m.st.stopped.Render("○ stopped")
	if s.Running {
		status = m.st.running.Render("● running")
	}
	b.WriteString(" " + m.st.title.Render("conway's game of life") + "  " + status + "\n")
	b.WriteString(fmt.Sprintf(" %s %s  %s %s  %s %s\n\n",
		m.st.muted.Render("alive"), m.st.text.Render(fmt.Sprint(s.Population)),
		m.st.muted.Render("speed"), m.st.text.Render(fmt.Sprintf("%dms", s.IntervalMs)),
		m.st.muted.Render("gen"), m.st.text.Render(fmt.Sprint(s.Generation))))

	m.renderGrid(&b, s.Grid)

	b.WriteString("\n " + m.controls(s) + "\n")
	if m.status != "" {
		style := m.st.muted
		if m.failed {
			style = m.st.errText
		}
		b.WriteString(" " + style.Render(m.status) + "\n")
	}

	if chart := m.chart(s.Grid.Cols() * cellWidth); chart != "" {
		b.WriteString("\n" + m.st.muted.Render(chart) + "\n")
	}
	return b.String()
}

// renderGrid styles runs of equal cells together to keep the escape-code
// count proportional to pattern edges rather than grid area.
func (m Model) renderGrid(b *strings.Builder, g *life.Grid) {
	for r := 0; r < g.Rows(); r++ {
		b.WriteString(strings.Repeat(" ", gridLeft))
		start := 0
		for c := 1; c <= g.Cols(); c++ {
			if c < g.Cols() && g.At(r, c) == g.At(r, start) {
				continue
			}
			run := c - start
			if g.Alive(r, start) {
				b.WriteString(m.st.alive.Render(strings.Repeat("█", run*cellWidth)))
			} else {
				b.WriteString(m.st.dead.Render(strings.Repeat("·"+strings.Repeat(" ", cellWidth-1), run)))
			}
			start = c
		}
		b.WriteString("\n")
	}
}

func (m Model) controls(s sim.Snapshot) string {
	key := func(label string, enabled bool) string {
		if enabled {
			return m.st.keys.Render(label)
		}
		return m.st.dim.Render(label)
	}
	parts := []string{
		key("s start", s.CanStart()),
		key("x stop", s.CanStop()),
		key("n step", s.CanStep()),
		key("+/- speed", true),
		key("r random", true),
		key("g glider", true),
		key("p presets", true),
		key("c clear", true),
		key("t theme", true),
		key("q quit", true),
	}
	return strings.Join(parts, m.st.dim.Render("  "))
}

func (m Model) chart(width int) string {
	data := m.history.Values()
	if len(data) < 2 {
		return ""
	}
	width = min(width, maxChartWidth)
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(width),
		asciigraph.Caption("population"),
	)
}

// Snapshot exposes the state the view was last rendered from.
func (m Model) Snapshot() sim.Snapshot { return m.snap }

// Run starts the interactive program and closes ctrl when it exits.
func Run(ctrl *sim.Controller, opts Options) error {
	defer ctrl.Close()
	m := New(ctrl, opts)
	defer m.stop()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
