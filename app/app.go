// Package app wires the window controller, the pool API, and the terminal UI
// into a bubbletea program.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"xpdesk/chart"
	"xpdesk/config"
	"xpdesk/log"
	"xpdesk/poll"
	"xpdesk/store"
	"xpdesk/ui"
	"xpdesk/ui/overlay"
	"xpdesk/wm"
	"xpdesk/workers"
)

const (
	windowTitle       = "XP Pool"
	workersPageSize   = 10
	doubleClickWindow = 400 * time.Millisecond
	flashDuration     = 2 * time.Second
)

// Run is the main entrypoint into the application. It blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, st store.Store) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newDesktop(ctx, cfg, st)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // window drag and resize
	)

	poller := poll.New(
		func(ctx context.Context) error {
			stats, err := m.client.Stats(ctx, cfg.WalletAddress)
			p.Send(statsMsg{stats: stats, err: err})
			return err
		},
		func(ctx context.Context) error {
			p.Send(slowTickMsg{})
			return nil
		},
		poll.Options{
			FastInterval: time.Duration(cfg.FastPollSeconds) * time.Second,
			SlowInterval: time.Duration(cfg.SlowPollSeconds) * time.Second,
		},
	)
	go poller.Run(ctx)

	_, err := p.Run()
	return err
}

// Messages delivered from the poller and timers.
type (
	statsMsg struct {
		stats workers.Stats
		err   error
	}
	workersPageMsg struct {
		page workers.Page
		err  error
	}
	slowTickMsg     struct{}
	flashExpiredMsg struct{}
)

// pointerID is the single pointer a terminal mouse provides.
const pointerID wm.PointerID = 1

type desktop struct {
	ctx context.Context
	cfg *config.Config
	st  store.Store

	screen     *ui.Screen
	window     *ui.Window
	controller *wm.Controller
	chart      *chart.Chart
	client     *workers.Client

	stats    *workers.Stats
	statsErr error

	// workersOverlay is non-nil while the modal is open.
	workersOverlay *overlay.WorkersOverlay

	// armedButton is the chrome button pressed and not yet released.
	armedButton ui.Region
	// lastTitlePress drives double-click-to-maximize on the title bar.
	lastTitlePress time.Time

	// gesturesSuppressed mirrors the controller's suppressor; while set,
	// new presses are dropped so an in-flight drag or resize is never
	// interrupted by a second button.
	gesturesSuppressed bool

	flash string
}

func newDesktop(ctx context.Context, cfg *config.Config, st store.Store) *desktop {
	m := &desktop{
		ctx:    ctx,
		cfg:    cfg,
		st:     st,
		screen: &ui.Screen{Cols: 80, Rows: 24},
		window: &ui.Window{Title: windowTitle},
		chart: chart.New(st, cfg.WalletAddress, chart.Options{
			Window:         time.Duration(cfg.ChartWindowSeconds) * time.Second,
			SampleInterval: time.Duration(cfg.ChartSampleSeconds) * time.Second,
		}),
		client: workers.NewClient(cfg.APIBaseURL),
	}
	m.controller = wm.New(m.window, m.screen, st, m)
	return m
}

// SetGesturesSuppressed implements wm.GestureHost.
func (m *desktop) SetGesturesSuppressed(suppressed bool) {
	m.gesturesSuppressed = suppressed
}

func (m *desktop) Init() tea.Cmd {
	return nil
}

func (m *desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.Cols = msg.Width
		m.screen.Rows = msg.Height
		m.controller.ViewportResized()
		if m.workersOverlay != nil {
			m.workersOverlay.SetWidth(min(msg.Width-8, 60))
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case statsMsg:
		if msg.err != nil {
			m.statsErr = msg.err
			return m, nil
		}
		m.statsErr = nil
		m.stats = &msg.stats
		m.chart.Push(msg.stats.Hashrate)
		return m, nil

	case slowTickMsg:
		if m.workersOverlay == nil {
			return m, nil
		}
		m.workersOverlay.SetLoading()
		return m, m.fetchWorkersPage(m.workersOverlay.Offset())

	case workersPageMsg:
		if m.workersOverlay == nil {
			return m, nil
		}
		if msg.err != nil {
			m.workersOverlay.SetError(msg.err)
		} else {
			m.workersOverlay.SetPage(msg.page)
		}
		return m, nil

	case flashExpiredMsg:
		m.flash = ""
		return m, nil
	}

	if m.workersOverlay != nil {
		cmd, _ := m.workersOverlay.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *desktop) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.workersOverlay != nil {
		switch msg.String() {
		case "esc", "w", "q":
			m.workersOverlay = nil
			return m, nil
		}
		cmd, pageChanged := m.workersOverlay.Update(msg)
		if pageChanged {
			m.workersOverlay.SetLoading()
			return m, tea.Batch(cmd, m.fetchWorkersPage(m.workersOverlay.Offset()))
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "w":
		m.workersOverlay = overlay.NewWorkersOverlay(m.cfg.WalletAddress, workersPageSize)
		m.workersOverlay.SetWidth(min(m.screen.Cols-8, 60))
		return m, tea.Batch(m.workersOverlay.Init(), m.fetchWorkersPage(0))
	case "y":
		return m, m.copyWallet()
	case "f":
		m.controller.ToggleMaximize()
		return m, nil
	case "m":
		m.controller.ToggleMinimize()
		return m, nil
	}
	return m, nil
}

func (m *desktop) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The modal takes over the pointer while it is open.
	if m.workersOverlay != nil {
		return m, nil
	}

	p := wm.Pointer{ID: pointerID, Primary: msg.Button == tea.MouseButtonLeft}
	p.X, p.Y = ui.PixelPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			// No pane on the desktop scrolls; wheel presses never reach
			// the controller.
			return m, nil
		}
		return m.handlePress(msg, p)
	case tea.MouseActionMotion:
		m.controller.PointerMove(p)
		return m, nil
	case tea.MouseActionRelease:
		// Release events do not carry the button that was let go.
		p.Primary = true
		return m.handleRelease(msg, p)
	}
	return m, nil
}

// handlePress routes a press by window region. Every press that lands inside
// the window raises it exactly once: the interactive paths raise inside
// BeginDrag/BeginResize, every other path raises here.
func (m *desktop) handlePress(msg tea.MouseMsg, p wm.Pointer) (tea.Model, tea.Cmd) {
	if m.gesturesSuppressed {
		// An in-flight drag or resize owns the pointer; further presses
		// are exactly the gestures the controller asked us to hold back.
		return m, nil
	}

	region, dir := m.window.HitTest(msg.X, msg.Y)
	m.armedButton = ui.RegionNone
	if region == ui.RegionNone {
		return m, nil
	}

	if m.controller.Minimized() {
		m.controller.Raise()
		m.controller.ToggleMinimize()
		return m, nil
	}

	switch region {
	case ui.RegionTitleBar:
		if p.Primary && time.Since(m.lastTitlePress) < doubleClickWindow {
			m.lastTitlePress = time.Time{}
			m.controller.Raise()
			m.controller.ToggleMaximize()
			return m, nil
		}
		if p.Primary {
			m.lastTitlePress = time.Now()
		}
		m.controller.BeginDrag(p)
		if !m.controller.Interacting() {
			m.controller.Raise()
		}
	case ui.RegionResize:
		m.controller.BeginResize(p, dir)
		if !m.controller.Interacting() {
			// Resizing is disabled while maximized and for secondary
			// buttons; the press still raises.
			m.controller.Raise()
		}
	case ui.RegionMinimizeButton, ui.RegionMaximizeButton, ui.RegionCloseButton:
		m.controller.Raise()
		if p.Primary {
			m.armedButton = region
		}
	case ui.RegionContent:
		m.controller.Raise()
	}
	return m, nil
}

func (m *desktop) handleRelease(msg tea.MouseMsg, p wm.Pointer) (tea.Model, tea.Cmd) {
	armed := m.armedButton
	m.armedButton = ui.RegionNone
	m.controller.PointerUp(p)

	if armed == ui.RegionNone {
		return m, nil
	}
	region, _ := m.window.HitTest(msg.X, msg.Y)
	if region != armed {
		// Classic button semantics: releasing elsewhere cancels the press.
		return m, nil
	}
	switch armed {
	case ui.RegionMinimizeButton:
		m.controller.ToggleMinimize()
	case ui.RegionMaximizeButton:
		m.controller.ToggleMaximize()
	case ui.RegionCloseButton:
		return m, tea.Quit
	}
	return m, nil
}

func (m *desktop) fetchWorkersPage(offset int) tea.Cmd {
	client, wallet, ctx := m.client, m.cfg.WalletAddress, m.ctx
	return func() tea.Msg {
		page, err := client.Page(ctx, wallet, workersPageSize, offset)
		if err != nil {
			log.WarningLog.Printf("worker page fetch failed: %v", err)
		}
		return workersPageMsg{page: page, err: err}
	}
}

func (m *desktop) copyWallet() tea.Cmd {
	if err := clipboard.WriteAll(m.cfg.WalletAddress); err != nil {
		log.WarningLog.Printf("clipboard write failed: %v", err)
		m.flash = "clipboard unavailable"
	} else {
		m.flash = "wallet address copied"
	}
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashExpiredMsg{} })
}

func (m *desktop) View() string {
	out := ui.Wallpaper(m.screen.Cols, m.screen.Rows)

	col, row, cols, rows := m.window.CellRect()
	content := m.renderContent(cols-2, rows-4)
	out = ui.PlaceOverlay(col, row, m.window.View(content, m.controller.Maximized()), out)

	if m.workersOverlay != nil {
		modal := m.workersOverlay.Render()
		x, y := ui.Center(m.screen.Cols, m.screen.Rows, modal)
		out = ui.PlaceOverlay(x, y, modal, out)
	}
	return out
}

func (m *desktop) renderContent(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.StatLabelStyle.Render("Wallet  "))
	b.WriteString(ui.HintStyle.Render(runewidth.Truncate(m.cfg.WalletAddress, max(width-8, 0), "…")))
	b.WriteByte('\n')

	switch {
	case m.statsErr != nil:
		b.WriteString(ui.StaleStyle.Render("Pool unreachable, retrying..."))
		b.WriteByte('\n')
	case m.stats == nil:
		b.WriteString(ui.HintStyle.Render("Waiting for pool stats..."))
		b.WriteByte('\n')
	default:
		b.WriteString(ui.StatLabelStyle.Render("Rate    "))
		b.WriteString(ui.RateStyle.Render(chart.FormatRate(m.stats.Hashrate)))
		b.WriteByte('\n')
		b.WriteString(ui.StatLabelStyle.Render("Workers "))
		b.WriteString(ui.StatValueStyle.Render(fmt.Sprintf("%d", m.stats.Workers)))
		b.WriteString(ui.StatLabelStyle.Render("   Balance "))
		b.WriteString(ui.StatValueStyle.Render(fmt.Sprintf("%.6f", m.stats.Balance)))
		b.WriteByte('\n')
	}

	chartRows := height - 6
	if chartRows > 0 {
		b.WriteByte('\n')
		if peak := m.chart.Peak(); peak > 0 {
			b.WriteString(ui.StatLabelStyle.Render("24h peak " + chart.FormatRate(peak)))
		}
		b.WriteByte('\n')
		for _, line := range strings.Split(m.chart.Render(width, chartRows), "\n") {
			b.WriteString(ui.SparkStyle.Render(line))
			b.WriteByte('\n')
		}
	}

	if m.flash != "" {
		b.WriteString(ui.StatValueStyle.Render(m.flash))
		b.WriteByte('\n')
	}
	b.WriteString(ui.HintStyle.Render("w workers · y copy wallet · f max · m min · q quit"))
	return b.String()
}
