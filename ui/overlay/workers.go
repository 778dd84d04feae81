// Package overlay holds the modal surfaces drawn above the desktop window.
package overlay

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"xpdesk/ui"
	"xpdesk/workers"
)

// staleAfter marks workers that have not reported recently.
const staleAfter = 10 * time.Minute

// WorkersOverlay is the paged worker-list modal. The app owns fetching; the
// overlay reports which page it wants through Offset and renders whatever
// page it was last given.
type WorkersOverlay struct {
	wallet   string
	pageSize int

	spinner   spinner.Model
	paginator paginator.Model

	page    *workers.Page
	err     error
	loading bool
	width   int
}

// NewWorkersOverlay creates the modal for one wallet.
func NewWorkersOverlay(wallet string, pageSize int) *WorkersOverlay {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.Accent)),
	)

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = pageSize

	return &WorkersOverlay{
		wallet:    wallet,
		pageSize:  pageSize,
		spinner:   s,
		paginator: p,
		loading:   true,
		width:     48,
	}
}

// Init starts the spinner animation.
func (o *WorkersOverlay) Init() tea.Cmd {
	return o.spinner.Tick
}

// SetWidth sets the modal width in cells.
func (o *WorkersOverlay) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	o.width = width
}

// SetLoading puts the modal back into its spinner state, keeping the current
// page visible until the replacement arrives.
func (o *WorkersOverlay) SetLoading() {
	o.loading = true
	o.err = nil
}

// SetPage installs a fetched page.
func (o *WorkersOverlay) SetPage(p workers.Page) {
	o.page = &p
	o.err = nil
	o.loading = false
	o.paginator.SetTotalPages(max(p.Total, 1))
}

// SetError records a failed fetch.
func (o *WorkersOverlay) SetError(err error) {
	o.err = err
	o.loading = false
}

// Offset returns the item offset of the page the paginator is on.
func (o *WorkersOverlay) Offset() int {
	return o.paginator.Page * o.pageSize
}

// Update handles spinner ticks and page navigation. pageChanged is true when
// the paginator moved and the app should fetch the new page.
func (o *WorkersOverlay) Update(msg tea.Msg) (cmd tea.Cmd, pageChanged bool) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		o.spinner, cmd = o.spinner.Update(tick)
		return cmd, false
	}

	before := o.paginator.Page
	o.paginator, cmd = o.paginator.Update(msg)
	return cmd, o.paginator.Page != before
}

// Render draws the modal box.
func (o *WorkersOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.Accent)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Accent).
		Padding(1, 2).
		Width(o.width)

	innerWidth := o.width - 4
	content := titleStyle.Render("Workers") + "\n"
	content += ui.HintStyle.Render(runewidth.Truncate(o.wallet, innerWidth, "…")) + "\n\n"

	switch {
	case o.err != nil:
		content += ui.StaleStyle.Render(wordwrap.String("Failed to load workers: "+o.err.Error(), innerWidth))
	case o.loading && o.page == nil:
		content += o.spinner.View() + " Loading workers..."
	case o.page == nil || o.page.Total == 0:
		content += ui.HintStyle.Render("No workers reporting for this wallet.")
	default:
		content += o.renderPage(innerWidth)
	}

	content += "\n\n" + o.paginator.View()
	content += "\n" + ui.HintStyle.Render("←/→ page · esc close")
	return boxStyle.Render(content)
}

func (o *WorkersOverlay) renderPage(width int) string {
	now := time.Now()
	header := fmt.Sprintf("%d total, %d active", o.page.Total, o.page.Active)
	if o.loading {
		header += "  " + o.spinner.View()
	}
	out := ui.StatLabelStyle.Render(header) + "\n\n"

	nameWidth := width - 12
	for _, worker := range o.page.Workers {
		name := runewidth.FillRight(runewidth.Truncate(worker.Name, nameWidth, "…"), nameWidth)
		seen := ui.FormatLastSeen(worker.LastSeen, now)
		line := name + " " + seen
		if worker.LastSeen <= 0 || now.Sub(time.Unix(worker.LastSeen, 0)) > staleAfter {
			out += ui.StaleStyle.Render(line) + "\n"
		} else {
			out += line + "\n"
		}
	}
	return out
}
