package cmd

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bernd/codexbar/panel"
	"github.com/bernd/codexbar/provider"
	"github.com/bernd/codexbar/source"
	"github.com/bernd/codexbar/tui"
)

// watchModel is the bubbletea model for the full-screen watch view. Each
// refresh runs the same fetch batch the panel command runs and replaces the
// displayed payloads wholesale. A cursor selects one provider block; the
// viewport scrolls so the selected block stays visible when the list is
// taller than the terminal.
type watchModel struct {
	fetcher  source.Fetcher
	sel      source.Selection
	opts     source.Options
	header   *tui.HeaderInfo
	interval time.Duration

	width     int
	height    int
	payloads  []provider.Payload
	outcome   source.Outcome
	updatedAt time.Time
	fetching  bool
	tickFrame int

	cursor   int // selected payload index
	offset   int // first visible body line
	vpHeight int // number of visible body lines
}

func newWatchModel(f source.Fetcher, sel source.Selection, opts source.Options, header *tui.HeaderInfo, interval time.Duration) watchModel {
	return watchModel{
		fetcher:  f,
		sel:      sel,
		opts:     opts,
		header:   header,
		interval: interval,
		// Init fires the first fetch immediately.
		fetching: true,
	}
}

// fetchDoneMsg carries one completed refresh.
type fetchDoneMsg struct {
	payloads []provider.Payload
	outcome  source.Outcome
	at       time.Time
}

// watchTickMsg drives the refresh timer and the fetching animation.
type watchTickMsg struct{}

const watchTickInterval = 250 * time.Millisecond

func watchTick() tea.Cmd {
	return tea.Tick(watchTickInterval, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m watchModel) fetchCmd() tea.Cmd {
	fetcher, sel, opts := m.fetcher, m.sel, m.opts
	return func() tea.Msg {
		payloads, outcome := source.Run(context.Background(), fetcher, sel, opts)
		return fetchDoneMsg{payloads: payloads, outcome: outcome, at: time.Now()}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(watchTick(), m.fetchCmd(), tea.WindowSize())
}

func (m watchModel) headerHeight() int {
	h := tui.RenderHeader(m.header, m.width, m.height)
	return strings.Count(h, "\n") + 1
}

// blockBounds returns the first and last body-line index of each provider
// block, matching the layout bodyLines produces.
func (m watchModel) blockBounds() [][2]int {
	bounds := make([][2]int, 0, len(m.payloads))
	line := 0
	for i, p := range m.payloads {
		if i > 0 {
			line++ // blank separator
		}
		n := len(panel.Blocks(p))
		bounds = append(bounds, [2]int{line, line + n - 1})
		line += n
	}
	return bounds
}

// ensureCursorVisible adjusts the scroll offset so the selected block is
// within the visible window, preferring its title row when the block itself
// is taller than the viewport.
func (m *watchModel) ensureCursorVisible() {
	bounds := m.blockBounds()
	if len(bounds) == 0 || m.cursor >= len(bounds) || m.vpHeight < 1 {
		return
	}
	start, end := bounds[m.cursor][0], bounds[m.cursor][1]
	if start < m.offset {
		m.offset = start
	}
	if end >= m.offset+m.vpHeight {
		m.offset = end - m.vpHeight + 1
		if m.offset > start {
			m.offset = start
		}
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, m.fetchCmd()
			}
		case "j", "down":
			if m.cursor < len(m.payloads)-1 {
				m.cursor++
				m.ensureCursorVisible()
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.ensureCursorVisible()
			}
		case "g", "home":
			m.cursor = 0
			m.ensureCursorVisible()
		case "G", "end":
			if len(m.payloads) > 0 {
				m.cursor = len(m.payloads) - 1
				m.ensureCursorVisible()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - m.headerHeight() - 2 // 1 separator after header + 1 footer line
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.vpHeight = vpHeight
		m.ensureCursorVisible()

	case fetchDoneMsg:
		m.fetching = false
		m.payloads = msg.payloads
		m.outcome = msg.outcome
		m.updatedAt = msg.at
		if m.cursor >= len(m.payloads) {
			m.cursor = len(m.payloads) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	case watchTickMsg:
		m.tickFrame++
		if !m.fetching && !m.updatedAt.IsZero() && time.Since(m.updatedAt) >= m.interval {
			m.fetching = true
			cmds = append(cmds, m.fetchCmd())
		}
		cmds = append(cmds, watchTick())
	}

	return m, tea.Batch(cmds...)
}

var watchSpinner = []string{"☱", "☲", "☴"}

func (m watchModel) refreshIndicator() string {
	if m.fetching {
		glyph := watchSpinner[m.tickFrame%len(watchSpinner)]
		return lipgloss.NewStyle().Foreground(tui.ColorCyan).Render(glyph)
	}
	return lipgloss.NewStyle().Foreground(tui.ColorField).Render("⏸")
}

func (m watchModel) renderFooter(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(tui.ColorCyan)
	descStyle := lipgloss.NewStyle().Foreground(tui.ColorField)

	left := m.refreshIndicator() + " "
	switch {
	case m.outcome == source.Failure:
		left += lipgloss.NewStyle().Foreground(tui.ColorError).Render("some providers failed")
	case !m.updatedAt.IsZero():
		left += descStyle.Render("updated " + m.updatedAt.Format("15:04:05"))
	}

	keys := []string{
		keyStyle.Render("↑/↓ k/j") + " " + descStyle.Render("navigate"),
		keyStyle.Render("r") + " " + descStyle.Render("refresh"),
		keyStyle.Render("q") + " " + descStyle.Render("quit"),
	}
	right := strings.Join(keys, "  ")

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 2 {
		gap = 2
	}

	return left + strings.Repeat(" ", gap) + right
}

// bodyLines renders every provider block with a cursor marker on the
// selected title row.
func (m watchModel) bodyLines() []string {
	if len(m.payloads) == 0 {
		return []string{"  Fetching usage..."}
	}

	var lines []string
	for i, p := range m.payloads {
		if i > 0 {
			lines = append(lines, "")
		}
		block := panel.Blocks(p)
		marker := "  "
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(tui.ColorCyan).Render("▸") + " "
		}
		lines = append(lines, marker+block[0])
		lines = append(lines, block[1:]...)
	}
	return lines
}

func (m watchModel) View() string {
	if m.width == 0 {
		return "Starting..."
	}

	header := tui.RenderHeader(m.header, m.width, m.height)

	lines := m.bodyLines()
	end := m.offset + m.vpHeight
	if end > len(lines) {
		end = len(lines)
	}
	start := m.offset
	if start > end {
		start = end
	}
	visible := make([]string, 0, m.vpHeight)
	visible = append(visible, lines[start:end]...)
	for len(visible) < m.vpHeight {
		visible = append(visible, "")
	}

	footer := m.renderFooter(m.width)

	return header + "\n" + strings.Join(visible, "\n") + "\n" + footer
}
