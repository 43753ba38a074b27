package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rkshoot/internal/shoot"
	"github.com/san-kum/rkshoot/internal/viz"
)

const barWidth = 40

type tickMsg time.Time

// Model steps a shooting search one bisection per tick.
type Model struct {
	search   *shoot.Search
	initial  shoot.Bracket
	bracket  shoot.Bracket
	history  []shoot.Iter
	interval time.Duration
	done     bool
	err      error
}

func NewModel(search *shoot.Search, b shoot.Bracket, interval time.Duration) Model {
	return Model{
		search:   search,
		initial:  b,
		bracket:  b,
		interval: interval,
	}
}

func (m Model) Bracket() shoot.Bracket { return m.bracket }
func (m Model) History() []shoot.Iter  { return m.history }
func (m Model) Done() bool             { return m.done }
func (m Model) Err() error             { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if err := m.initial.Validate(); err != nil {
		return func() tea.Msg { return err }
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		}
	case error:
		m.err = msg
		m.done = true
		return m, tea.Quit
	case tickMsg:
		if m.done {
			return m, nil
		}
		return m.advance()
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if len(m.history) >= m.search.Iterations {
		m.done = true
		return m, tea.Quit
	}

	next, it, err := m.search.Step(m.bracket)
	if err != nil {
		m.err = err
		m.done = true
		return m, tea.Quit
	}
	it.K = len(m.history) + 1
	m.bracket = next
	m.history = append(m.history, it)

	if m.search.OnIter != nil {
		if err := m.search.OnIter(it); err != nil {
			if !errors.Is(err, shoot.ErrStopped) {
				m.err = err
			}
			m.done = true
			return m, tea.Quit
		}
	}

	if len(m.history) >= m.search.Iterations {
		m.done = true
		return m, tea.Quit
	}
	return m, m.tick()
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(viz.Title.Render("shooting search"))
	sb.WriteString("\n\n")

	progress := 0.0
	if m.search.Iterations > 0 {
		progress = float64(len(m.history)) / float64(m.search.Iterations)
	}
	sb.WriteString(fmt.Sprintf("%s %d/%d\n\n", viz.ProgressBar(progress, barWidth), len(m.history), m.search.Iterations))

	sb.WriteString(m.bracketLine())
	sb.WriteString("\n\n")

	start := max(len(m.history)-8, 0)
	for _, it := range m.history[start:] {
		sb.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%3d  theta=%9.5f deg  value=%9.5f", it.K, viz.Degrees(it.Theta), it.Value)))
		sb.WriteString("\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString("\n" + viz.StatusError.Render("error: "+m.err.Error()))
	case m.done:
		sb.WriteString("\n" + viz.StatusDone.Render(fmt.Sprintf("theta in [%.4f, %.4f] deg", viz.Degrees(m.bracket.Low), viz.Degrees(m.bracket.High))))
	default:
		sb.WriteString("\n" + viz.Subtle.Render("q to stop"))
	}

	return viz.Panel.Render(sb.String()) + "\n"
}

// bracketLine draws the current bracket inside the initial one.
func (m Model) bracketLine() string {
	w := m.initial.Width()
	lo := int((m.bracket.Low - m.initial.Low) / w * barWidth)
	hi := int((m.bracket.High - m.initial.Low) / w * barWidth)
	lo = min(max(lo, 0), barWidth-1)
	hi = min(max(hi, lo+1), barWidth)

	line := strings.Repeat("·", lo) + viz.SparkHigh.Render(strings.Repeat("━", hi-lo)) + strings.Repeat("·", barWidth-hi)
	return fmt.Sprintf("[%s]  width %.3g rad", line, m.bracket.Width())
}

// Run executes the search interactively and returns the final bracket.
func Run(search *shoot.Search, b shoot.Bracket, interval time.Duration) (shoot.Bracket, error) {
	final, err := tea.NewProgram(NewModel(search, b, interval)).Run()
	if err != nil {
		return b, err
	}
	m := final.(Model)
	return m.bracket, m.err
}
