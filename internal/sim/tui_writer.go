package sim

import (
	"fmt"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"sonarsim/internal/contact"
	"sonarsim/internal/sonar"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// trackMsg carries the latest state of one contact.
type trackMsg struct{ contact.TrackRow }

// eventMsg carries a detection event log line.
type eventMsg struct{ line string }

const maxEventLines = 200

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	trackedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	eventStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	sectionBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// TUIWriter renders the tactical picture with a bubbletea TUI: a contact
// table on top, a scrolling event log below.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteTrack implements TrackWriter.
func (w *TUIWriter) WriteTrack(row contact.TrackRow) error {
	w.program.Send(trackMsg{row})
	return nil
}

// WriteTracks outputs multiple track rows.
func (w *TUIWriter) WriteTracks(rows []contact.TrackRow) error {
	for _, r := range rows {
		_ = w.WriteTrack(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(row sonar.EventRow) error {
	var line string
	switch row.Kind {
	case sonar.EventContact:
		mode := "passive"
		if !row.Passive {
			mode = "active"
		}
		line = fmt.Sprintf("[%s] CONTACT target=%s mode=%s",
			row.Timestamp.Format(time.RFC3339), row.TargetID, mode)
	case sonar.EventEcho:
		line = fmt.Sprintf("[%s] ECHO target=%s dist=%.1f vol=%.2f pulse=%s",
			row.Timestamp.Format(time.RFC3339), row.TargetID, row.Distance, row.Volume, row.PulseID)
	case sonar.EventScanUpdate:
		line = fmt.Sprintf("[%s] SCAN radius=%.0f active=%v",
			row.Timestamp.Format(time.RFC3339), row.Radius, row.Active)
	case sonar.EventScanComplete:
		line = fmt.Sprintf("[%s] SCAN COMPLETE pulse=%s",
			row.Timestamp.Format(time.RFC3339), row.PulseID)
	default:
		line = fmt.Sprintf("[%s] %s", row.Timestamp.Format(time.RFC3339), row.Kind)
	}
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple event rows.
func (w *TUIWriter) WriteEvents(rows []sonar.EventRow) error {
	for _, r := range rows {
		_ = w.WriteEvent(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	table      table.Model
	vp         viewport.Model
	contacts   map[string]contact.TrackRow
	events     []string
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "Target", Width: 18},
		{Title: "Type", Width: 10},
		{Title: "Brg", Width: 6},
		{Title: "Dist", Width: 7},
		{Title: "SNR", Width: 6},
		{Title: "Track", Width: 10},
		{Title: "Class", Width: 22},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(8))

	// Before the first WindowSizeMsg arrives, fall back to the real
	// terminal size so the first frame is not zero-width.
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	vp := viewport.New(width, height/2)

	return tuiModel{
		table:      t,
		vp:         vp,
		contacts:   make(map[string]contact.TrackRow),
		autoscroll: true,
		width:      width,
		height:     height,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width - 4
		vpHeight := msg.Height - m.table.Height() - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		m.vp.Height = vpHeight
		m.refreshEvents()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshEvents()
		case "a":
			m.autoscroll = !m.autoscroll
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case trackMsg:
		m.contacts[msg.TargetID] = msg.TrackRow
		m.refreshTable()
	case eventMsg:
		m.events = append(m.events, msg.line)
		if len(m.events) > maxEventLines {
			m.events = m.events[len(m.events)-maxEventLines:]
		}
		m.refreshEvents()
	}
	return m, nil
}

func (m *tuiModel) refreshTable() {
	ids := make([]string, 0, len(m.contacts))
	for id := range m.contacts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		c := m.contacts[id]
		class := string(c.ClassState)
		if c.IdentifiedClass != "" {
			class = fmt.Sprintf("%s (%.0f%%)", c.IdentifiedClass, c.ClassProgress*100)
		} else if c.ClassProgress > 0 {
			class = fmt.Sprintf("%s (%.0f%%)", c.ClassState, c.ClassProgress*100)
		}
		rows = append(rows, table.Row{
			c.TargetID,
			string(c.Type),
			fmt.Sprintf("%.0f", c.BearingDeg),
			fmt.Sprintf("%.1f", c.DistanceU),
			fmt.Sprintf("%.1f", c.SNRDb),
			m.trackCell(c.Track),
			class,
		})
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) trackCell(s contact.TrackState) string {
	switch s {
	case contact.TrackTracked:
		return trackedStyle.Render(string(s))
	case contact.TrackLost:
		return lostStyle.Render(string(s))
	default:
		return string(s)
	}
}

func (m *tuiModel) refreshEvents() {
	lines := make([]string, len(m.events))
	for i, l := range m.events {
		if m.wrap && m.vp.Width > 0 {
			l = wordwrap.String(l, m.vp.Width)
		}
		lines[i] = eventStyle.Render(l)
	}
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	m.vp.SetContent(content)
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	tracked := 0
	for _, c := range m.contacts {
		if c.Track == contact.TrackTracked {
			tracked++
		}
	}
	header := headerStyle.Render(fmt.Sprintf("SONAR  contacts=%d tracked=%s  [q]uit [w]rap [a]utoscroll",
		len(m.contacts), activeStyle.Render(fmt.Sprintf("%d", tracked))))
	return header + "\n" +
		sectionBorder.Render(m.table.View()) + "\n" +
		sectionBorder.Render(m.vp.View())
}
