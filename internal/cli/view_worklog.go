package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// recentLimit is how many entries the recent list shows.
const recentLimit = 20

// timerTickMsg refreshes the elapsed display while the timer runs.
type timerTickMsg struct {
	gen int
}

type entrySavedMsg struct {
	entry domain.ValidEntry
	err   error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

type workLogKeyMap struct {
	Edit   key.Binding
	Mode   key.Binding
	More   key.Binding
	Less   key.Binding
	Start  key.Binding
	Stop   key.Binding
	Reset  key.Binding
	Submit key.Binding
	Export key.Binding
	Recent key.Binding
}

func defaultWorkLogKeyMap() workLogKeyMap {
	return workLogKeyMap{
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "minutes")),
		Less:   key.NewBinding(key.WithKeys("-", "_")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Export: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "export")),
		Recent: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "recent")),
	}
}

// workLogView is the home view: entry details, duration input, and the
// submit and export actions. All state lives in the shared Session.
type workLogView struct {
	app     *App
	session *Session
	keys    workLogKeyMap
}

func newWorkLogView(app *App, session *Session) *workLogView {
	return &workLogView{
		app:     app,
		session: session,
		keys:    defaultWorkLogKeyMap(),
	}
}

func (v *workLogView) Init() tea.Cmd { return nil }

func (v *workLogView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := v.session

	switch msg := msg.(type) {
	case timerTickMsg:
		// A tick from an earlier run, or after stop, ends its chain.
		if msg.gen != s.tickGen || s.Timer.State != domain.TimerRunning {
			return v, nil
		}
		return v, tickCmd(msg.gen)

	case entrySavedMsg:
		s.Busy = false
		if msg.err != nil {
			s.setNotice(noticeKindFor(msg.err), msg.err.Error())
			return v, nil
		}
		s.Timer.Reset()
		s.setNotice(noticeSuccess, formatter.FormatSaved(msg.entry))
		return v, nil

	case exportDoneMsg:
		s.Busy = false
		switch {
		case errors.Is(msg.err, service.ErrNothingToExport):
			s.setNotice(noticeInfo, "No entries recorded.")
		case msg.err != nil:
			s.setNotice(noticeError, msg.err.Error())
		default:
			s.setNotice(noticeSuccess, formatter.FormatExported(msg.path, msg.rows))
		}
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	return v, nil
}

func (v *workLogView) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := v.session

	switch {
	case key.Matches(msg, v.keys.Edit):
		return pushView(newEntryFormView(s))

	case key.Matches(msg, v.keys.Recent):
		return v.recentCmd()
	}

	if s.Busy {
		s.setNotice(noticeInfo, "Still working on the previous request…")
		return nil
	}

	switch {
	case key.Matches(msg, v.keys.Submit):
		return v.submit()

	case key.Matches(msg, v.keys.Export):
		s.Busy = true
		s.setNotice(noticeInfo, "Preparing export…")
		return v.exportCmd()

	case key.Matches(msg, v.keys.Mode):
		v.toggleMode()

	case key.Matches(msg, v.keys.More):
		v.adjustManual(1)

	case key.Matches(msg, v.keys.Less):
		v.adjustManual(-1)

	case key.Matches(msg, v.keys.Start):
		return v.startTimer()

	case key.Matches(msg, v.keys.Stop):
		v.stopTimer()

	case key.Matches(msg, v.keys.Reset):
		if v.requireTimerMode() {
			s.Timer.Reset()
			s.tickGen++
			s.clearNotice()
		}
	}
	return nil
}

func (v *workLogView) requireTimerMode() bool {
	if v.session.Mode != domain.DurationTimer {
		v.session.setNotice(noticeWarning, "Switch to timer mode (m) to use the timer.")
		return false
	}
	return true
}

func (v *workLogView) startTimer() tea.Cmd {
	s := v.session
	if !v.requireTimerMode() {
		return nil
	}
	if err := s.Timer.Start(); err != nil {
		s.setNotice(noticeWarning, err.Error())
		return nil
	}
	s.tickGen++
	s.clearNotice()
	return tickCmd(s.tickGen)
}

func (v *workLogView) stopTimer() {
	s := v.session
	if !v.requireTimerMode() {
		return
	}
	if err := s.Timer.Stop(); err != nil {
		s.setNotice(noticeWarning, err.Error())
		return
	}
	s.tickGen++
	s.clearNotice()
}

func (v *workLogView) toggleMode() {
	s := v.session
	if s.Timer.State == domain.TimerRunning {
		s.setNotice(noticeWarning, "Stop the timer before entering minutes manually.")
		return
	}
	if s.Mode == domain.DurationTimer {
		s.Mode = domain.DurationManual
	} else {
		s.Mode = domain.DurationTimer
	}
	s.clearNotice()
}

func (v *workLogView) adjustManual(delta int) {
	if v.session.Mode != domain.DurationManual {
		return
	}
	v.session.AdjustManual(delta)
}

// submit validates up front so a rejected form never reaches the store,
// then hands the entry to the service off the Update goroutine.
func (v *workLogView) submit() tea.Cmd {
	s := v.session
	in := s.Input()
	if _, err := domain.Validate(in); err != nil {
		s.setNotice(noticeWarning, err.Error())
		return nil
	}

	s.Busy = true
	s.setNotice(noticeInfo, "Saving…")
	app := v.app
	ctx := service.ContextWithSessionID(context.Background(), s.ID)
	return func() tea.Msg {
		entry, err := app.WorkLog.Submit(ctx, in)
		return entrySavedMsg{entry: entry, err: err}
	}
}

func (v *workLogView) exportCmd() tea.Cmd {
	app := v.app
	ctx := service.ContextWithSessionID(context.Background(), v.session.ID)
	return func() tea.Msg {
		path, rows, err := saveExport(ctx, app, app.ExportDir)
		return exportDoneMsg{path: path, rows: rows, err: err}
	}
}

func (v *workLogView) recentCmd() tea.Cmd {
	app := v.app
	ctx := service.ContextWithSessionID(context.Background(), v.session.ID)
	return func() tea.Msg {
		entries, err := app.WorkLog.Recent(ctx, recentLimit)
		if err != nil {
			return cmdOutputMsg{output: formatter.FormatError(err)}
		}
		return cmdOutputMsg{output: formatter.Header("Recent entries") + "\n" +
			formatter.FormatEntryTable(entries, app.now())}
	}
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func noticeKindFor(err error) noticeKind {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return noticeWarning
	}
	return noticeError
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *workLogView) View() string {
	s := v.session
	var b strings.Builder

	b.WriteString(formatter.RenderBox("Entry", v.renderDetails()))
	b.WriteString("\n")
	b.WriteString(formatter.RenderBox("Duration", v.renderDuration()))
	b.WriteString("\n")

	if line := renderNotice(s.Notice); line != "" {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (v *workLogView) renderDetails() string {
	s := v.session
	field := func(label, value string) string {
		if domain.IsBlank(value) {
			value = formatter.Dim("(press e to fill in)")
		}
		return fmt.Sprintf("%s %s", formatter.StyleDim.Width(11).Render(label), value)
	}
	return strings.Join([]string{
		field("Name", s.Name),
		field("Department", s.RequestedDept),
		field("Task", formatter.Truncate(strings.ReplaceAll(s.Task, "\n", " "), 60)),
	}, "\n")
}

func (v *workLogView) renderDuration() string {
	s := v.session

	timerTab, manualTab := formatter.Bold("[timer]"), formatter.Dim(" manual ")
	if s.Mode == domain.DurationManual {
		timerTab, manualTab = formatter.Dim(" timer "), formatter.Bold("[manual]")
	}
	tabs := timerTab + " " + manualTab

	if s.Mode == domain.DurationManual {
		return tabs + "\n\n" + fmt.Sprintf("%s  %s",
			formatter.Bold(fmt.Sprintf("%d min", s.ManualMinutes)),
			formatter.Dim("+/- to adjust"))
	}

	var reading string
	switch s.Timer.State {
	case domain.TimerRunning:
		reading = "elapsed " + formatter.StyleGreen.Render(formatter.FormatElapsed(s.Elapsed()))
	case domain.TimerStopped:
		reading = "final " + formatter.StyleYellow.Render(formatter.FormatMinutes(s.Timer.Minutes()))
	default:
		reading = formatter.Dim("elapsed " + formatter.FormatElapsed(0))
	}
	return tabs + "\n\n" + formatter.TimerIndicator(s.Timer.State) + "  " + reading
}

func renderNotice(n notice) string {
	switch n.kind {
	case noticeSuccess:
		return n.text
	case noticeWarning:
		return formatter.FormatWarning(n.text)
	case noticeError:
		return formatter.StyleRed.Render("✖ " + n.text)
	case noticeInfo:
		return formatter.Dim(n.text)
	}
	return ""
}

func (v *workLogView) ID() ViewID    { return ViewWorkLog }
func (v *workLogView) Title() string { return "" }
func (v *workLogView) ShortHelp() []key.Binding {
	k := v.keys
	if v.session.Mode == domain.DurationManual {
		return []key.Binding{k.Edit, k.Mode, k.More, k.Submit, k.Export, k.Recent}
	}
	return []key.Binding{k.Edit, k.Mode, k.Start, k.Stop, k.Reset, k.Submit, k.Export, k.Recent}
}
