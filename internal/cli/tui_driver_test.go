package cli

import (
	"testing"

	"github.com/alexanderramin/worklog/internal/teatest"
)

// TestDriver wraps teatest.Driver with worklog-specific inspection methods.
// It provides access to appModel internals (view stack, session) that the
// generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, applies opts, and drains Init().
func NewTestDriver(t *testing.T, app *App, opts ...teatest.Option) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, append([]teatest.Option{teatest.WithSize(120, 40)}, opts...)...)
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// FillDetails sets the entry fields as if the details form had been completed.
func (d *TestDriver) FillDetails(name, dept, task string) {
	d.T.Helper()
	applyEntryFields(d.Session(), &entryFields{name: name, dept: dept, task: task})
}

// Tick delivers the refresh a running timer is waiting for.
func (d *TestDriver) Tick() {
	d.T.Helper()
	d.Send(timerTickMsg{gen: d.Session().tickGen})
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Session returns the session for inspection.
func (d *TestDriver) Session() *Session {
	return d.appModel().session
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// Notice returns the text of the session's current notice.
func (d *TestDriver) Notice() string {
	return d.Session().Notice.text
}
