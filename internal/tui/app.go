// Package tui is the interactive terminal calculator. Keystrokes are entered
// into the form as user edits; role and mode keys go through the form's
// selection operations, so presets never overwrite typed values.
package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/derickschaefer/truewage/internal/form"
	"github.com/derickschaefer/truewage/internal/model"
	"github.com/derickschaefer/truewage/internal/render"
	"github.com/derickschaefer/truewage/internal/wage"
)

// App is the root bubbletea model.
type App struct {
	form   *form.Form
	fm     *render.Formatter
	fields fieldsModel

	result    *model.Breakdown
	prompt    string
	status    string
	statusErr bool

	copyFn func(string) error
}

// NewApp returns a calculator over f. The form may already carry a role or
// pay mode; its texts are shown as-is.
func NewApp(f *form.Form, fm *render.Formatter) *App {
	return &App{
		form:   f,
		fm:     fm,
		fields: newFieldsModel(f),
		prompt: render.PromptInitial,
		copyFn: clipboard.WriteAll,
	}
}

// SetClipboard replaces the clipboard writer used by the copy key.
func (a *App) SetClipboard(fn func(string) error) {
	a.copyFn = fn
}

// Result returns the last successful calculation, or nil.
func (a *App) Result() *model.Breakdown {
	return a.result
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		a.fields, cmd = a.fields.Update(msg)
		return a, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit
	case "tab", "down":
		var cmd tea.Cmd
		a.fields, cmd = a.fields.move(1)
		return a, cmd
	case "shift+tab", "up":
		var cmd tea.Cmd
		a.fields, cmd = a.fields.move(-1)
		return a, cmd
	case "enter":
		a.calculate()
		return a, nil
	case "ctrl+p":
		a.cycleRole()
		return a, nil
	case "ctrl+t":
		return a, a.toggleMode()
	case "ctrl+r":
		return a, a.reset()
	case "ctrl+y":
		a.copySummary()
		return a, nil
	}

	a.status = ""
	var cmd tea.Cmd
	a.fields, cmd = a.fields.Update(msg)
	return a, cmd
}

// calculate runs the engine over a snapshot of the form. Insufficient data
// clears the result and shows a prompt instead.
func (a *App) calculate() {
	a.status = ""
	b, err := wage.Calculate(a.form.Snapshot())
	if err != nil {
		slog.Debug("calculation skipped", "reason", err)
		a.result = nil
		a.prompt = render.PromptInsufficient
		return
	}
	a.result = &b
}

func (a *App) cycleRole() {
	next := model.Roles[0]
	for i, r := range model.Roles {
		if r == a.form.Role() {
			next = model.Roles[(i+1)%len(model.Roles)]
			break
		}
	}
	if err := a.form.SelectRole(next); err != nil {
		a.setError(err)
		return
	}
	a.fields.sync()
}

func (a *App) toggleMode() tea.Cmd {
	mode := model.ModeHourly
	if a.form.PayMode() == model.ModeHourly {
		mode = model.ModeSalary
	}
	if err := a.form.SelectPayMode(mode); err != nil {
		a.setError(err)
		return nil
	}
	return a.fields.refocus()
}

func (a *App) reset() tea.Cmd {
	a.form.ResetAll()
	a.fields.sync()
	a.fields.cursor = 0
	a.result = nil
	a.prompt = render.PromptInitial
	a.status = ""
	return a.fields.refocus()
}

func (a *App) copySummary() {
	s, err := render.Summary(a.result, a.fm)
	if errors.Is(err, render.ErrNothingToExport) {
		a.setError(errors.New("nothing to copy yet: calculate first"))
		return
	}
	if err != nil {
		a.setError(err)
		return
	}
	if err := a.copyFn(s); err != nil {
		a.setError(err)
		return
	}
	a.status = "Copied summary to clipboard."
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.statusErr = true
}

func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("True Wage Calculator"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("Mode: " + string(a.form.PayMode()) + " • Role preset: " + string(a.form.Role())))
	sb.WriteString("\n\n")
	sb.WriteString(a.fields.View())
	sb.WriteString("\n")
	sb.WriteString(boxStyle.Render(resultView(a.result, a.prompt, a.fm)))

	if a.status != "" {
		sb.WriteString("\n")
		if a.statusErr {
			sb.WriteString(errorStyle.Render(a.status))
		} else {
			sb.WriteString(successStyle.Render(a.status))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: calculate • Tab/↑↓: field • Ctrl+P: role • Ctrl+T: salary/hourly • Ctrl+R: reset • Ctrl+Y: copy • Esc: quit"))
	return sb.String()
}

// Run starts the calculator on the terminal and returns the last result.
func Run(f *form.Form, fm *render.Formatter) (*model.Breakdown, error) {
	app := NewApp(f, fm)
	if _, err := tea.NewProgram(app).Run(); err != nil {
		return nil, err
	}
	return app.Result(), nil
}
