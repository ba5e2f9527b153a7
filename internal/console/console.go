// Package console is the interactive terminal form: pick a method and an
// endpoint, edit the body, send, and read the formatted response.
package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/compare"
	"github.com/raysh454/apiprobe/internal/model"
)

// Dispatcher runs one request off the UI goroutine.
type Dispatcher interface {
	Dispatch(ctx context.Context, spec model.RequestSpec) <-chan model.Outcome
}

var (
	quitKey     = key.NewBinding(key.WithKeys("ctrl+c"))
	sendKey     = key.NewBinding(key.WithKeys("ctrl+s"))
	sendIdleKey = key.NewBinding(key.WithKeys("enter"))
	editKey     = key.NewBinding(key.WithKeys("tab", "esc"))
	prevMethod  = key.NewBinding(key.WithKeys("left", "h"))
	nextMethod  = key.NewBinding(key.WithKeys("right", "l"))
	prevEndp    = key.NewBinding(key.WithKeys("up", "k"))
	nextEndp    = key.NewBinding(key.WithKeys("down", "j"))
	diffKey     = key.NewBinding(key.WithKeys("d"))
	leaveKey    = key.NewBinding(key.WithKeys("q"))
)

// chromeHeight is roughly how many lines the form takes above the result.
const chromeHeight = 18

type result struct {
	id       int
	spec     model.RequestSpec
	outcome  model.Outcome
	rendered string
}

// outcomeMsg carries a resolved request back into Update.
type outcomeMsg struct {
	id      int
	spec    model.RequestSpec
	outcome model.Outcome
}

// Model is the bubbletea model behind `apiprobe tui`.
type Model struct {
	ctx     context.Context
	exec    Dispatcher
	catalog *catalog.Catalog

	method   int
	endpoint int
	body     textarea.Model
	editing  bool

	spinner  spinner.Model
	inFlight int
	sent     int

	current  *result
	previous *result
	showDiff bool
	output   viewport.Model
}

// New returns a form preloaded with the first method's first endpoint.
func New(ctx context.Context, exec Dispatcher, cat *catalog.Catalog) *Model {
	if cat == nil {
		cat = catalog.Default()
	}
	body := textarea.New()
	body.ShowLineNumbers = false
	body.SetWidth(72)
	body.SetHeight(8)
	body.CharLimit = 0

	m := &Model{
		ctx:     ctx,
		exec:    exec,
		catalog: cat,
		body:    body,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		output:  viewport.New(80, 12),
	}
	m.resetForm()
	m.output.SetContent("No request sent yet.")
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, exec Dispatcher, cat *catalog.Catalog) error {
	_, err := tea.NewProgram(New(ctx, exec, cat), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Method is the selected method.
func (m *Model) Method() model.Method {
	return model.Methods[m.method]
}

// Spec snapshots the form.
func (m *Model) Spec() model.RequestSpec {
	spec := model.RequestSpec{
		Method:  m.Method(),
		BaseURL: m.catalog.BaseURL,
	}
	if eps := m.catalog.EndpointsFor(spec.Method); len(eps) > 0 {
		spec.Endpoint = eps[m.endpoint].Path
	}
	if spec.Method.RequiresBody() {
		spec.Body = m.body.Value()
	}
	return spec
}

// resetForm picks the first endpoint and sample body for the current method.
func (m *Model) resetForm() {
	m.endpoint = 0
	m.body.SetValue(m.catalog.SampleBody(m.Method()))
	m.setEditing(false)
}

func (m *Model) setEditing(on bool) {
	m.editing = on && m.Method().RequiresBody()
	if m.editing {
		m.body.Focus()
	} else {
		m.body.Blur()
	}
}

func (m *Model) send() tea.Cmd {
	m.sent++
	m.inFlight++
	id, spec, ctx, exec := m.sent, m.Spec(), m.ctx, m.exec
	return func() tea.Msg {
		return outcomeMsg{id: id, spec: spec, outcome: <-exec.Dispatch(ctx, spec)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.output.Width = msg.Width
		m.output.Height = max(msg.Height-chromeHeight, 5)
		m.body.SetWidth(min(msg.Width-2, 100))
		return m, nil

	case outcomeMsg:
		m.inFlight--
		m.previous = m.current
		m.current = &result{id: msg.id, spec: msg.spec, outcome: msg.outcome, rendered: msg.outcome.Render()}
		m.showDiff = false
		m.refreshOutput()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			return m, tea.Quit
		}
		if key.Matches(msg, sendKey) {
			return m, m.send()
		}
		if m.editing {
			if key.Matches(msg, editKey) {
				m.setEditing(false)
				return m, nil
			}
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		return m.handleFormKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, leaveKey):
		return m, tea.Quit
	case key.Matches(msg, sendIdleKey):
		return m, m.send()
	case key.Matches(msg, editKey):
		m.setEditing(true)
		if m.editing {
			return m, textarea.Blink
		}
	case key.Matches(msg, prevMethod):
		m.method = (m.method + len(model.Methods) - 1) % len(model.Methods)
		m.resetForm()
	case key.Matches(msg, nextMethod):
		m.method = (m.method + 1) % len(model.Methods)
		m.resetForm()
	case key.Matches(msg, prevEndp):
		if m.endpoint > 0 {
			m.endpoint--
		}
	case key.Matches(msg, nextEndp):
		if m.endpoint < len(m.catalog.EndpointsFor(m.Method()))-1 {
			m.endpoint++
		}
	case key.Matches(msg, diffKey):
		if m.current != nil && m.previous != nil {
			m.showDiff = !m.showDiff
			m.refreshOutput()
		}
	default:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) refreshOutput() {
	if m.current == nil {
		return
	}
	if m.showDiff {
		res := compare.Diff(strconv.Itoa(m.previous.id), strconv.Itoa(m.current.id), m.previous.rendered, m.current.rendered)
		m.output.SetContent(renderDiff(res))
		return
	}
	m.output.SetContent(OutcomeStyle(m.current.outcome).Render(m.current.rendered))
}

func renderDiff(res compare.Result) string {
	if !res.Changed() {
		return res.Unified()
	}
	lines := strings.Split(res.Unified(), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "+") {
			lines[i] = styleAdded.Render(l)
		} else {
			lines[i] = styleRemoved.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("apiprobe") + "\n")

	sb.WriteString(styleLabel.Render("Method"))
	for i, meth := range model.Methods {
		if i == m.method {
			sb.WriteString(styleSelected.Render(string(meth)))
		} else {
			sb.WriteString(styleOption.Render(string(meth)))
		}
	}
	sb.WriteString("\n\n")

	sb.WriteString(styleHeading.Render("Endpoint") + "\n")
	for i, ep := range m.catalog.EndpointsFor(m.Method()) {
		cursor := "  "
		if i == m.endpoint {
			cursor = "> "
		}
		sb.WriteString(cursor + ep.Label + " " + styleURL.Render(m.catalog.BaseURL+ep.Path) + "\n")
	}
	sb.WriteString("\n")

	if m.Method().RequiresBody() {
		sb.WriteString(styleHeading.Render("Body") + "\n")
		sb.WriteString(m.body.View() + "\n\n")
	}

	status := "Response"
	if m.showDiff {
		status = "Diff vs previous"
	}
	if m.inFlight > 0 {
		status += " " + m.spinner.View() + strconv.Itoa(m.inFlight) + " in flight"
	}
	sb.WriteString(styleHeading.Render(status) + "\n")
	sb.WriteString(m.output.View() + "\n")

	sb.WriteString(styleHelp.Render(m.help()))
	return sb.String()
}

func (m *Model) help() string {
	if m.editing {
		return "ctrl+s send • tab done editing • ctrl+c quit"
	}
	h := "←/→ method • ↑/↓ endpoint • enter/ctrl+s send"
	if m.Method().RequiresBody() {
		h += " • tab edit body"
	}
	if m.current != nil && m.previous != nil {
		h += " • d diff"
	}
	return h + " • q quit"
}
