// Package tui provides the interactive terminal form for running a
// reconciliation without remembering flags. It follows the Elm
// architecture used by bubbletea: state lives in the Form model and
// changes only in Update.
package tui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/equiref/diverso"
	"github.com/equiref/diverso/pkg/constants"
	"github.com/equiref/diverso/pkg/logging"
)

// Runner executes a reconciliation with the assembled options. It is a
// separate type so tests can run the form against a fake pipeline.
type Runner func(ctx context.Context, opts ...diverso.Option) (*diverso.Result, error)

func defaultRunner(ctx context.Context, opts ...diverso.Option) (*diverso.Result, error) {
	pipeline, err := diverso.New(opts...)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx)
}

// Form field order. The two virtual fields at the end are the buttons.
const (
	fieldSurvey = iota
	fieldRecruitment
	fieldOutput
	fieldWhitelist
	fieldRun
	fieldQuit
	fieldCount
)

// resultMsg carries the outcome of a pipeline run back into Update.
type resultMsg struct {
	result *diverso.Result
	err    error
}

// Option customizes Form construction.
type Option func(*Form)

// WithRunner overrides the pipeline runner, used by tests.
func WithRunner(r Runner) Option {
	return func(f *Form) {
		if r != nil {
			f.runner = r
		}
	}
}

// WithLogConfig enables per run log files. Each run writes JSON entries
// at the configured level to a file next to the output table.
func WithLogConfig(cfg *logging.Config) Option {
	return func(f *Form) {
		f.logConfig = cfg
	}
}

// WithContext sets the context pipeline runs are bound to, so a signal
// can cancel a run in progress.
func WithContext(ctx context.Context) Option {
	return func(f *Form) {
		if ctx != nil {
			f.ctx = ctx
		}
	}
}

// WithPaths prefills the path fields.
func WithPaths(survey, recruitment, output string) Option {
	return func(f *Form) {
		f.inputs[fieldSurvey].SetValue(survey)
		f.inputs[fieldRecruitment].SetValue(recruitment)
		f.inputs[fieldOutput].SetValue(output)
	}
}

// Compile-time check that Form implements tea.Model.
var _ tea.Model = (*Form)(nil)

// Form is the interactive reconciliation form.
type Form struct {
	inputs  []textinput.Model
	focus   int
	dryRun  bool
	backup  bool
	running bool

	result *diverso.Result
	err    error

	runner    Runner
	ctx       context.Context
	spinner   spinner.Model
	logConfig *logging.Config
	logCloser io.Closer
	logPath   string

	width int
}

// New creates the form with empty fields and default settings.
func New(opts ...Option) *Form {
	placeholders := []string{
		"path to the survey table (csv, tsv, or xlsx)",
		"path to the recruitment table",
		"path of the output file",
		"columns to keep, comma separated (empty keeps all)",
	}

	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "> "
		ti.CharLimit = 512
		inputs[i] = ti
	}
	inputs[fieldSurvey].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	form := &Form{
		inputs:  inputs,
		backup:  true,
		runner:  defaultRunner,
		ctx:     context.Background(),
		spinner: sp,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(form)
		}
	}

	return form
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		for i := range f.inputs {
			f.inputs[i].Width = clampWidth(msg.Width - 6)
		}
		return f, nil

	case resultMsg:
		f.running = false
		f.result = msg.result
		f.err = msg.err
		f.closeRunLog()
		return f, nil

	case spinner.TickMsg:
		if !f.running {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			f.closeRunLog()
			return f, tea.Quit
		case "ctrl+d":
			f.dryRun = !f.dryRun
			return f, nil
		case "ctrl+b":
			f.backup = !f.backup
			return f, nil
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		case "enter":
			switch f.focus {
			case fieldQuit:
				f.closeRunLog()
				return f, tea.Quit
			case fieldRun:
				return f, f.startRun()
			default:
				return f, f.setFocus(f.focus + 1)
			}
		}
	}

	// Everything else goes to the focused text input.
	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

// setFocus moves focus to the field at index, wrapping around.
func (f *Form) setFocus(index int) tea.Cmd {
	f.focus = ((index % fieldCount) + fieldCount) % fieldCount

	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// startRun launches the pipeline unless one is already in flight.
func (f *Form) startRun() tea.Cmd {
	if f.running {
		return nil
	}
	f.running = true
	f.result = nil
	f.err = nil

	opts := f.pipelineOptions(f.openRunLog())
	ctx := f.ctx
	runner := f.runner

	run := func() tea.Msg {
		result, err := runner(ctx, opts...)
		return resultMsg{result: result, err: err}
	}
	return tea.Batch(run, f.spinner.Tick)
}

// openRunLog creates the per run log file next to the output table. The
// terminal stays clean either way: when the file cannot be created the
// run proceeds with a silent logger.
func (f *Form) openRunLog() zerolog.Logger {
	f.logPath = ""
	if f.logConfig == nil {
		return zerolog.Nop()
	}

	output := strings.TrimSpace(f.inputs[fieldOutput].Value())
	if output == "" {
		return zerolog.Nop()
	}

	path := strings.TrimSuffix(output, filepath.Ext(output)) + constants.RunLogExtension
	logger, closer, err := logging.NewFileLogger(f.logConfig, path)
	if err != nil {
		return zerolog.Nop()
	}

	f.logCloser = closer
	f.logPath = path
	return logger
}

func (f *Form) closeRunLog() {
	if f.logCloser != nil {
		_ = f.logCloser.Close()
		f.logCloser = nil
	}
}

// pipelineOptions assembles pipeline options from the form state.
func (f *Form) pipelineOptions(logger zerolog.Logger) []diverso.Option {
	opts := []diverso.Option{
		diverso.WithSurveyPath(strings.TrimSpace(f.inputs[fieldSurvey].Value())),
		diverso.WithRecruitmentPath(strings.TrimSpace(f.inputs[fieldRecruitment].Value())),
		diverso.WithOutputPath(strings.TrimSpace(f.inputs[fieldOutput].Value())),
		diverso.WithBackup(f.backup),
		diverso.WithDryRun(f.dryRun),
		diverso.WithLogger(logger),
	}
	if whitelist := splitWhitelist(f.inputs[fieldWhitelist].Value()); len(whitelist) > 0 {
		opts = append(opts, diverso.WithWhitelist(whitelist...))
	}
	return opts
}

// splitWhitelist turns a comma separated field into column names.
func splitWhitelist(raw string) []string {
	var columns []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			columns = append(columns, name)
		}
	}
	return columns
}

func clampWidth(w int) int {
	if w < 20 {
		return 20
	}
	if w > 120 {
		return 120
	}
	return w
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	buttonStyle = lipgloss.NewStyle().Padding(0, 2)
	activeStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5B8DEF"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).Padding(0, 1).MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Diverso · study table reconciliation"))
	b.WriteString("\n")

	labels := []string{"Survey", "Recruitment", "Output", "Whitelist"}
	for i, label := range labels {
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.renderToggles())
	b.WriteString("\n\n")
	b.WriteString(f.renderButtons())

	if panel := f.renderStatus(); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Tab → next field    Ctrl+D → dry run    Ctrl+B → backup    Esc → quit"))
	b.WriteString("\n")

	return b.String()
}

func (f *Form) renderToggles() string {
	return fmt.Sprintf("%s dry run    %s backup", checkbox(f.dryRun), checkbox(f.backup))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (f *Form) renderButtons() string {
	run := buttonStyle.Render("Run")
	if f.focus == fieldRun {
		run = activeStyle.Render("Run")
	}
	quit := buttonStyle.Render("Quit")
	if f.focus == fieldQuit {
		quit = activeStyle.Render("Quit")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, run, "  ", quit)
}

// renderStatus shows the running spinner, the last error, or the last
// result summary.
func (f *Form) renderStatus() string {
	switch {
	case f.running:
		return panelStyle.Render(f.spinner.View() + " Running reconciliation...")
	case f.err != nil:
		return panelStyle.Render(errorStyle.Render("Run failed: " + f.err.Error()))
	case f.result != nil:
		lines := []string{f.result.Summary()}
		if f.result.BackupPath != "" {
			lines = append(lines, "Backup: "+f.result.BackupPath)
		}
		if f.logPath != "" {
			lines = append(lines, "Log: "+f.logPath)
		}
		return panelStyle.Render(strings.Join(lines, "\n"))
	default:
		return ""
	}
}
