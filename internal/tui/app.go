package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studentportal/profilecli/internal/profile"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenForm    Screen = "form"
	ScreenSuccess Screen = "success"
)

// submitResultMsg carries the submitter's answer back to the update loop
type submitResultMsg struct {
	formID  int
	attempt *profile.Attempt
	err     error
}

// Options configures the application
type Options struct {
	// Submitter persists the profile. Required.
	Submitter profile.Submitter

	// Initial prefills the form, e.g. with a profile fetched from the server
	Initial profile.ProfileDraft

	// Gateway is shown in the header, typically the API base URL
	Gateway string

	// Context is passed to the submitter. Defaults to context.Background().
	Context context.Context
}

// AppModel is the top-level coordinator model. It owns IsSubmitting and runs
// the submitter off the update loop.
type AppModel struct {
	CurrentScreen Screen

	Form FormModel

	// IsSubmitting is true while a submitter call dispatched by this model
	// has not answered yet
	IsSubmitting bool

	// Saved is the draft the submitter accepted last
	Saved       profile.ProfileDraft
	LastOutcome profile.Outcome

	submitter profile.Submitter
	ctx       context.Context
	gateway   string
	formSeq   int

	// UI state
	Width  int
	Height int

	// Help
	Help        help.Model
	SuccessKeys successKeyMap
}

// NewAppModel creates the application model with the form mounted
func NewAppModel(opts Options) AppModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := AppModel{
		CurrentScreen: ScreenForm,
		submitter:     opts.Submitter,
		ctx:           ctx,
		gateway:       opts.Gateway,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Help:          help.New(),
		SuccessKeys:   newSuccessKeyMap(),
	}
	m.mountForm(opts.Initial)
	return m
}

// mountForm replaces the form with a fresh one. Results of submissions
// started by an earlier form are ignored from then on.
func (m *AppModel) mountForm(initial profile.ProfileDraft) {
	m.formSeq++
	m.Form = NewFormModel(initial)
	m.Form.id = m.formSeq
	m.Form.Width = m.Width
	m.Form.Height = m.Height
	m.IsSubmitting = false
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Form.Width = msg.Width
		m.Form.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}

	switch m.CurrentScreen {
	case ScreenForm:
		return m.updateForm(msg)
	case ScreenSuccess:
		return m.handleSuccessScreen(msg)
	}
	return m, nil
}

// updateForm delegates to the form and dispatches any submission it started
func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.Form.Update(msg, m.IsSubmitting)
	m.Form = updated

	attempt := m.Form.PendingAttempt()
	if attempt == nil {
		return m, cmd
	}

	m.Form = m.Form.ClearPendingAttempt()
	m.IsSubmitting = true
	return m, tea.Batch(cmd, m.submitCmd(attempt), m.Form.Spinner.Tick)
}

// submitCmd calls the submitter in a command goroutine
func (m AppModel) submitCmd(attempt *profile.Attempt) tea.Cmd {
	s := m.submitter
	ctx := m.ctx
	formID := m.Form.id

	return func() tea.Msg {
		if s == nil {
			return submitResultMsg{formID: formID, attempt: attempt, err: errors.New("no submitter configured")}
		}
		return submitResultMsg{
			formID:  formID,
			attempt: attempt,
			err:     s.SubmitProfile(ctx, attempt.Draft),
		}
	}
}

// handleSubmitResult resolves the attempt on the form that started it
func (m AppModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.formID != m.Form.id {
		return m, nil
	}

	m.IsSubmitting = false
	m.LastOutcome = m.Form.Controller().Resolve(msg.attempt, msg.err)

	if m.LastOutcome.Succeeded() {
		m.Saved = msg.attempt.Draft
		m.CurrentScreen = ScreenSuccess
	}
	return m, nil
}

// handleSuccessScreen handles user input on the success screen
func (m AppModel) handleSuccessScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.SuccessKeys.Edit):
		m.mountForm(m.Saved)
		m.CurrentScreen = ScreenForm
		return m, m.Form.Init()
	case key.Matches(keyMsg, m.SuccessKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenForm:
		return RenderApplicationContainer(m.Form.View(m.IsSubmitting), m.gateway, m.Form.HelpView(), m.Width, m.Height)
	case ScreenSuccess:
		return RenderApplicationContainer(m.buildSuccessContent(), m.gateway, m.Help.View(m.SuccessKeys), m.Width, m.Height)
	default:
		return "Unknown screen"
	}
}

// buildSuccessContent builds the success screen content
func (m AppModel) buildSuccessContent() string {
	var b strings.Builder

	b.WriteString(SuccessTitleStyle.Render("✓ Profile saved"))
	b.WriteString("\n\n")

	for _, spec := range profile.FieldSpecs {
		value := m.Saved.Get(spec.Field)
		if value == "" {
			value = "-"
		}
		b.WriteString(MenuItemStyle.Render(DetailKeyStyle.Render(spec.Label) + value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Press e to edit again or q to quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the interactive form and blocks until the user quits. It
// returns the final model so callers can inspect what was saved.
func Run(opts Options) (AppModel, error) {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return AppModel{}, fmt.Errorf("failed to run profile form: %w", err)
	}
	m, _ := final.(AppModel)
	return m, nil
}
