package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/studentportal/profilecli/internal/profile"
)

// noFocus is the cursor value when nothing on the form has focus
const noFocus = -1

// FormModel is the profile form screen. All form state lives in its
// profile.Controller; the text inputs only mirror it for editing.
type FormModel struct {
	id     int
	ctrl   *profile.Controller
	inputs []textinput.Model

	// cursor is an index into inputs, len(inputs) for the submit button,
	// or noFocus
	cursor int

	// pending is a submission that passed validation and waits for the
	// host to run it
	pending *profile.Attempt

	Spinner spinner.Model
	Keys    formKeyMap
	Help    help.Model

	Width  int
	Height int
}

// NewFormModel creates a form with a fresh controller. Non-empty values in
// initial are loaded into the controller as if typed. The first field starts
// focused.
func NewFormModel(initial profile.ProfileDraft) FormModel {
	ctrl := profile.NewController()

	inputs := make([]textinput.Model, len(profile.FieldSpecs))
	for i, spec := range profile.FieldSpecs {
		in := textinput.New()
		in.Prompt = "  "
		in.Placeholder = spec.Placeholder
		in.CharLimit = spec.CharLimit
		in.Width = InputWidth
		if v := initial.Get(spec.Field); v != "" {
			in.SetValue(v)
			ctrl.SetField(spec.Field, in.Value())
		}
		inputs[i] = in
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := FormModel{
		ctrl:    ctrl,
		inputs:  inputs,
		cursor:  noFocus,
		Spinner: s,
		Keys:    newFormKeyMap(),
		Help:    help.New(),
		Width:   DefaultWidth,
		Height:  DefaultHeight,
	}
	m, _ = m.focusAt(0)
	return m
}

// Init starts the cursor blinking
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Controller returns the controller that owns this form's state
func (m FormModel) Controller() *profile.Controller {
	return m.ctrl
}

// PendingAttempt returns a submission waiting to be run, or nil
func (m FormModel) PendingAttempt() *profile.Attempt {
	return m.pending
}

// ClearPendingAttempt marks the pending submission as taken by the host
func (m FormModel) ClearPendingAttempt() FormModel {
	m.pending = nil
	return m
}

// Cursor returns the focused position: a field index, the submit button
// index (len(profile.Fields)), or -1 when nothing is focused.
func (m FormModel) Cursor() int {
	return m.cursor
}

func (m FormModel) buttonIndex() int {
	return len(m.inputs)
}

// Update handles a message. isSubmitting is owned by the host and disables
// the submit control while true.
func (m FormModel) Update(msg tea.Msg, isSubmitting bool) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		// Let the spinner stop once the submission is over
		if !isSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Submit):
			return m.submit(isSubmitting), nil
		case key.Matches(msg, m.Keys.Next):
			return m.moveFocus(1)
		case key.Matches(msg, m.Keys.Prev):
			return m.moveFocus(-1)
		case key.Matches(msg, m.Keys.Blur):
			return m.focusAt(noFocus)
		case key.Matches(msg, m.Keys.Enter):
			if m.cursor == m.buttonIndex() {
				return m.submit(isSubmitting), nil
			}
			return m.moveFocus(1)
		}
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput passes a message to the focused input and copies any
// change of its value into the controller
func (m FormModel) updateFocusedInput(msg tea.Msg) (FormModel, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.inputs) {
		return m, nil
	}

	before := m.inputs[m.cursor].Value()
	var cmd tea.Cmd
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)

	if after := m.inputs[m.cursor].Value(); after != before {
		m.ctrl.SetField(profile.Fields[m.cursor], after)
	}
	return m, cmd
}

// moveFocus moves the cursor by delta, wrapping over the fields and the
// submit button
func (m FormModel) moveFocus(delta int) (FormModel, tea.Cmd) {
	positions := len(m.inputs) + 1
	next := m.cursor
	if next == noFocus {
		if delta > 0 {
			next = -1
		} else {
			next = positions
		}
	}
	next = ((next+delta)%positions + positions) % positions
	return m.focusAt(next)
}

// focusAt blurs the current position and focuses idx
func (m FormModel) focusAt(idx int) (FormModel, tea.Cmd) {
	if m.cursor >= 0 && m.cursor < len(m.inputs) {
		m.inputs[m.cursor].Blur()
	}
	m.ctrl.OnBlur()

	m.cursor = idx
	if idx >= 0 && idx < len(m.inputs) {
		m.ctrl.OnFocus(profile.Fields[idx])
		return m, m.inputs[idx].Focus()
	}
	return m, nil
}

// submit starts a submit attempt unless one is already running
func (m FormModel) submit(isSubmitting bool) FormModel {
	if isSubmitting {
		return m
	}
	attempt, err := m.ctrl.Begin()
	if err != nil {
		return m
	}
	m.pending = attempt
	return m
}

// View renders the form body. The host wraps it in the application container.
func (m FormModel) View(isSubmitting bool) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Complete Your Profile"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Please fill in your information to continue"))
	b.WriteString("\n\n")

	if msg := m.ctrl.Error(); msg != "" {
		b.WriteString(ErrorBannerStyle.Render(wordwrap.String("✗ "+msg, m.wrapWidth())))
		b.WriteString("\n\n")
	}

	for i := range m.inputs {
		b.WriteString(m.renderField(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSubmitButton(isSubmitting))
	b.WriteString("\n")

	return b.String()
}

// HelpView renders the key help for the footer
func (m FormModel) HelpView() string {
	return m.Help.View(m.Keys)
}

// renderField renders a label line and the input below it
// Format: "→ Label * ✓" when focused, "  Label *" otherwise
func (m FormModel) renderField(i int) string {
	spec := profile.FieldSpecs[i]
	focused := m.ctrl.IsFocused(spec.Field)

	labelStyle := LabelStyle
	arrow := "  "
	if focused {
		labelStyle = FocusedLabelStyle
		arrow = "→ "
	}

	label := labelStyle.Render(spec.Label)
	if spec.Required {
		label += RequiredStyle.Render(" *")
	}
	if m.ctrl.Draft().Complete(spec.Field) {
		label += CheckStyle.Render(" ✓")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		arrow+label,
		"  "+m.inputs[i].View(),
	)
}

// renderSubmitButton renders the submit control, disabled while submitting
func (m FormModel) renderSubmitButton(isSubmitting bool) string {
	text := "[ " + profile.SubmitLabel(isSubmitting) + " ]"

	if isSubmitting {
		return "  " + m.Spinner.View() + " " + DisabledButtonStyle.Render(text)
	}
	if m.cursor == m.buttonIndex() {
		return "→ " + FocusedButtonStyle.Render(text)
	}
	return "  " + ButtonStyle.Render(text)
}

func (m FormModel) wrapWidth() int {
	w := m.Width - 12
	if w < 30 {
		w = 30
	}
	return w
}
