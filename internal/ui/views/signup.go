package views

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

// SwitchToSignIn asks the app to show the sign-in form again.
type SwitchToSignIn struct{}

type signUpResultMsg struct {
	session *service.Session
	err     error
}

// SignUpView is the account registration form.
type SignUpView struct {
	svc    *service.Service
	styles *styles.Styles
	keys   keys.KeyMap

	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focusIdx int // 0=username, 1=password, 2=confirm, 3=submit
	errText  string

	width  int
	height int
}

func NewSignUpView(svc *service.Service) *SignUpView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 100
	confirm.EchoMode = textinput.EchoPassword

	return &SignUpView{
		svc:      svc,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
		confirm:  confirm,
	}
}

func (v *SignUpView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *SignUpView) submit() tea.Cmd {
	if v.password.Value() != v.confirm.Value() {
		v.errText = "Passwords do not match."
		return nil
	}
	user := v.username.Value()
	pass := v.password.Value()
	return func() tea.Msg {
		if err := v.svc.SignUp(user, pass); err != nil {
			return signUpResultMsg{err: err}
		}
		session, err := v.svc.SignIn(user, pass)
		return signUpResultMsg{session: session, err: err}
	}
}

func (v *SignUpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case signUpResultMsg:
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, service.ErrUsernameTaken):
				v.errText = "That username is taken."
			case errors.Is(msg.err, service.ErrInvalidInput):
				v.errText = "Username and password must not be blank."
			default:
				v.errText = msg.err.Error()
			}
			return v, nil
		}
		return v, func() tea.Msg {
			return SignedIn{Session: msg.session}
		}

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return SwitchToSignIn{} }
		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % 4
			v.updateFocus()
			return v, nil
		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + 3) % 4
			v.updateFocus()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < 3 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	case 2:
		v.confirm, cmd = v.confirm.Update(msg)
	}
	return v, cmd
}

func (v *SignUpView) updateFocus() {
	v.username.Blur()
	v.password.Blur()
	v.confirm.Blur()
	switch v.focusIdx {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	case 2:
		v.confirm.Focus()
	}
}

func (v *SignUpView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	usernameStyle := s.Input
	passwordStyle := s.Input
	confirmStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		usernameStyle = s.InputFocused
	case 1:
		passwordStyle = s.InputFocused
	case 2:
		confirmStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	rows := []string{
		s.Title.Render("Create Account"),
		"",
		usernameStyle.Width(inputWidth).Render(v.username.View()),
		passwordStyle.Width(inputWidth).Render(v.password.View()),
		confirmStyle.Width(inputWidth).Render(v.confirm.View()),
		"",
		btnStyle.Render(" Sign Up "),
	}
	if v.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(v.errText))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: next • Esc: back to sign in"))

	form := lipgloss.JoinVertical(lipgloss.Center, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
