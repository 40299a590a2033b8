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

// clamp returns val clamped between minVal and maxVal.
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// SignedIn is emitted when credentials check out.
type SignedIn struct {
	Session *service.Session
}

// SwitchToSignUp asks the app to show the registration form.
type SwitchToSignUp struct{}

type signInResultMsg struct {
	session *service.Session
	err     error
}

// SignInView is the credential prompt shown at startup.
type SignInView struct {
	svc    *service.Service
	styles *styles.Styles
	keys   keys.KeyMap

	username textinput.Model
	password textinput.Model
	focusIdx int // 0=username, 1=password, 2=submit
	errText  string

	width  int
	height int
}

func NewSignInView(svc *service.Service) *SignInView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	return &SignInView{
		svc:      svc,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		username: username,
		password: password,
	}
}

func (v *SignInView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *SignInView) submit() tea.Cmd {
	user := v.username.Value()
	pass := v.password.Value()
	return func() tea.Msg {
		session, err := v.svc.SignIn(user, pass)
		return signInResultMsg{session: session, err: err}
	}
}

func (v *SignInView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case signInResultMsg:
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrInvalidCredentials) {
				v.errText = "Wrong username or password."
			} else {
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
		case msg.String() == "ctrl+n":
			return v, func() tea.Msg { return SwitchToSignUp{} }
		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % 3
			v.updateFocus()
			return v, nil
		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + 2) % 3
			v.updateFocus()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < 2 {
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
	}
	return v, cmd
}

func (v *SignInView) updateFocus() {
	v.username.Blur()
	v.password.Blur()
	switch v.focusIdx {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	}
}

func (v *SignInView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	usernameStyle := s.Input
	passwordStyle := s.Input
	btnStyle := s.Button
	switch v.focusIdx {
	case 0:
		usernameStyle = s.InputFocused
	case 1:
		passwordStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	rows := []string{
		s.Title.Render("Dream Chaser"),
		s.TitleMuted.Render("Sign in to chase your goals"),
		"",
		usernameStyle.Width(inputWidth).Render(v.username.View()),
		passwordStyle.Width(inputWidth).Render(v.password.View()),
		"",
		btnStyle.Render(" Sign In "),
	}
	if v.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(v.errText))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Tab: next • Ctrl+N: create account • Ctrl+C: quit"))

	form := lipgloss.JoinVertical(lipgloss.Center, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
