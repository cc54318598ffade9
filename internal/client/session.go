package client

import "context"

const (
	WelcomeBackToast = "💚 Welcome back! Take a deep breath—you're in a safe space."
	WelcomeToast     = "🎉 Welcome to ShareSpace!"
	LoginFailed      = "Login failed"
	SignupFailed     = "Signup failed"
)

// Session runs the login and signup flows and records their outcome in
// local storage.
type Session struct {
	api     *Client
	local   *LocalStorage
	session *SessionStorage
}

type Outcome struct {
	Token string
	User  *User
	// Toast is the success notice to show, if any.
	Toast string
}

func NewSession(api *Client, local *LocalStorage, session *SessionStorage) *Session {
	if session == nil {
		session = NewSessionStorage()
	}
	return &Session{api: api, local: local, session: session}
}

func (s *Session) API() *Client {
	return s.api
}

// Login shows the welcome-back toast only for the first login of the process.
func (s *Session) Login(ctx context.Context, email, password string) (Outcome, error) {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.local.SaveSession(res.Token, res.User); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Token: res.Token, User: res.User}
	if s.session.GetItem(ShownLoginToastKey) != "true" {
		out.Toast = WelcomeBackToast
		s.session.SetItem(ShownLoginToastKey, "true")
	}
	return out, nil
}

// Signup registers and, when the response carries no token, logs in with the
// same credentials.
func (s *Session) Signup(ctx context.Context, name, email, password string) (Outcome, error) {
	res, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		return Outcome{}, err
	}

	token, user := res.Token, res.User
	if token == "" {
		loginRes, err := s.api.Login(ctx, email, password)
		if err != nil {
			return Outcome{}, err
		}
		token, user = loginRes.Token, loginRes.User
	}

	if err := s.local.SaveSession(token, user); err != nil {
		return Outcome{}, err
	}
	return Outcome{Token: token, User: user, Toast: WelcomeToast}, nil
}

// Current returns the stored token and user without contacting the server.
func (s *Session) Current() (string, *User, error) {
	return s.local.Session()
}

func (s *Session) Logout() error {
	return s.local.ClearSession()
}
