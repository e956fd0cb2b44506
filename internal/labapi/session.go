package labapi

import (
	"context"
	"net/http"
	"sync"
)

// Session holds the credentials of the signed-in user.  One Session is
// shared by every screen of a client and passed down explicitly.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	email        string
	role         string
}

func NewSession() *Session { return &Session{} }

// Set stores a fresh token pair.
func (s *Session) Set(access, refresh, email, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken, s.email, s.role = access, refresh, email, role
}

// Clear forgets the tokens and the identity.
func (s *Session) Clear() {
	s.Set("", "", "", "")
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// LoggedIn reports whether an access token is held.
func (s *Session) LoggedIn() bool { return s.AccessToken() != "" }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	User struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
	Refresh struct {
		Token string `json:"token"`
	} `json:"refresh"`
}

// Login exchanges credentials for a token pair and stores it on the
// client's session.
func (client *Client) Login(ctx context.Context, email, password string) error {
	const op = "login"
	data, err := client.do(ctx, op, http.MethodPost, "/api/auth/login/", loginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	var tokens tokenResponse
	if err := decodeInto(op, data, &tokens); err != nil {
		return err
	}
	if tokens.Access.Token == "" {
		return &Error{Kind: KindServer, Op: op, Body: "no access token in response"}
	}
	if tokens.User.Email == "" {
		tokens.User.Email = email
	}
	client.session.Set(tokens.Access.Token, tokens.Refresh.Token, tokens.User.Email, tokens.User.Role)
	return nil
}

// Logout revokes the refresh token on the server and clears the
// session.  The session is cleared even if the server call fails.
func (client *Client) Logout(ctx context.Context) error {
	defer client.session.Clear()
	if !client.session.LoggedIn() {
		return nil
	}
	body := map[string]string{}
	if refresh := client.session.RefreshToken(); refresh != "" {
		body["refresh_token"] = refresh
	}
	_, err := client.do(ctx, "logout", http.MethodPost, "/api/auth/logout/", body)
	return err
}
