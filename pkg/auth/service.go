package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the admin token for HTML pages. The JSON
// API uses bearer headers; the cookie only exists so browser navigation to
// /admin works without a client shim.
const CookieName = "admin_token"

// ErrBadCredentials is returned on login failure. It deliberately does not
// distinguish unknown user from wrong password.
var ErrBadCredentials = errors.New("auth: incorrect username or password")

// ErrUserNotFound is returned by stores when a username has no record.
var ErrUserNotFound = errors.New("auth: user not found")

// User is an admin account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
}

// UserStore looks up and creates admin accounts.
type UserStore interface {
	GetUser(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
}

// Service issues and validates admin tokens.
type Service struct {
	users    UserStore
	verifier *JWTVerifier
	ttl      time.Duration
}

// NewService builds an auth service over a user store and signing secret.
func NewService(users UserStore, secret []byte) *Service {
	return &Service{
		users:    users,
		verifier: NewJWTVerifier(secret),
		ttl:      TokenTTL,
	}
}

// Login checks credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if s.users == nil {
		return "", errors.New("auth: user store is required")
	}
	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !CheckPassword(user.HashedPassword, password) {
		return "", ErrBadCredentials
	}
	return s.verifier.Generate(user.Username, s.ttl)
}

// Authenticate resolves a session from an Authorization header or, failing
// that, the admin cookie. Returns nil and an error when neither carries a
// valid token.
func (s *Service) Authenticate(authorization, cookieHeader string) (*Session, error) {
	token := bearerToken(authorization)
	if token == "" {
		token = cookieToken(cookieHeader)
	}
	if token == "" {
		return nil, ErrInvalidToken
	}
	username, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	return &Session{Username: username}, nil
}

// SessionCookie builds the Set-Cookie value for a freshly issued token.
func (s *Service) SessionCookie(token string) string {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie.String()
}

// ClearCookie builds the Set-Cookie value that expires the admin cookie.
func (s *Service) ClearCookie() string {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie.String()
}

func bearerToken(authorization string) string {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
}

func cookieToken(cookieHeader string) string {
	if cookieHeader == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
