package sessions

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPassword is returned when login is attempted with a wrong password.
var ErrInvalidPassword = errors.New("invalid password")

// Session represents an authenticated client session.
type Session struct {
	Token     string
	CreatedAt time.Time
}

// Repo stores active sessions.
type Repo interface {
	Save(s Session)
	Exists(token string) bool
	Delete(token string)
}

// Service handles password login and session lifecycle.
type Service struct {
	repo     Repo
	password string
}

func NewService(repo Repo, password string) *Service {
	return &Service{repo: repo, password: password}
}

// Login checks the access password and mints a new session token.
func (s *Service) Login(password string) (Session, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return Session{}, ErrInvalidPassword
	}
	sess := Session{
		Token:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	s.repo.Save(sess)
	return sess, nil
}

// Verify reports whether the token belongs to an active session.
func (s *Service) Verify(token string) bool {
	return s.repo.Exists(token)
}

// Reset ends the session. Callers are responsible for deleting the
// session's data before calling Reset.
func (s *Service) Reset(token string) {
	s.repo.Delete(token)
}
