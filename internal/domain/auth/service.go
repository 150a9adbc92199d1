package auth

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 12 * time.Hour

type Service struct {
	Store     *Store
	JWTSecret string
}

func NewService(store *Store, jwtSecret string) *Service {
	return &Service{Store: store, JWTSecret: jwtSecret}
}

// Login verifies the credentials and issues a signed bearer token carrying the
// user's role. Lookup and password failures collapse into one error so the
// response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, AuthUser, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.JWTSecret, Claims{UserID: user.ID, Name: user.Name, Role: user.Role}, tokenTTL)
	if err != nil {
		return "", AuthUser{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		// Last-login is informational only.
		return token, user, nil
	}
	return token, user, nil
}
