package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements the auth collaborator surface: sign up, sign in,
// and turning a bearer token back into a user id for the send flow.
type Service struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
}

func NewService(users UserStore, hasher PasswordHasher, signer TokenSigner) *Service {
	return &Service{users: users, hasher: hasher, signer: signer}
}

// SignInResult is what a successful login hands back to the client.
type SignInResult struct {
	AccessToken string
	ExpiresIn   int64 // seconds
	TokenType   string
	UserID      string
}

// SignUp creates the account. Email is stored lowercased.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return ErrInvalidInput
	}
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	}

	hash, err := s.hasher.HashPassword(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.CreateUser(ctx, User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
}

// SignIn verifies credentials and issues an access token. Lookup and
// verification failures collapse into one error so the response does
// not reveal which half was wrong.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	match, err := s.hasher.VerifyPassword(ctx, password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.signer.SignAccessToken(ctx, AccessClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &SignInResult{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		TokenType:   "Bearer",
		UserID:      user.ID,
	}, nil
}

// CurrentUserID resolves a bearer token to the opaque user id the
// wizard and preference screens use.
func (s *Service) CurrentUserID(ctx context.Context, token string) (string, error) {
	claims, err := s.signer.VerifyAccessToken(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
