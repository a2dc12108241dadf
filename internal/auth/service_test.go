package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

// testHashParams keep argon2 fast in tests.
var testHashParams = &HashParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type memUserStore struct {
	users map[string]User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]User{}}
}

func (s *memUserStore) CreateUser(ctx context.Context, user User) error {
	if _, ok := s.users[user.Email]; ok {
		return ErrEmailAlreadyExists
	}
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	u, ok := s.users[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func newTestService() (*Service, *memUserStore) {
	users := newMemUserStore()
	svc := NewService(users, NewArgon2Hasher(testHashParams), NewJWTSigner("test-secret", time.Hour))
	return svc, users
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, users := newTestService()
	ctx := context.Background()

	if err := svc.SignUp(ctx, "Ama@Example.com", "correct-horse"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, ok := users.users["ama@example.com"]; !ok {
		t.Fatal("email must be stored lowercased")
	}

	res, err := svc.SignIn(ctx, "ama@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if res.TokenType != "Bearer" || res.AccessToken == "" || res.UserID == "" {
		t.Fatalf("incomplete signin result: %+v", res)
	}
	if res.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("ExpiresIn = %d", res.ExpiresIn)
	}

	// the token round-trips back to the same user id
	userID, err := svc.CurrentUserID(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("token verification failed: %v", err)
	}
	if userID != res.UserID {
		t.Errorf("token resolved to %q, want %q", userID, res.UserID)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.SignUp(ctx, "", "correct-horse"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty email: got %v", err)
	}
	if err := svc.SignUp(ctx, "a@b.com", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short password: got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.SignUp(ctx, "ama@example.com", "correct-horse"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if err := svc.SignUp(ctx, "AMA@example.com", "another-pass"); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("duplicate email: got %v", err)
	}
}

func TestSignInFailuresCollapse(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.SignUp(ctx, "ama@example.com", "correct-horse"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// unknown user and wrong password must be indistinguishable
	if _, err := svc.SignIn(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v", err)
	}
	if _, err := svc.SignIn(ctx, "ama@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
}

func TestCurrentUserIDRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.CurrentUserID(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v", err)
	}
}

func TestVerifyRejectsTokenFromOtherSecret(t *testing.T) {
	ctx := context.Background()
	other := NewJWTSigner("other-secret", time.Hour)
	token, _, err := other.SignAccessToken(ctx, AccessClaims{UserID: "u1"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	svc, _ := newTestService()
	if _, err := svc.CurrentUserID(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("forged token: got %v", err)
	}
}

func TestHasherRoundTrip(t *testing.T) {
	h := NewArgon2Hasher(testHashParams)
	ctx := context.Background()

	encoded, err := h.HashPassword(ctx, "correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	ok, err := h.VerifyPassword(ctx, "correct-horse", encoded)
	if err != nil || !ok {
		t.Fatalf("verify = %v, %v", ok, err)
	}
	ok, err = h.VerifyPassword(ctx, "wrong", encoded)
	if err != nil {
		t.Fatalf("verify errored: %v", err)
	}
	if ok {
		t.Fatal("wrong password must not verify")
	}
}
