package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockAuthStore struct {
	users       map[string]*domain.User
	credentials map[string]*domain.UserCredential
	tokens      map[string]*domain.RefreshToken

	revokedAll []string
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{
		users:       make(map[string]*domain.User),
		credentials: make(map[string]*domain.UserCredential),
		tokens:      make(map[string]*domain.RefreshToken),
	}
}

func (m *mockAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	return m.users[userID], nil
}

func (m *mockAuthStore) GetCredentialByUsername(_ context.Context, username string) (*domain.UserCredential, error) {
	return m.credentials[username], nil
}

func (m *mockAuthStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	m.tokens[tokenHash] = &domain.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (m *mockAuthStore) GetRefreshToken(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.tokens[tokenHash], nil
}

func (m *mockAuthStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	delete(m.tokens, tokenHash)
	return nil
}

func (m *mockAuthStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	m.revokedAll = append(m.revokedAll, userID)
	for hash, tok := range m.tokens {
		if tok.UserID == userID {
			delete(m.tokens, hash)
		}
	}
	return nil
}

func (m *mockAuthStore) seedUser(t *testing.T, id, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	m.users[id] = &domain.User{ID: id, Name: username, Role: role}
	m.credentials[username] = &domain.UserCredential{
		UserID:       id,
		Username:     username,
		PasswordHash: string(hash),
	}
}

func newAuthService(store *mockAuthStore) *service.AuthService {
	return service.NewAuthService(store, "test-secret", 15*time.Minute, 720*time.Hour, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := newAuthService(store)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "segredo123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.UserID != "u1" || resp.Role != "admin" {
		t.Errorf("unexpected identity: %s / %s", resp.UserID, resp.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens issued")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expiresIn: got %d", resp.ExpiresIn)
	}
	if len(store.tokens) != 1 {
		t.Errorf("expected 1 stored refresh token, got %d", len(store.tokens))
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "errada"})

	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(newMockAuthStore())

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ninguem", Password: "x"})

	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := newAuthService(store)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "segredo123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// The old token died on use.
	if _, err := svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken}); err == nil {
		t.Error("expected the spent token to be rejected")
	}
	if len(store.tokens) != 1 {
		t.Errorf("expected exactly the rotated token stored, got %d", len(store.tokens))
	}
}

func TestRefresh_ExpiredToken(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := service.NewAuthService(store, "test-secret", 15*time.Minute, -time.Hour, zap.NewNop())

	login, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "segredo123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: login.RefreshToken})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
	if len(store.tokens) != 0 {
		t.Error("expired token must be revoked on use")
	}
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := newAuthService(store)

	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "segredo123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(store.tokens) != 0 {
		t.Error("expected all refresh tokens revoked")
	}
}

func TestValidateAccessToken(t *testing.T) {
	store := newMockAuthStore()
	store.seedUser(t, "u1", "ana", "segredo123", "admin")
	svc := newAuthService(store)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{Username: "ana", Password: "segredo123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(login.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Sub != "u1" || claims.Role != "admin" || claims.Type != "access" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Error("expected garbage token to be rejected")
	}

	other := service.NewAuthService(store, "another-secret", 15*time.Minute, time.Hour, zap.NewNop())
	if _, err := other.ValidateAccessToken(login.AccessToken); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}
