package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Users & Auth — via PostgREST
// ============================================================

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.ListUsers")
	defer span.End()

	body, err := c.getWithRetry(ctx, "users?order=role.asc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/users", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return []domain.User{}, nil
	}

	var rows []domain.User
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return rows, nil
}

func (c *Client) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Store.GetUserByID")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("users?id=eq.%s&limit=1", userID))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/users", Err: err}
	}

	var rows []domain.User
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}
	return &rows[0], nil
}

// --- Credentials ---

func (c *Client) GetCredentialByUsername(ctx context.Context, username string) (*domain.UserCredential, error) {
	ctx, span := tracer.Start(ctx, "Store.GetCredentialByUsername")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("user_credentials?username=eq.%s&limit=1", username))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/user_credentials", Err: err}
	}

	var rows []domain.UserCredential
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode credential: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil // absence is not an error here; auth decides
	}
	return &rows[0], nil
}

// --- Refresh tokens ---

type refreshTokenRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	TokenHash string `json:"token_hash"`
	ExpiresAt string `json:"expires_at"`
}

func (c *Client) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "Store.StoreRefreshToken")
	defer span.End()

	row := map[string]any{
		"id":         uuid.NewString(),
		"user_id":    userID,
		"token_hash": tokenHash,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
	_, err := c.doPost(ctx, "auth_refresh_tokens", row)
	return err
}

func (c *Client) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Store.GetRefreshToken")
	defer span.End()

	body, err := c.getWithRetry(ctx, fmt.Sprintf("auth_refresh_tokens?token_hash=eq.%s&limit=1", tokenHash))
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "store/auth_refresh_tokens", Err: err}
	}

	var rows []refreshTokenRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode refresh_token: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &domain.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: parseDate(r.ExpiresAt),
	}, nil
}

func (c *Client) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "Store.RevokeRefreshToken")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("auth_refresh_tokens?token_hash=eq.%s", tokenHash))
}

func (c *Client) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "Store.RevokeAllRefreshTokens")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("auth_refresh_tokens?user_id=eq.%s", userID))
}
