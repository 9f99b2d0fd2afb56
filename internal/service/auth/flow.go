package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domain "github.com/oshokin/boombim-admin/internal/domain/auth"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/service/common"
)

// Validation messages shown on the login screen.
const (
	MessageLoginIDRequired  = "이메일을 입력해주세요."
	MessagePasswordRequired = "비밀번호를 입력해주세요."

	// ConfirmLogoutQuestion is asked before an operator logout.
	ConfirmLogoutQuestion = "정말 로그아웃 하시겠습니까?"
)

// API is the part of the HTTP client the flow depends on.
type API interface {
	Login(ctx context.Context, credentials domain.Credentials) (*domain.TokenPair, error)
	OnUnauthorized(handler common.UnauthorizedHandler) (unsubscribe func())
}

// TokenStore persists the access token.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// Navigator returns the UI to its entry point, where the session is re-evaluated.
type Navigator func(ctx context.Context)

// Flow performs login and logout against the admin API.
type Flow struct {
	// api performs the login call and reports 401 responses.
	api API
	// tokens stores the access token.
	tokens TokenStore
	// navigate is called after every logout.
	navigate Navigator

	// mu guards unsubscribe.
	mu          sync.Mutex
	unsubscribe func()
}

// NewFlow creates a flow and subscribes it to the client's unauthorized event.
// A nil navigate is replaced by a no-op.
func NewFlow(api API, tokens TokenStore, navigate Navigator) *Flow {
	if navigate == nil {
		navigate = func(context.Context) {}
	}

	f := &Flow{
		api:      api,
		tokens:   tokens,
		navigate: navigate,
	}

	f.unsubscribe = api.OnUnauthorized(f.forceLogout)

	return f
}

// Close detaches the flow from the client's unauthorized event.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
}

// Login validates the credentials, authenticates and persists the access token.
// The refresh token of the response is discarded.
func (f *Flow) Login(ctx context.Context, loginID, password string) error {
	if strings.TrimSpace(loginID) == "" {
		return failure.Validation("loginId", MessageLoginIDRequired)
	}

	if strings.TrimSpace(password) == "" {
		return failure.Validation("password", MessagePasswordRequired)
	}

	logger.InfoKV(ctx, "Logging in", "login_id", loginID)

	pair, err := f.api.Login(ctx, domain.Credentials{
		LoginID:  loginID,
		Password: password,
	})
	if err != nil {
		logger.WarnKV(ctx, "Login failed", "login_id", loginID, "error", err)

		return err
	}

	if pair.AccessToken == "" {
		return failure.ServerRejected(0, 0, "", "", failure.MessageLogin)
	}

	if err = f.tokens.Set(ctx, pair.AccessToken); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	logger.InfoKV(ctx, "Logged in", "login_id", loginID)

	return nil
}

// Logout asks for confirmation, then clears the session and navigates to the entry point.
// It reports whether the logout happened.
func (f *Flow) Logout(ctx context.Context, confirmer Confirmer) (bool, error) {
	if confirmer != nil {
		ok, err := confirmer.Confirm(ctx, ConfirmLogoutQuestion)
		if err != nil {
			return false, fmt.Errorf("confirm logout: %w", err)
		}

		if !ok {
			return false, nil
		}
	}

	if err := f.tokens.Clear(ctx); err != nil {
		return false, err
	}

	logger.Info(ctx, "Logged out")
	f.navigate(ctx)

	return true, nil
}

// forceLogout reacts to a 401 from any call. It never asks for confirmation.
func (f *Flow) forceLogout(ctx context.Context) {
	if err := f.tokens.Clear(ctx); err != nil {
		logger.ErrorKV(ctx, "Failed to clear rejected session", "error", err)
	}

	logger.Warn(ctx, "Session rejected by the server, please log in again")
	f.navigate(ctx)
}
