package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/boombim-admin/internal/app"
	"github.com/oshokin/boombim-admin/internal/config"
)

//nolint:gochecknoglobals // Shared codec configuration.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fakeBackend emulates the admin API for login and broadcast calls.
type fakeBackend struct {
	// mu guards every field below.
	mu sync.Mutex
	// validToken is accepted on /api/alarm/send, anything else yields 401.
	validToken string
	// sendAuth records the Authorization header of every send call.
	sendAuth []string
	// sent records every decoded send body.
	sent []map[string]string
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

			return
		}

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body["loginId"] != "admin@boombim.com" || body["password"] != "secret" {
			writeJSON(w, http.StatusBadRequest, `{"status":400,"code":1001,"message":"아이디 또는 비밀번호가 올바르지 않습니다.","time":"2024-01-01T00:00:00"}`)

			return
		}

		writeJSON(w, http.StatusOK, `{"accessToken":"tok123","refreshToken":"ref456"}`)
	})

	mux.HandleFunc("/api/alarm/send", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)

			return
		}

		raw, _ := io.ReadAll(r.Body)

		var body map[string]string
		_ = json.Unmarshal(raw, &body)

		b.mu.Lock()
		b.sendAuth = append(b.sendAuth, r.Header.Get("Authorization"))
		valid := r.Header.Get("Authorization") == "Bearer "+b.validToken
		if valid {
			b.sent = append(b.sent, body)
		}
		b.mu.Unlock()

		if !valid {
			writeJSON(w, http.StatusUnauthorized, `{"status":401,"code":1002,"message":"유효하지 않은 토큰입니다.","time":"2024-01-01T00:00:00"}`)

			return
		}

		writeJSON(w, http.StatusOK,
			`{"alarmId":7,"status":"DONE","successCount":10,"failureCount":0,"totalTargets":10,"completedAt":"2024-01-01T00:00:00Z"}`)
	})

	return mux
}

func (b *fakeBackend) authHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.sendAuth...)
}

func (b *fakeBackend) sentBodies() []map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]map[string]string(nil), b.sent...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// startBackend serves a fake admin API and returns app options pointing at it
// with a private settings file and session file.
func startBackend(t *testing.T, b *fakeBackend) app.Options {
	t.Helper()

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	return optionsFor(t, srv.URL)
}

// optionsFor writes a settings file for baseURL into a temporary directory.
func optionsFor(t *testing.T, baseURL string) app.Options {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		BaseURL:     baseURL,
		SessionFile: filepath.Join(dir, "session.json"),
		LogLevel:    "error",
	}))

	return app.Options{ConfigPath: cfgPath}
}
