//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/auth"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens string

func (s staticTokens) Get(context.Context) (string, bool) {
	return string(s), s != ""
}

// newBackend starts an httptest server answering every request with status and body.
// The last request seen is stored in last.
func newBackend(t *testing.T, status int, body string, last *atomic.Pointer[http.Request]) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// TestNew_ValidatesBaseURL verifies that New rejects empty base URLs.
func TestNew_ValidatesBaseURL(t *testing.T) {
	t.Parallel()

	c, err := New("  ", nil)
	require.Error(t, err)
	require.Nil(t, c)
}

// TestLogin_Success checks the path, body and absence of a bearer header on login.
func TestLogin_Success(t *testing.T) {
	t.Parallel()

	var (
		last atomic.Pointer[http.Request]
		body = make(chan string, 1)
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.Store(r.Clone(context.Background()))

		raw, _ := io.ReadAll(r.Body)
		body <- string(raw)

		_, _ = io.WriteString(w, `{"accessToken":"tok123","refreshToken":"ref456"}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", staticTokens("stale"))
	require.NoError(t, err)

	pair, err := c.Login(context.Background(), auth.Credentials{LoginID: "admin@boombim.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, &auth.TokenPair{AccessToken: "tok123", RefreshToken: "ref456"}, pair)

	req := last.Load()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, LoginPath, req.URL.Path)
	require.Empty(t, req.Header.Get("Authorization"))
	require.NotEmpty(t, req.Header.Get(RequestIDHeader))
	require.Contains(t, req.Header.Get("User-Agent"), "boombim-admin/")
	require.JSONEq(t, `{"loginId":"admin@boombim.com","password":"secret"}`, <-body)
}

// TestSendAlarm_BearerHeader verifies the stored token is attached and the result is decoded unmodified.
func TestSendAlarm_BearerHeader(t *testing.T) {
	t.Parallel()

	var last atomic.Pointer[http.Request]

	srv := newBackend(t, http.StatusOK,
		`{"alarmId":7,"status":"DONE","successCount":10,"failureCount":0,"totalTargets":10,"completedAt":"2024-01-01T00:00:00Z"}`,
		&last)

	c, err := New(srv.URL, staticTokens("tok123"))
	require.NoError(t, err)

	result, err := c.SendAlarm(context.Background(), &alarm.Request{Title: "공지", Message: "내용", Type: alarm.TypeAnnouncement})
	require.NoError(t, err)

	completedAt := "2024-01-01T00:00:00Z"
	require.Equal(t, &alarm.Result{
		AlarmID:      7,
		Status:       "DONE",
		SuccessCount: 10,
		TotalTargets: 10,
		CompletedAt:  &completedAt,
	}, result)

	require.Equal(t, SendAlarmPath, last.Load().URL.Path)
	require.Equal(t, "Bearer tok123", last.Load().Header.Get("Authorization"))

	// Without a token no header is sent.
	c, err = New(srv.URL, staticTokens(""))
	require.NoError(t, err)

	_, err = c.SendAlarm(context.Background(), alarm.NewRequest())
	require.NoError(t, err)
	require.Empty(t, last.Load().Header.Get("Authorization"))
}

// TestErrorMapping covers structured, empty-message, malformed and unreachable responses.
func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
	}{
		{
			name:    "structured",
			status:  http.StatusBadRequest,
			body:    `{"status":400,"code":2001,"message":"제목이 너무 깁니다.","time":"2024-01-01T00:00:00"}`,
			kind:    failure.ErrServerRejected,
			message: "제목이 너무 깁니다.",
		},
		{
			name:    "structured without message",
			status:  http.StatusInternalServerError,
			body:    `{"status":500,"code":9999}`,
			kind:    failure.ErrServerRejected,
			message: failure.MessageSend,
		},
		{
			name:    "html error page",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			kind:    failure.ErrNetworkUnavailable,
			message: failure.MessageNetwork,
		},
		{
			name:    "malformed success body",
			status:  http.StatusOK,
			body:    `{"alarmId":`,
			kind:    failure.ErrNetworkUnavailable,
			message: failure.MessageNetwork,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    ``,
			kind:    failure.ErrUnauthorized,
			message: failure.MessageUnauthorized,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var last atomic.Pointer[http.Request]

			srv := newBackend(t, tc.status, tc.body, &last)

			c, err := New(srv.URL, staticTokens("tok123"))
			require.NoError(t, err)

			result, err := c.SendAlarm(context.Background(), alarm.NewRequest())
			require.Nil(t, result)
			require.ErrorIs(t, err, tc.kind)
			require.Equal(t, tc.message, failure.Message(err))
		})
	}
}

// TestSendAlarm_Unreachable verifies connection errors map to NetworkUnavailable.
func TestSendAlarm_Unreachable(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	c, err := New("http://"+addr, staticTokens("tok123"), WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.SendAlarm(context.Background(), alarm.NewRequest())
	require.ErrorIs(t, err, failure.ErrNetworkUnavailable)
	require.Equal(t, failure.MessageNetwork, failure.Message(err))
}

// TestSendAlarm_Timeout verifies a slow backend is cut off by the client timeout.
func TestSendAlarm_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, nil, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.SendAlarm(context.Background(), alarm.NewRequest())
	require.ErrorIs(t, err, failure.ErrNetworkUnavailable)
}

// TestOnUnauthorized verifies that 401 fans out to subscribers and unsubscribe stops delivery.
func TestOnUnauthorized(t *testing.T) {
	t.Parallel()

	var last atomic.Pointer[http.Request]

	srv := newBackend(t, http.StatusUnauthorized, `{"status":401,"code":1002,"message":"토큰이 만료되었습니다."}`, &last)

	c, err := New(srv.URL, staticTokens("expired"), WithUserAgent("test-agent"))
	require.NoError(t, err)

	var first, second atomic.Int32

	unsubscribe := c.OnUnauthorized(func(context.Context) { first.Add(1) })
	c.OnUnauthorized(func(context.Context) { second.Add(1) })

	_, err = c.SendAlarm(context.Background(), alarm.NewRequest())
	require.ErrorIs(t, err, failure.ErrUnauthorized)
	require.Equal(t, "토큰이 만료되었습니다.", failure.Message(err))
	require.Equal(t, "test-agent", last.Load().Header.Get("User-Agent"))

	unsubscribe()

	_, err = c.Login(context.Background(), auth.Credentials{LoginID: "a", Password: "b"})
	require.ErrorIs(t, err, failure.ErrUnauthorized)

	require.Equal(t, int32(1), first.Load())
	require.Equal(t, int32(2), second.Load())
}
