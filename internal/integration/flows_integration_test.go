package integration

import (
	"bytes"
	"context"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/boombim-admin/internal/app"
	domain "github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/service/console"
	"github.com/oshokin/boombim-admin/internal/service/login"
	"github.com/oshokin/boombim-admin/internal/service/logout"
	"github.com/oshokin/boombim-admin/internal/service/send"
	"github.com/oshokin/boombim-admin/internal/service/status"
)

// TestLoginSendLogout_Roundtrip logs in, broadcasts with the stored token, logs out and broadcasts again.
func TestLoginSendLogout_Roundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &fakeBackend{validToken: "tok123"}
	opts := startBackend(t, backend)

	out := new(bytes.Buffer)
	require.NoError(t, login.Run(ctx, &login.Options{
		Options:  opts,
		LoginID:  "admin@boombim.com",
		Password: "secret",
		In:       strings.NewReader(""),
		Out:      out,
	}))

	a, err := app.New(ctx, &opts)
	require.NoError(t, err)

	token, ok := a.Session.Get(ctx)
	require.True(t, ok)
	require.Equal(t, "tok123", token)

	contents, err := os.ReadFile(a.Config.SessionFile)
	require.NoError(t, err)
	require.NotContains(t, string(contents), "ref456")
	a.Close()

	out.Reset()
	require.NoError(t, send.Run(ctx, &send.Options{
		Options: opts,
		Title:   "공지",
		Message: "내용",
		Out:     out,
	}))
	require.Contains(t, out.String(), "#7")

	out.Reset()
	require.NoError(t, status.Run(ctx, &status.Options{Options: opts, Out: out}))
	require.Contains(t, out.String(), "logged in")

	require.NoError(t, logout.Run(ctx, &logout.Options{
		Options: opts,
		In:      strings.NewReader("y\n"),
		Out:     new(bytes.Buffer),
	}))

	err = send.Run(ctx, &send.Options{Options: opts, Title: "공지", Message: "내용", Out: new(bytes.Buffer)})
	require.ErrorIs(t, err, failure.ErrUnauthorized)

	require.Equal(t, []string{"Bearer tok123", ""}, backend.authHeaders())
	require.Equal(t, []map[string]string{{"title": "공지", "message": "내용", "type": "ANNOUNCEMENT"}}, backend.sentBodies())
}

// TestLogin_ServerRejected shows the backend message and stores nothing.
func TestLogin_ServerRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := startBackend(t, &fakeBackend{validToken: "tok123"})

	err := login.Run(ctx, &login.Options{
		Options:  opts,
		LoginID:  "admin@boombim.com",
		Password: "wrong",
		In:       strings.NewReader(""),
		Out:      new(bytes.Buffer),
	})
	require.ErrorIs(t, err, failure.ErrServerRejected)
	require.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다.", failure.Message(err))

	a, err := app.New(ctx, &opts)
	require.NoError(t, err)

	defer a.Close()

	require.False(t, a.Session.IsAuthenticated(ctx))
}

// TestSend_UnauthorizedClearsSession verifies a rejected token is removed as a side effect.
func TestSend_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := startBackend(t, &fakeBackend{validToken: "fresh"})

	a, err := app.New(ctx, &opts)
	require.NoError(t, err)

	defer a.Close()

	require.NoError(t, a.Session.Set(ctx, "expired"))

	draft := &domain.Request{Title: "공지", Message: "내용", Type: domain.TypeAnnouncement}

	_, err = a.Alarms.Submit(ctx, draft)
	require.ErrorIs(t, err, failure.ErrUnauthorized)
	require.Equal(t, "유효하지 않은 토큰입니다.", failure.Message(err))
	require.False(t, a.Session.IsAuthenticated(ctx))
	require.Equal(t, "공지", draft.Title)
}

// TestSend_Unreachable maps a refused connection to NetworkUnavailable and keeps the draft.
func TestSend_Unreachable(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	ctx := context.Background()
	opts := optionsFor(t, "http://"+addr)

	a, err := app.New(ctx, &opts)
	require.NoError(t, err)

	defer a.Close()

	require.NoError(t, a.Session.Set(ctx, "tok123"))

	draft := &domain.Request{Title: "공지", Message: "내용", Type: domain.TypeEvent}

	_, err = a.Alarms.Submit(ctx, draft)
	require.ErrorIs(t, err, failure.ErrNetworkUnavailable)
	require.Equal(t, failure.MessageNetwork, failure.Message(err))
	require.Equal(t, &domain.Request{Title: "공지", Message: "내용", Type: domain.TypeEvent}, draft)
	require.True(t, a.Session.IsAuthenticated(ctx))
}

// TestConsole_FullSession drives the interactive console from login to a broadcast and logout.
func TestConsole_FullSession(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{validToken: "tok123"}
	opts := startBackend(t, backend)

	input := strings.Join([]string{
		"admin@boombim.com", "secret",
		"1", "공지", "내용",
		":logout", "y",
	}, "\n") + "\n"

	out := new(bytes.Buffer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, console.Run(ctx, &console.Options{
		Options: opts,
		In:      strings.NewReader(input),
		Out:     out,
	}))

	text := out.String()
	require.Contains(t, text, "✅")
	require.Contains(t, text, "#7")
	require.Contains(t, text, "로그인 화면으로 이동합니다.")
	require.Equal(t, []string{"Bearer tok123"}, backend.authHeaders())
}
