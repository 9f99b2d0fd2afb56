package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/oshokin/boombim-admin/internal/domain/alarm"
	"github.com/oshokin/boombim-admin/internal/domain/failure"
	"github.com/oshokin/boombim-admin/internal/service/alarm"
	"github.com/oshokin/boombim-admin/internal/service/auth"
)

// Commands accepted by the alarm screen in place of a type choice.
const (
	commandLogout = ":logout"
	commandQuit   = ":quit"
)

// errQuit ends the loop at the operator's request.
var errQuit = errors.New("quit")

// Session answers whether an administrator is logged in.
type Session interface {
	IsAuthenticated(ctx context.Context) bool
}

// Authenticator performs login and logout.
type Authenticator interface {
	Login(ctx context.Context, loginID, password string) error
	Logout(ctx context.Context, confirmer auth.Confirmer) (bool, error)
}

// Sender submits broadcasts.
type Sender interface {
	Submit(ctx context.Context, draft *domain.Request) (*domain.Result, error)
}

// Console drives the login and alarm screens.
type Console struct {
	session Session
	auth    Authenticator
	alarms  Sender
	prompt  *Prompter
	out     io.Writer

	// loginID is kept between login attempts so the operator can correct the password only.
	loginID string
	// draft survives failed sends and is reset by the flow after a successful one.
	draft *domain.Request
}

// New creates a console reading operator input through prompt and printing to out.
func New(session Session, authenticator Authenticator, alarms Sender, prompt *Prompter, out io.Writer) *Console {
	return &Console{
		session: session,
		auth:    authenticator,
		alarms:  alarms,
		prompt:  prompt,
		out:     out,
		draft:   domain.NewRequest(),
	}
}

// Loop shows one screen at a time until the operator quits, the input ends or ctx is canceled.
func (c *Console) Loop(ctx context.Context) error {
	for ctx.Err() == nil {
		var err error

		if c.session.IsAuthenticated(ctx) {
			err = c.alarmScreen(ctx)
		} else {
			err = c.loginScreen(ctx)
		}

		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			_, _ = fmt.Fprintln(c.out)

			return nil
		default:
			return err
		}
	}

	return nil
}

// loginScreen asks for credentials once and reports the outcome.
func (c *Console) loginScreen(ctx context.Context) error {
	c.println("")
	c.println("🔔 붐빔 관리자")
	c.println("알림 관리 시스템에 로그인하세요")

	loginID, err := c.prompt.Line("이메일", c.loginID)
	if err != nil {
		return err
	}

	c.loginID = loginID

	password, err := c.prompt.Secret("비밀번호")
	if err != nil {
		return err
	}

	if err = c.auth.Login(ctx, loginID, password); err != nil {
		c.printFailure(err)

		return nil
	}

	c.println("✅ 로그인되었습니다.")

	return nil
}

// alarmScreen asks for a broadcast once, or handles a logout or quit command.
func (c *Console) alarmScreen(ctx context.Context) error {
	c.println("")
	c.println("📱 알림 전송")
	c.println("사용자들에게 알림을 보내세요 (" + commandLogout + " 로그아웃, " + commandQuit + " 종료)")

	for i, t := range domain.Types() {
		c.println(fmt.Sprintf("  [%d] %s", i+1, t.Label()))
	}

	choice, err := c.prompt.Line("알림 타입", string(c.draft.Type))
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case commandQuit:
		return errQuit
	case commandLogout:
		return c.logout(ctx)
	}

	t, ok := parseChoice(choice)
	if !ok {
		c.printFailure(failure.Validation("type", alarm.MessageTypeInvalid))

		return nil
	}

	c.draft.Type = t

	if c.draft.Title, err = c.prompt.Line("알림 제목", c.draft.Title); err != nil {
		return err
	}

	if c.draft.Message, err = c.prompt.Line("알림 내용", c.draft.Message); err != nil {
		return err
	}

	result, err := c.alarms.Submit(ctx, c.draft)
	if err != nil {
		c.printFailure(err)

		return nil
	}

	c.println(alarm.MessageSent)
	RenderResult(c.out, result)

	return nil
}

// logout asks for confirmation through the prompter.
func (c *Console) logout(ctx context.Context) error {
	done, err := c.auth.Logout(ctx, c.prompt)
	if err != nil {
		return err
	}

	if done {
		c.println("👋 로그아웃되었습니다.")
	}

	return nil
}

// printFailure shows the operator-facing message of err.
func (c *Console) printFailure(err error) {
	if errors.Is(err, alarm.ErrSubmissionInProgress) {
		c.println("⏳ 전송 중입니다. 잠시만 기다려주세요.")

		return
	}

	c.println("❌ " + failure.Message(err))
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

// parseChoice accepts a menu number or a type name.
func parseChoice(choice string) (domain.Type, bool) {
	types := domain.Types()

	for i, t := range types {
		if strings.TrimSpace(choice) == fmt.Sprint(i+1) {
			return t, true
		}
	}

	return domain.ParseType(choice)
}
