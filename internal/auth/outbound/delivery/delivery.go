package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/instrument"
	"github.com/shandysiswandi/authbite/internal/pkg/mail"
	"github.com/shandysiswandi/authbite/internal/pkg/sms"
)

// sendTimeout bounds one provider call so a slow gateway cannot hold a request.
const sendTimeout = 15 * time.Second

// Dispatcher routes one-time codes to the delivery channel of the identifier.
//
// In production a provider failure is the caller's problem. In development the
// dispatcher falls back to console senders so the flow stays usable without
// gateway credentials.
type Dispatcher struct {
	mailer     mail.Mail
	texter     sms.SMS
	production bool
	ins        instrument.Instrumentation

	fallbackMail mail.Mail
	fallbackSMS  sms.SMS
}

// NewDispatcher constructs a Dispatcher. The production flag comes from
// explicit configuration, never from guessing the environment.
func NewDispatcher(mailer mail.Mail, texter sms.SMS, production bool, ins instrument.Instrumentation) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		texter:     texter,
		production: production,
		ins:        ins,

		fallbackMail: mail.NewConsole(),
		fallbackSMS:  sms.NewConsole(),
	}
}

// SendCode delivers a one-time code to the given address over channel ch.
func (d *Dispatcher) SendCode(ctx context.Context, ch entity.Channel, to, code string, ttl time.Duration) error {
	ctx, span := d.ins.Tracer("auth.outbound.delivery").Start(ctx, "SendCode")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	switch ch {
	case entity.ChannelEmail:
		return d.sendMail(ctx, to, code, ttl)
	case entity.ChannelSMS:
		return d.sendSMS(ctx, to, code, ttl)
	default:
		return fmt.Errorf("delivery: no channel for address %q", to)
	}
}

func (d *Dispatcher) sendMail(ctx context.Context, to, code string, ttl time.Duration) error {
	msg := mail.Message{
		To:      []string{to},
		Subject: "Your sign-in code",
		TextBody: fmt.Sprintf(
			"Your one-time sign-in code is %s. It expires in %d minutes. If you did not request this, ignore this message.",
			code, int(ttl.Minutes()),
		),
	}

	err := d.mailer.Send(ctx, msg)
	if err == nil {
		return nil
	}
	if d.production {
		return err
	}

	slog.WarnContext(ctx, "mail provider failed, falling back to console", "error", err)
	return d.fallbackMail.Send(ctx, msg)
}

func (d *Dispatcher) sendSMS(ctx context.Context, to, code string, ttl time.Duration) error {
	msg := sms.Message{
		To:   to,
		Body: fmt.Sprintf("%s is your sign-in code. Valid for %d minutes.", code, int(ttl.Minutes())),
	}

	err := d.texter.Send(ctx, msg)
	if err == nil {
		return nil
	}
	if d.production {
		return err
	}

	slog.WarnContext(ctx, "sms provider failed, falling back to console", "error", err)
	return d.fallbackSMS.Send(ctx, msg)
}
