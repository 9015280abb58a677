package delivery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/instrument"
	"github.com/shandysiswandi/authbite/internal/pkg/mail"
	"github.com/shandysiswandi/authbite/internal/pkg/sms"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMail) Close() error { return nil }

type fakeSMS struct {
	sent []sms.Message
	err  error
}

func (f *fakeSMS) Send(_ context.Context, msg sms.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSMS) Close() error { return nil }

func TestDispatcher_SendCodeEmail(t *testing.T) {
	mailer := &fakeMail{}
	d := NewDispatcher(mailer, &fakeSMS{}, true, instrument.NewNoop())

	err := d.SendCode(context.Background(), entity.ChannelEmail, "asha@example.com", "123456", 5*time.Minute)
	if err != nil {
		t.Fatalf("SendCode() error = %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("mail sends = %d, want 1", len(mailer.sent))
	}
	if got := mailer.sent[0].To[0]; got != "asha@example.com" {
		t.Errorf("To = %q, want %q", got, "asha@example.com")
	}
	if !strings.Contains(mailer.sent[0].TextBody, "123456") {
		t.Errorf("TextBody = %q, want code included", mailer.sent[0].TextBody)
	}
}

func TestDispatcher_SendCodeSMS(t *testing.T) {
	texter := &fakeSMS{}
	d := NewDispatcher(&fakeMail{}, texter, true, instrument.NewNoop())

	err := d.SendCode(context.Background(), entity.ChannelSMS, "9876543210", "654321", 5*time.Minute)
	if err != nil {
		t.Fatalf("SendCode() error = %v", err)
	}

	if len(texter.sent) != 1 {
		t.Fatalf("sms sends = %d, want 1", len(texter.sent))
	}
	if !strings.Contains(texter.sent[0].Body, "654321") {
		t.Errorf("Body = %q, want code included", texter.sent[0].Body)
	}
}

func TestDispatcher_ProductionFailurePropagates(t *testing.T) {
	mailer := &fakeMail{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, &fakeSMS{}, true, instrument.NewNoop())

	err := d.SendCode(context.Background(), entity.ChannelEmail, "asha@example.com", "123456", 5*time.Minute)
	if err == nil {
		t.Fatal("SendCode() error = nil, want provider error in production")
	}
}

func TestDispatcher_DevelopmentFallsBackToConsole(t *testing.T) {
	mailer := &fakeMail{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, &fakeSMS{}, false, instrument.NewNoop())

	err := d.SendCode(context.Background(), entity.ChannelEmail, "asha@example.com", "123456", 5*time.Minute)
	if err != nil {
		t.Fatalf("SendCode() error = %v, want console fallback success", err)
	}
}

func TestDispatcher_UnknownChannel(t *testing.T) {
	d := NewDispatcher(&fakeMail{}, &fakeSMS{}, true, instrument.NewNoop())

	err := d.SendCode(context.Background(), entity.ChannelUnknown, "", "123456", 5*time.Minute)
	if err == nil {
		t.Fatal("SendCode() error = nil, want error for unknown channel")
	}
}
