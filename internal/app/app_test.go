package app

import (
	"testing"

	"github.com/shandysiswandi/authbite/internal/pkg/config"
	"github.com/shandysiswandi/authbite/internal/pkg/mail"
	"github.com/shandysiswandi/authbite/internal/pkg/sms"
)

func newTestApp(t *testing.T, yaml string) *App {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	return &App{config: cfg}
}

func TestApp_InitMail_ConsoleWhenUnconfigured(t *testing.T) {
	a := newTestApp(t, "app:\n  env: development\n")

	a.initMail()

	if _, ok := a.mail.(*mail.Console); !ok {
		t.Errorf("mail = %T, want console driver without a relay outside production", a.mail)
	}
}

func TestApp_InitMail_ConsoleDriver(t *testing.T) {
	a := newTestApp(t, "app:\n  env: production\nmail:\n  driver: console\n")

	a.initMail()

	if _, ok := a.mail.(*mail.Console); !ok {
		t.Errorf("mail = %T, want console driver", a.mail)
	}
}

func TestApp_InitSMS_ConsoleWhenUnconfigured(t *testing.T) {
	a := newTestApp(t, "app:\n  env: development\n")

	a.initSMS()

	if _, ok := a.sms.(*sms.Console); !ok {
		t.Errorf("sms = %T, want console driver without a provider outside production", a.sms)
	}
}

func TestApp_InitSMS_UnknownProviderFallsBack(t *testing.T) {
	a := newTestApp(t, "app:\n  env: staging\nsms:\n  provider: pigeon\n")

	a.initSMS()

	if _, ok := a.sms.(*sms.Console); !ok {
		t.Errorf("sms = %T, want console driver for an unknown provider outside production", a.sms)
	}
}
