package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
)

func TestUsecase_Resend_ReplacesChallenge(t *testing.T) {
	f := newFixture(t)
	f.db.users = []entity.User{{ID: 7, FullName: "Jane Doe", Email: "jane@example.com"}}

	if err := f.uc.Resend(context.Background(), ResendInput{UserID: 7}); err != nil {
		t.Fatalf("Resend() error = %v", err)
	}

	// The upsert replaces whatever challenge was live before.
	if len(f.db.upserts) != 1 || f.db.upserts[0].UserID != 7 {
		t.Fatalf("challenge upserts = %+v, want one for user 7", f.db.upserts)
	}
	if len(f.delivery.sent) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(f.delivery.sent))
	}
}

func TestUsecase_Resend_UnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Resend(context.Background(), ResendInput{UserID: 404})
	assertCode(t, err, goerror.CodeNotFound)
}

func TestUsecase_Resend_Cooldown(t *testing.T) {
	f := newFixture(t)
	f.db.users = []entity.User{{ID: 7, Email: "jane@example.com"}}
	f.limiter.cooldownOK = false

	err := f.uc.Resend(context.Background(), ResendInput{UserID: 7})
	assertCode(t, err, goerror.CodeTooManyRequest)
}

func TestUsecase_Resend_MissingUserID(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Resend(context.Background(), ResendInput{})
	assertCode(t, err, goerror.CodeInvalidInput)
}
