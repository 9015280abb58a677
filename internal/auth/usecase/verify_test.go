package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
)

func TestUsecase_Verify_Success(t *testing.T) {
	f := newFixture(t)
	f.db.users = []entity.User{{ID: 7, FullName: "Jane Doe", Email: "jane@example.com", Role: entity.RoleUser}}

	var consumed entity.ConsumeChallenge
	f.db.consumeFn = func(in entity.ConsumeChallenge) (*entity.User, error) {
		consumed = in
		u := f.db.users[0]
		u.IsVerified = true
		u.LastLoginAt = &testNow
		return &u, nil
	}

	out, err := f.uc.Verify(context.Background(), VerifyInput{UserID: 7, Code: "123456"})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if out.AccessToken != "signed.jwt.token" {
		t.Errorf("AccessToken = %q, want the issued token", out.AccessToken)
	}
	if out.Identity.ID != 7 || !out.Identity.IsVerified {
		t.Errorf("Identity = %+v, want verified user 7", out.Identity)
	}
	if f.jwt.uid != 7 || f.jwt.role != entity.RoleUser.String() {
		t.Errorf("issued token for uid=%d role=%q, want 7/%q", f.jwt.uid, f.jwt.role, entity.RoleUser.String())
	}

	if consumed.UserID != 7 {
		t.Errorf("consumed user_id = %d, want 7", consumed.UserID)
	}
	if consumed.MaxAttempts != 5 {
		t.Errorf("consumed max_attempts = %d, want 5", consumed.MaxAttempts)
	}
	if consumed.CodeHash == "" || consumed.CodeHash == "123456" {
		t.Errorf("consumed code_hash = %q, want a hash of the code", consumed.CodeHash)
	}
	if !consumed.Now.Equal(testNow) {
		t.Errorf("consumed now = %v, want %v", consumed.Now, testNow)
	}

	// First successful verification announces the user.
	f.wait(t)
	if len(f.messaging.verified) != 1 || f.messaging.verified[0].UserID != 7 {
		t.Errorf("verified events = %+v, want one for user 7", f.messaging.verified)
	}
}

func TestUsecase_Verify_ReturningUserSkipsEvent(t *testing.T) {
	f := newFixture(t)
	f.db.users = []entity.User{{ID: 7, Email: "jane@example.com", IsVerified: true}}
	f.db.consumeFn = func(entity.ConsumeChallenge) (*entity.User, error) {
		u := f.db.users[0]
		return &u, nil
	}

	if _, err := f.uc.Verify(context.Background(), VerifyInput{UserID: 7, Code: "123456"}); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	f.wait(t)
	if len(f.messaging.verified) != 0 {
		t.Errorf("verified events = %d, want 0 for an already verified user", len(f.messaging.verified))
	}
}

func TestUsecase_Verify_CollapsedFailures(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		consumeErr error
	}{
		{name: "UnknownUser", userID: 404},
		{name: "NoChallenge", userID: 7, consumeErr: entity.ErrChallengeNotFound},
		{name: "Expired", userID: 7, consumeErr: entity.ErrChallengeExpired},
		{name: "Mismatch", userID: 7, consumeErr: entity.ErrChallengeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.db.users = []entity.User{{ID: 7, Email: "jane@example.com"}}
			f.db.consumeFn = func(entity.ConsumeChallenge) (*entity.User, error) {
				return nil, tt.consumeErr
			}

			_, err := f.uc.Verify(context.Background(), VerifyInput{UserID: tt.userID, Code: "123456"})
			assertCode(t, err, goerror.CodeUnauthorized)

			// Every failure mode reads the same to the caller.
			var gerr *goerror.Error
			if !errors.As(err, &gerr) || gerr.Msg() != "invalid or expired code" {
				t.Errorf("error message = %v, want the collapsed answer", err)
			}
		})
	}
}

func TestUsecase_Verify_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   VerifyInput
	}{
		{name: "MissingCode", in: VerifyInput{UserID: 7}},
		{name: "CodeTooShort", in: VerifyInput{UserID: 7, Code: "123"}},
		{name: "CodeNotNumeric", in: VerifyInput{UserID: 7, Code: "12a456"}},
		{name: "MissingUserID", in: VerifyInput{Code: "123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Verify(context.Background(), tt.in)
			assertCode(t, err, goerror.CodeInvalidInput)
		})
	}
}

func TestUsecase_Verify_RepoFailure(t *testing.T) {
	f := newFixture(t)
	f.db.users = []entity.User{{ID: 7, Email: "jane@example.com"}}
	f.db.consumeFn = func(entity.ConsumeChallenge) (*entity.User, error) {
		return nil, errors.New("connection reset")
	}

	_, err := f.uc.Verify(context.Background(), VerifyInput{UserID: 7, Code: "123456"})
	assertCode(t, err, goerror.CodeInternal)
}
