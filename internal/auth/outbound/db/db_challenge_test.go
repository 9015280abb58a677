package db

import (
	"testing"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
)

func TestSettle(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	hash := "f00dfeedc0ffee"

	tests := []struct {
		name         string
		row          challengeRow
		in           entity.ConsumeChallenge
		wantOutcome  settleOutcome
		wantAttempts int16
	}{
		{
			// Expiry wins even when the submitted code is correct.
			name:         "ExpiredDespiteMatch",
			row:          challengeRow{codeHash: hash, expiresAt: now.Add(-time.Second), attempts: 0},
			in:           entity.ConsumeChallenge{CodeHash: hash, Now: now, MaxAttempts: 5},
			wantOutcome:  settleExpired,
			wantAttempts: 0,
		},
		{
			name:         "MismatchCountsAttempt",
			row:          challengeRow{codeHash: hash, expiresAt: now.Add(time.Minute), attempts: 1},
			in:           entity.ConsumeChallenge{CodeHash: "other", Now: now, MaxAttempts: 5},
			wantOutcome:  settleRetry,
			wantAttempts: 2,
		},
		{
			name:         "MismatchExhaustsBudget",
			row:          challengeRow{codeHash: hash, expiresAt: now.Add(time.Minute), attempts: 4},
			in:           entity.ConsumeChallenge{CodeHash: "other", Now: now, MaxAttempts: 5},
			wantOutcome:  settleBurn,
			wantAttempts: 5,
		},
		{
			name:         "Match",
			row:          challengeRow{codeHash: hash, expiresAt: now.Add(time.Minute), attempts: 3},
			in:           entity.ConsumeChallenge{CodeHash: hash, Now: now, MaxAttempts: 5},
			wantOutcome:  settleMatched,
			wantAttempts: 3,
		},
		{
			// The instant of expiry itself still accepts the code.
			name:         "MatchAtExpiryInstant",
			row:          challengeRow{codeHash: hash, expiresAt: now, attempts: 0},
			in:           entity.ConsumeChallenge{CodeHash: hash, Now: now, MaxAttempts: 5},
			wantOutcome:  settleMatched,
			wantAttempts: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, attempts := settle(tt.row, tt.in)
			if outcome != tt.wantOutcome {
				t.Errorf("settle() outcome = %d, want %d", outcome, tt.wantOutcome)
			}
			if attempts != tt.wantAttempts {
				t.Errorf("settle() attempts = %d, want %d", attempts, tt.wantAttempts)
			}
		})
	}
}
