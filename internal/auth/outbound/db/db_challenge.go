package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/otp"
)

// UpsertChallenge stores the challenge, replacing any live one for the user.
// user_id is the primary key so at most one challenge exists per account.
func (s *DB) UpsertChallenge(ctx context.Context, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO auth_challenges (user_id, code_hash, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, 0, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    expires_at = EXCLUDED.expires_at,
		    attempts = 0,
		    created_at = EXCLUDED.created_at`,
		ch.UserID, ch.CodeHash, ch.ExpiresAt, ch.CreatedAt,
	)
	err = s.mapError(err)
	return err
}

type challengeRow struct {
	codeHash  string
	expiresAt time.Time
	attempts  int16
}

type settleOutcome int

const (
	settleExpired settleOutcome = iota
	// settleRetry keeps the challenge alive with the bumped attempt count.
	settleRetry
	// settleBurn removes the challenge because the attempt budget is spent.
	settleBurn
	settleMatched
)

// settle decides the fate of a live challenge for one submission. Expiry wins
// over a matching code, and a mismatch counts against the attempt budget.
func settle(row challengeRow, in entity.ConsumeChallenge) (settleOutcome, int16) {
	if in.Now.After(row.expiresAt) {
		return settleExpired, row.attempts
	}

	if !otp.Match(row.codeHash, in.CodeHash) {
		next := row.attempts + 1
		if next >= in.MaxAttempts {
			return settleBurn, next
		}
		return settleRetry, next
	}

	return settleMatched, row.attempts
}

// ConsumeChallenge settles the live challenge for a user in one transaction.
//
// The challenge row is locked so concurrent verifies for the same user are
// serialized: only one submission can consume a code.
func (s *DB) ConsumeChallenge(ctx context.Context, in entity.ConsumeChallenge) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	var codeHash string
	var expiresAt time.Time
	var attempts int16

	row := tx.QueryRow(ctx, `
		SELECT code_hash, expires_at, attempts
		FROM auth_challenges
		WHERE user_id = $1
		FOR UPDATE`, in.UserID)
	if err = row.Scan(&codeHash, &expiresAt, &attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrChallengeNotFound
		}
		return nil, err
	}

	outcome, nextAttempts := settle(challengeRow{codeHash: codeHash, expiresAt: expiresAt, attempts: attempts}, in)
	switch outcome {
	case settleExpired, settleBurn:
		if err = s.deleteChallengeTx(ctx, tx, in.UserID); err != nil {
			return nil, err
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, err
		}
		if outcome == settleExpired {
			return nil, entity.ErrChallengeExpired
		}
		return nil, entity.ErrChallengeMismatch
	case settleRetry:
		if _, err = tx.Exec(ctx,
			`UPDATE auth_challenges SET attempts = $2 WHERE user_id = $1`,
			in.UserID, nextAttempts); err != nil {
			return nil, err
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, entity.ErrChallengeMismatch
	}

	if err = s.deleteChallengeTx(ctx, tx, in.UserID); err != nil {
		return nil, err
	}

	row = tx.QueryRow(ctx, `
		UPDATE auth_users
		SET is_verified = TRUE, last_login_at = $2, updated_at = $2
		WHERE id = $1
		RETURNING `+userColumns, in.UserID, in.Now)

	user, err := s.scanUser(row)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DB) deleteChallengeTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM auth_challenges WHERE user_id = $1`, userID)
	return err
}
