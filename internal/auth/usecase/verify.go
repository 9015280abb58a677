package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
)

type VerifyInput struct {
	UserID int64  `validate:"required,gt=0"`
	Code   string `validate:"required,len=6,number"`
}

type VerifyOutput struct {
	AccessToken string
	Identity    entity.User
}

func (o VerifyOutput) Message() string {
	return "verification successful"
}

// Verify checks the submitted code against the user's live challenge and, on
// success, issues a session token. A wrong, expired, or absent code yields the
// same answer so callers cannot probe challenge state.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify for unknown user", "user_id", in.UserID)
		return nil, errInvalidCode()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash code", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	verified, err := s.repoDB.ConsumeChallenge(ctx, entity.ConsumeChallenge{
		UserID:      user.ID,
		CodeHash:    string(codeHash),
		Now:         s.clock.Now(),
		MaxAttempts: int16(s.cfg.GetInt("modules.auth.max_verify_attempts")),
	})
	switch {
	case errors.Is(err, entity.ErrChallengeNotFound):
		slog.WarnContext(ctx, "no live challenge", "user_id", user.ID)
		return nil, errInvalidCode()
	case errors.Is(err, entity.ErrChallengeExpired):
		slog.WarnContext(ctx, "challenge expired", "user_id", user.ID)
		return nil, errInvalidCode()
	case errors.Is(err, entity.ErrChallengeMismatch):
		slog.WarnContext(ctx, "challenge code mismatch", "user_id", user.ID)
		return nil, errInvalidCode()
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo consume challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.IsVerified {
		s.publishUserVerified(ctx, *verified)
	}

	token, err := s.jwt.Generate(verified.ID, verified.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", verified.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOutput{AccessToken: token, Identity: *verified}, nil
}

// errInvalidCode is the single answer for mismatch, expiry, and no-challenge.
func errInvalidCode() error {
	return goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized)
}

func (s *Usecase) publishUserVerified(ctx context.Context, user entity.User) {
	msg := UserVerifiedEvent{
		UserID:   user.ID,
		FullName: user.FullName,
		Channel:  user.Channel(),
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserVerified(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to publish user verified", "user_id", msg.UserID, "error", err)
		}
		return nil
	})
}
