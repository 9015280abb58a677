package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
)

type ResendInput struct {
	UserID int64 `validate:"required,gt=0"`
}

// Resend replaces the user's live challenge with a fresh code and delivers it.
// The previous code stops working as soon as the new one is stored.
func (s *Usecase) Resend(ctx context.Context, in ResendInput) error {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueChallenge(ctx, user)
}
