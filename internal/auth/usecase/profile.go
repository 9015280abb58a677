package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
	"github.com/shandysiswandi/authbite/internal/pkg/jwt"
)

type ProfileOutput struct {
	UserID         int64
	FullName       string
	Email          string
	Mobile         string
	IsVerified     bool
	Role           entity.Role
	ApprovalStatus entity.ApprovalStatus
	LastLoginAt    *time.Time
	CreatedAt      time.Time
}

func (o ProfileOutput) Message() string {
	return "profile retrieved"
}

// Profile returns the authenticated user's account details.
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user behind valid token is gone", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// A token can outlive the verified flag if moderation resets it.
	if !user.IsVerified {
		slog.WarnContext(ctx, "user behind valid token is not verified", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not verified", goerror.CodeUnauthorized)
	}

	return &ProfileOutput{
		UserID:         user.ID,
		FullName:       user.FullName,
		Email:          user.Email,
		Mobile:         user.Mobile,
		IsVerified:     user.IsVerified,
		Role:           user.Role.Ensure(),
		ApprovalStatus: user.ApprovalStatus.Ensure(),
		LastLoginAt:    user.LastLoginAt,
		CreatedAt:      user.CreatedAt,
	}, nil
}
