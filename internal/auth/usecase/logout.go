package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
	"github.com/shandysiswandi/authbite/internal/pkg/jwt"
)

// Logout acknowledges the end of a session. Tokens are stateless, so the
// client discards its copy; the server only records the event.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	slog.InfoContext(ctx, "user logged out", "user_id", clm.UserID)
	return nil
}
