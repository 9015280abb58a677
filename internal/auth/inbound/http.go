package inbound

import (
	"context"

	"github.com/shandysiswandi/authbite/internal/auth/usecase"
	"github.com/shandysiswandi/authbite/internal/pkg/router"
)

type uc interface {
	Initiate(ctx context.Context, in usecase.InitiateInput) (*usecase.InitiateOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Resend(ctx context.Context, in usecase.ResendInput) error

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
	Logout(ctx context.Context) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Passwordless sign in / sign up
	r.POST("/api/v1/auth/initiate", end.Initiate)
	r.POST("/api/v1/auth/verify", end.Verify)
	r.POST("/api/v1/auth/resend", end.Resend)

	// Session (need authenticated)
	r.GET("/api/v1/auth/profile", end.Profile)
	r.POST("/api/v1/auth/logout", end.Logout)
}
