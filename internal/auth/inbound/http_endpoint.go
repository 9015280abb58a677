package inbound

import (
	"github.com/shandysiswandi/authbite/internal/auth/usecase"
	"github.com/shandysiswandi/authbite/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for passwordless authentication workflows.
type HTTPEndpoint struct {
	uc uc
}

// Initiate starts a passwordless sign in or sign up.
// @Summary Start passwordless authentication
// @Description Resolves the identifier to an account (creating one when full_name is supplied) and sends a one-time code.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body InitiateRequest true "Initiate payload"
// @Success 200 {object} router.successResponse{data=InitiateResponse} "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Identifier already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Cooldown or send cap active"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/initiate [post]
func (h *HTTPEndpoint) Initiate(r *router.Request) (any, error) {
	var req InitiateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Initiate(r.Context(), usecase.InitiateInput{
		Channel:    req.Channel,
		Identifier: req.Identifier,
		FullName:   req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return InitiateResponse{UserID: resp.UserID, IsNewUser: resp.IsNewUser}, nil
}

// Verify checks a one-time code and issues a session token.
// @Summary Verify one-time code
// @Description Validates the submitted code against the live challenge and returns an access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify payload"
// @Success 200 {object} router.successResponse{data=VerifyResponse} "Session token"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify [post]
func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Verify(r.Context(), usecase.VerifyInput{
		UserID: req.UserID,
		Code:   req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		AccessToken: resp.AccessToken,
		Identity:    newProfileResponse(resp.Identity),
	}, nil
}

// Resend replaces the live code with a fresh one.
// @Summary Resend one-time code
// @Description Generates a new code for the account, invalidating the previous one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResendRequest true "Resend payload"
// @Success 200 {object} router.successResponse "Code sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Cooldown or send cap active"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/resend [post]
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	var req ResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Resend(r.Context(), usecase.ResendInput{
		UserID: req.UserID,
	}); err != nil {
		return nil, err
	}

	return ResendResponse{}, nil
}

// Profile returns the authenticated user's account details.
// @Summary Get profile
// @Description Returns the account behind the presented access token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Account details"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		UserID:         resp.UserID,
		FullName:       resp.FullName,
		Email:          resp.Email,
		Mobile:         resp.Mobile,
		IsVerified:     resp.IsVerified,
		Role:           resp.Role.String(),
		ApprovalStatus: resp.ApprovalStatus.String(),
		LastLoginAt:    resp.LastLoginAt,
		CreatedAt:      resp.CreatedAt,
	}, nil
}

// Logout ends the session on the client side.
// @Summary Logout
// @Description Acknowledges logout; the client discards its stateless token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}
