package inbound

import (
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
)

type InitiateRequest struct {
	Channel    string `json:"channel"`
	Identifier string `json:"identifier"`
	FullName   string `json:"full_name,omitempty"`
}

type InitiateResponse struct {
	UserID    int64 `json:"user_id,string"`
	IsNewUser bool  `json:"is_new_user"`
}

func (InitiateResponse) Message() string {
	return "A one-time code has been sent to your email or mobile number."
}

type VerifyRequest struct {
	UserID int64  `json:"user_id,string"`
	Code   string `json:"code"`
}

type VerifyResponse struct {
	AccessToken string          `json:"access_token"`
	Identity    ProfileResponse `json:"identity"`
}

func (VerifyResponse) Message() string {
	return "Verification successful."
}

type ResendRequest struct {
	UserID int64 `json:"user_id,string"`
}

type ResendResponse struct{}

func (ResendResponse) Message() string {
	return "A new one-time code has been sent. The previous code no longer works."
}

type ProfileResponse struct {
	UserID         int64      `json:"user_id,string"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email,omitempty"`
	Mobile         string     `json:"mobile,omitempty"`
	IsVerified     bool       `json:"is_verified"`
	Role           string     `json:"role"`
	ApprovalStatus string     `json:"approval_status"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (ProfileResponse) Message() string {
	return "profile retrieved"
}

func newProfileResponse(u entity.User) ProfileResponse {
	return ProfileResponse{
		UserID:         u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Mobile:         u.Mobile,
		IsVerified:     u.IsVerified,
		Role:           u.Role.Ensure().String(),
		ApprovalStatus: u.ApprovalStatus.Ensure().String(),
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out. Discard the access token on the client."
}
