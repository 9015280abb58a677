package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/auth/usecase"
	"github.com/shandysiswandi/authbite/internal/pkg/config"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
	"github.com/shandysiswandi/authbite/internal/pkg/instrument"
	"github.com/shandysiswandi/authbite/internal/pkg/jwt"
	"github.com/shandysiswandi/authbite/internal/pkg/router"
	"github.com/shandysiswandi/authbite/internal/pkg/uid"
)

type fakeUC struct {
	initiateOut *usecase.InitiateOutput
	initiateErr error
	verifyOut   *usecase.VerifyOutput
	verifyErr   error
	resendErr   error
	profileOut  *usecase.ProfileOutput
	profileErr  error
	logoutErr   error
}

func (f *fakeUC) Initiate(context.Context, usecase.InitiateInput) (*usecase.InitiateOutput, error) {
	return f.initiateOut, f.initiateErr
}

func (f *fakeUC) Verify(context.Context, usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	return f.verifyOut, f.verifyErr
}

func (f *fakeUC) Resend(context.Context, usecase.ResendInput) error { return f.resendErr }

func (f *fakeUC) Profile(context.Context) (*usecase.ProfileOutput, error) {
	return f.profileOut, f.profileErr
}

func (f *fakeUC) Logout(context.Context) error { return f.logoutErr }

type fakeVerifier struct {
	claims jwt.Claims
	err    error
}

func (f *fakeVerifier) Generate(int64, string) (string, error) { return "token", nil }

func (f *fakeVerifier) Verify(string) (jwt.Claims, error) { return f.claims, f.err }

func newTestRouter(t *testing.T, uc uc, verifier jwt.JWT) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        verifier,
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)

	return r
}

func do(r *router.Router, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakeUC{}, &fakeVerifier{})

	rec := do(r, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status field = %q, want ok", resp.Status)
	}
}

func TestHTTPEndpoint_Initiate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		initErr    error
		wantStatus int
	}{
		{
			name:       "Success",
			body:       `{"channel":"email","identifier":"jane@example.com","full_name":"Jane Doe"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "MalformedBody",
			body:       `{"identifier":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownField",
			body:       `{"channel":"email","identifier":"jane@example.com","password":"nope"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ValidationError",
			body:       `{"channel":"email","identifier":"jane@example.com"}`,
			initErr:    goerror.NewInvalidInput(nil, "full_name", "full name is required for a new account"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "RateLimited",
			body:       `{"channel":"email","identifier":"jane@example.com"}`,
			initErr:    goerror.NewBusiness("please wait 42 seconds before requesting another code", goerror.CodeTooManyRequest),
			wantStatus: http.StatusTooManyRequests,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUC{initiateErr: tt.initErr}
			if tt.initErr == nil {
				fake.initiateOut = &usecase.InitiateOutput{UserID: 7, IsNewUser: true}
			}
			r := newTestRouter(t, fake, &fakeVerifier{})

			rec := do(r, http.MethodPost, "/api/v1/auth/initiate", tt.body, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data struct {
						UserID    string `json:"user_id"`
						IsNewUser bool   `json:"is_new_user"`
					} `json:"data"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if resp.Data.UserID != "7" || !resp.Data.IsNewUser {
					t.Errorf("data = %+v, want new user 7", resp.Data)
				}
			}
		})
	}
}

func TestHTTPEndpoint_Verify(t *testing.T) {
	r := newTestRouter(t, &fakeUC{
		verifyOut: &usecase.VerifyOutput{
			AccessToken: "signed.jwt.token",
			Identity: entity.User{
				ID:         7,
				FullName:   "Jane Doe",
				Email:      "jane@example.com",
				IsVerified: true,
				Role:       entity.RoleUser,
			},
		},
	}, &fakeVerifier{})

	rec := do(r, http.MethodPost, "/api/v1/auth/verify", `{"user_id":"7","code":"123456"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
			Identity    struct {
				UserID     string `json:"user_id"`
				IsVerified bool   `json:"is_verified"`
			} `json:"identity"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.AccessToken != "signed.jwt.token" {
		t.Errorf("access_token = %q, want the issued token", resp.Data.AccessToken)
	}
	if resp.Data.Identity.UserID != "7" || !resp.Data.Identity.IsVerified {
		t.Errorf("identity = %+v, want verified user 7", resp.Data.Identity)
	}
}

func TestHTTPEndpoint_Verify_InvalidCode(t *testing.T) {
	r := newTestRouter(t, &fakeUC{
		verifyErr: goerror.NewBusiness("invalid or expired code", goerror.CodeUnauthorized),
	}, &fakeVerifier{})

	rec := do(r, http.MethodPost, "/api/v1/auth/verify", `{"user_id":"7","code":"000000"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401, body %s", rec.Code, rec.Body.String())
	}
}

func TestHTTPEndpoint_Resend(t *testing.T) {
	r := newTestRouter(t, &fakeUC{}, &fakeVerifier{})

	rec := do(r, http.MethodPost, "/api/v1/auth/resend", `{"user_id":"7"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestHTTPEndpoint_Profile(t *testing.T) {
	lastLogin := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	r := newTestRouter(t, &fakeUC{
		profileOut: &usecase.ProfileOutput{
			UserID:         7,
			FullName:       "Jane Doe",
			Email:          "jane@example.com",
			IsVerified:     true,
			Role:           entity.RoleUser,
			ApprovalStatus: entity.ApprovalStatusApproved,
			LastLoginAt:    &lastLogin,
			CreatedAt:      lastLogin,
		},
	}, &fakeVerifier{claims: jwt.Claims{UserID: 7, UserRole: "user"}})

	rec := do(r, http.MethodGet, "/api/v1/auth/profile", "", "some.valid.token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
			Mobile string `json:"mobile,omitempty"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Data.UserID != "7" {
		t.Errorf("user_id = %q, want string-encoded id", resp.Data.UserID)
	}
	if resp.Data.Role != "user" {
		t.Errorf("role = %q, want %q", resp.Data.Role, "user")
	}
	if resp.Data.Mobile != "" {
		t.Errorf("mobile = %q, want omitted", resp.Data.Mobile)
	}
}

func TestHTTPEndpoint_Profile_RequiresAuth(t *testing.T) {
	r := newTestRouter(t, &fakeUC{}, &fakeVerifier{err: jwt.ErrInvalidToken})

	rec := do(r, http.MethodGet, "/api/v1/auth/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", rec.Code)
	}

	rec = do(r, http.MethodGet, "/api/v1/auth/profile", "", "bad.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 with a bad token", rec.Code)
	}
}

func TestHTTPEndpoint_Logout(t *testing.T) {
	r := newTestRouter(t, &fakeUC{}, &fakeVerifier{claims: jwt.Claims{UserID: 7}})

	rec := do(r, http.MethodPost, "/api/v1/auth/logout", "", "some.valid.token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}
