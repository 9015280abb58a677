package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/config"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
	"github.com/shandysiswandi/authbite/internal/pkg/goroutine"
	"github.com/shandysiswandi/authbite/internal/pkg/hash"
	"github.com/shandysiswandi/authbite/internal/pkg/instrument"
	"github.com/shandysiswandi/authbite/internal/pkg/validator"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeNumberID struct{ next int64 }

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

type fakeCode struct {
	code string
	err  error
}

func (f *fakeCode) Generate() (string, error) { return f.code, f.err }

type fakeJWT struct {
	token string
	err   error
	uid   int64
	role  string
}

func (f *fakeJWT) Generate(uid int64, role string) (string, error) {
	f.uid, f.role = uid, role
	return f.token, f.err
}

type sentCode struct {
	channel entity.Channel
	to      string
	code    string
	ttl     time.Duration
}

type fakeDelivery struct {
	err  error
	sent []sentCode
}

func (f *fakeDelivery) SendCode(_ context.Context, ch entity.Channel, to, code string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentCode{channel: ch, to: to, code: code, ttl: ttl})
	return nil
}

type fakeMessaging struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	verified   []UserVerifiedEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakeMessaging) PublishUserVerified(_ context.Context, msg UserVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, msg)
	return nil
}

type fakeLimiter struct {
	cooldownOK bool
	retryAfter time.Duration
	windowOK   bool
	cleared    []string
	err        error
}

func (f *fakeLimiter) ReserveCooldown(_ context.Context, _ string, _ time.Duration) (time.Duration, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	return f.retryAfter, f.cooldownOK, nil
}

func (f *fakeLimiter) AllowWindow(_ context.Context, _ string, _ time.Duration, _ int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.windowOK, nil
}

func (f *fakeLimiter) ClearCooldown(_ context.Context, key string) error {
	f.cleared = append(f.cleared, key)
	return nil
}

type fakeDB struct {
	users      []entity.User
	created    []entity.User
	createErr  error
	upserts    []entity.Challenge
	upsertErr  error
	consumeFn  func(entity.ConsumeChallenge) (*entity.User, error)
	getUserErr error
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByMobile(_ context.Context, mobile string) (*entity.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for i := range f.users {
		if f.users[i].Mobile == mobile {
			return &f.users[i], nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeDB) UpsertChallenge(_ context.Context, ch entity.Challenge) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, ch)
	return nil
}

func (f *fakeDB) ConsumeChallenge(_ context.Context, in entity.ConsumeChallenge) (*entity.User, error) {
	if f.consumeFn != nil {
		return f.consumeFn(in)
	}
	return nil, entity.ErrChallengeNotFound
}

const testConfigYAML = `
modules:
  auth:
    resend_cooldown_seconds: 60
    resend_window_hours: 1
    resend_window_limit: 5
    code_ttl_minutes: 5
    max_verify_attempts: 5
`

type fixture struct {
	uc        *Usecase
	db        *fakeDB
	delivery  *fakeDelivery
	messaging *fakeMessaging
	limiter   *fakeLimiter
	jwt       *fakeJWT
	goroutine *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	f := &fixture{
		db:        &fakeDB{},
		delivery:  &fakeDelivery{},
		messaging: &fakeMessaging{},
		limiter:   &fakeLimiter{cooldownOK: true, windowOK: true},
		jwt:       &fakeJWT{token: "signed.jwt.token"},
		goroutine: goroutine.NewManager(4),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.messaging,
		RepoDelivery:  f.delivery,
		Limiter:       f.limiter,
		Validator:     v10,
		Config:        cfg,
		HMAC:          hash.NewHMACSHA256("usecase-test-secret"),
		UID:           &fakeNumberID{},
		Code:          &fakeCode{code: "123456"},
		Clock:         &fakeClock{now: testNow},
		JWT:           f.jwt,
		Instrument:    instrument.NewNoop(),
		Goroutine:     f.goroutine,
	})

	return f
}

// wait joins background event publishes before asserting on them.
func (f *fixture) wait(t *testing.T) {
	t.Helper()
	if err := f.goroutine.Wait(); err != nil {
		t.Fatalf("goroutine.Wait() error = %v", err)
	}
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v (%T), want *goerror.Error", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("error code = %v, want %v", gerr.Code(), want)
	}
}
