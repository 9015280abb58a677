package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/clock"
	"github.com/shandysiswandi/authbite/internal/pkg/config"
	"github.com/shandysiswandi/authbite/internal/pkg/goroutine"
	"github.com/shandysiswandi/authbite/internal/pkg/hash"
	"github.com/shandysiswandi/authbite/internal/pkg/instrument"
	"github.com/shandysiswandi/authbite/internal/pkg/ratelimit"
	"github.com/shandysiswandi/authbite/internal/pkg/uid"
	"github.com/shandysiswandi/authbite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID     int64
	FullName   string
	Identifier string
	Channel    entity.Channel
}

type UserVerifiedEvent struct {
	UserID   int64
	FullName string
	Channel  entity.Channel
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserVerified(ctx context.Context, msg UserVerifiedEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) error
	UpsertChallenge(ctx context.Context, ch entity.Challenge) error

	// ConsumeChallenge atomically settles the live challenge for a user. On a
	// matching, unexpired code it deletes the challenge, marks the user
	// verified, stamps last_login_at, and returns the updated user. Otherwise
	// it returns one of the entity challenge errors.
	ConsumeChallenge(ctx context.Context, in entity.ConsumeChallenge) (*entity.User, error)
}

type repoDelivery interface {
	SendCode(ctx context.Context, ch entity.Channel, to, code string, ttl time.Duration) error
}

type codeGenerator interface {
	Generate() (string, error)
}

type tokenIssuer interface {
	Generate(uid int64, role string) (string, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoDelivery  repoDelivery
	limiter       ratelimit.Limiter
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	uid           uid.NumberID
	code          codeGenerator
	clock         clock.Clocker
	jwt           tokenIssuer
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoDelivery  repoDelivery
	Limiter       ratelimit.Limiter
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	UID           uid.NumberID
	Code          codeGenerator
	Clock         clock.Clocker
	JWT           tokenIssuer
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoDelivery:  dep.RepoDelivery,
		limiter:       dep.Limiter,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		uid:           dep.UID,
		code:          dep.Code,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// normalizeIdentifier lowercases emails and strips whitespace so lookups are
// case-insensitive. Mobile numbers keep only their digits and leading plus.
func normalizeIdentifier(identifier string) string {
	id := strings.TrimSpace(identifier)
	if strings.Contains(id, "@") {
		return strings.ToLower(id)
	}
	return strings.ReplaceAll(id, " ", "")
}
