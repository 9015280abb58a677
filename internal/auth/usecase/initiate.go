package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/authbite/internal/auth/entity"
	"github.com/shandysiswandi/authbite/internal/pkg/goerror"
)

type InitiateInput struct {
	Channel    string `validate:"required,oneof=email mobile"`
	Identifier string `validate:"required,max=100"`
	FullName   string `validate:"omitempty,min=5,max=100,alphaspace"`
}

type InitiateOutput struct {
	UserID    int64
	IsNewUser bool
}

type emailIdentifier struct {
	Email string `validate:"required,email"`
}

type mobileIdentifier struct {
	Mobile string `validate:"required,mobile"`
}

// Initiate resolves the identifier to an account, creating one for unseen
// identifiers, then generates and delivers a one-time code.
func (s *Usecase) Initiate(ctx context.Context, in InitiateInput) (*InitiateOutput, error) {
	ctx, span := s.startSpan(ctx, "Initiate")
	defer span.End()

	in.Identifier = normalizeIdentifier(in.Identifier)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ch := entity.ParseChannel(in.Channel)
	if err := s.validateIdentifier(ch, in.Identifier); err != nil {
		return nil, err
	}

	user, isNew, err := s.resolveOrCreate(ctx, in, ch)
	if err != nil {
		return nil, err
	}

	if err := s.issueChallenge(ctx, user); err != nil {
		return nil, err
	}

	return &InitiateOutput{UserID: user.ID, IsNewUser: isNew}, nil
}

func (s *Usecase) validateIdentifier(ch entity.Channel, identifier string) error {
	switch ch {
	case entity.ChannelEmail:
		if err := s.validator.Validate(emailIdentifier{Email: identifier}); err != nil {
			return goerror.NewInvalidInput(err)
		}
	case entity.ChannelSMS:
		if err := s.validator.Validate(mobileIdentifier{Mobile: identifier}); err != nil {
			return goerror.NewInvalidInput(err)
		}
	default:
		return goerror.NewInvalidInput(nil, "channel", "channel must be email or mobile")
	}
	return nil
}

func (s *Usecase) getUserByIdentifier(ctx context.Context, identifier string, ch entity.Channel) (*entity.User, error) {
	if ch == entity.ChannelEmail {
		return s.repoDB.GetUserByEmail(ctx, identifier)
	}
	return s.repoDB.GetUserByMobile(ctx, identifier)
}

func (s *Usecase) resolveOrCreate(ctx context.Context, in InitiateInput, ch entity.Channel) (*entity.User, bool, error) {
	user, err := s.getUserByIdentifier(ctx, in.Identifier, ch)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "channel", ch.String(), "error", err)
		return nil, false, goerror.NewServer(err)
	}

	if in.FullName == "" {
		return nil, false, goerror.NewInvalidInput(nil, "full_name", "full name is required for a new account")
	}

	newUser := entity.User{
		ID:             s.uid.Generate(),
		FullName:       in.FullName,
		Role:           entity.RoleUser,
		ApprovalStatus: entity.ApprovalStatusPending,
	}
	if ch == entity.ChannelEmail {
		newUser.Email = in.Identifier
	} else {
		newUser.Mobile = in.Identifier
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			// Lost a race with a concurrent initiate for the same identifier.
			if existing, gerr := s.getUserByIdentifier(ctx, in.Identifier, ch); gerr == nil {
				return existing, false, nil
			}
			return nil, false, goerror.NewBusiness("identifier already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "user_id", newUser.ID, "error", err)
		return nil, false, goerror.NewServer(err)
	}

	s.publishUserRegistered(ctx, newUser)

	return &newUser, true, nil
}

// issueChallenge generates a fresh code for the user, replacing any previous
// live challenge, and delivers it over the user's channel. The resend cooldown
// and hourly cap apply to every send, first or repeat.
func (s *Usecase) issueChallenge(ctx context.Context, user *entity.User) error {
	limitKey := fmt.Sprintf("auth:send:%d", user.ID)
	cooldown := s.cfg.GetSecond("modules.auth.resend_cooldown_seconds")

	retryAfter, ok, err := s.limiter.ReserveCooldown(ctx, limitKey, cooldown)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reserve send cooldown", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		secs := int64(retryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		return goerror.NewBusiness(
			fmt.Sprintf("please wait %d seconds before requesting another code", secs),
			goerror.CodeTooManyRequest,
		)
	}

	window := s.cfg.GetHour("modules.auth.resend_window_hours")
	limit := s.cfg.GetInt64("modules.auth.resend_window_limit")
	allowed, err := s.limiter.AllowWindow(ctx, limitKey, window, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check send window", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !allowed {
		return goerror.NewBusiness("too many codes requested, try again later", goerror.CodeTooManyRequest)
	}

	code, err := s.code.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.auth.code_ttl_minutes")
	now := s.clock.Now()
	challenge := entity.Challenge{
		UserID:    user.ID,
		CodeHash:  string(codeHash),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.repoDB.UpsertChallenge(ctx, challenge); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert challenge", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDelivery.SendCode(ctx, user.Channel(), user.Identifier(), code, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to deliver code", "user_id", user.ID, "channel", user.Channel().String(), "error", err)

		// Open the cooldown slot so the user can retry right away.
		if cerr := s.limiter.ClearCooldown(ctx, limitKey); cerr != nil {
			slog.WarnContext(ctx, "failed to clear send cooldown", "user_id", user.ID, "error", cerr)
		}
		return goerror.NewBusiness("could not deliver the code, please try again later", goerror.CodeInternal)
	}

	return nil
}

func (s *Usecase) publishUserRegistered(ctx context.Context, user entity.User) {
	msg := UserRegisteredEvent{
		UserID:     user.ID,
		FullName:   user.FullName,
		Identifier: user.Identifier(),
		Channel:    user.Channel(),
	}

	// Detach from the request so publishing survives the response being sent.
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishUserRegistered(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to publish user registered", "user_id", msg.UserID, "error", err)
		}
		return nil
	})
}
