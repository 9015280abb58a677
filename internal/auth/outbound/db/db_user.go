package db

import (
	"context"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authbite/internal/auth/entity"
)

const userColumns = `id, full_name, email, mobile, is_verified, role, approval_status, last_login_at, created_at, updated_at`

func (s *DB) scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	var email, mobile *string

	err := row.Scan(
		&u.ID, &u.FullName, &email, &mobile, &u.IsVerified,
		&u.Role, &u.ApprovalStatus, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	u.Email = lo.FromPtr(email)
	u.Mobile = lo.FromPtr(mobile)
	return &u, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE email = $1`, email)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) GetUserByMobile(ctx context.Context, mobile string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByMobile")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE mobile = $1`, mobile)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id)

	user, err := s.scanUser(row)
	return user, err
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO auth_users (id, full_name, email, mobile, is_verified, role, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.FullName,
		lo.EmptyableToPtr(user.Email), lo.EmptyableToPtr(user.Mobile),
		user.IsVerified, user.Role, user.ApprovalStatus,
	)
	err = s.mapError(err)
	return err
}
