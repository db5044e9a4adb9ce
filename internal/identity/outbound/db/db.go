package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	constraintUsername = "accounts_username_key"
	constraintPhone    = "accounts_phone_key"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

// mapError translates pgx errors:
//   - pgx.ErrNoRows → goerror.ErrNotFound
//   - 23505 unique violation → goerror.ErrConflict, joined with the entity
//     error of the violated column when it is known
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case constraintUsername:
			return fmt.Errorf("%w: %w", goerror.ErrConflict, entity.ErrUsernameTaken)
		case constraintPhone:
			return fmt.Errorf("%w: %w", goerror.ErrConflict, entity.ErrPhoneTaken)
		default:
			return goerror.ErrConflict
		}
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var (
		acc          entity.Account
		otpCode      *string
		otpExpiresAt *time.Time
	)

	if err := row.Scan(
		&acc.ID,
		&acc.FullName,
		&acc.Username,
		&acc.Phone,
		&acc.Email,
		&acc.PasswordHash,
		&acc.PhoneVerifiedAt,
		&otpCode,
		&otpExpiresAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if otpCode != nil && otpExpiresAt != nil {
		acc.OTP = &entity.OTP{Code: *otpCode, ExpiresAt: *otpExpiresAt}
	}

	return &acc, nil
}
