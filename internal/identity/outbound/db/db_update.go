package db

import (
	"context"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
)

// IssueOTP overwrites the outstanding code. Verified accounts are left
// untouched and reported as goerror.ErrConflict.
func (s *DB) IssueOTP(ctx context.Context, id int64, code entity.OTP, now time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "IssueOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, queryIssueOTP, id, code.Code, code.ExpiresAt, now)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrConflict
	}

	return nil
}

func (s *DB) VerifyPhone(ctx context.Context, phone, code string, now time.Time) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "VerifyPhone")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, queryVerifyPhone, phone, code, now))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) UpdateProfile(ctx context.Context, id int64, in entity.ProfileUpdate) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, queryUpdateProfile, id, in.FullName, in.Username, in.UpdatedAt))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}
