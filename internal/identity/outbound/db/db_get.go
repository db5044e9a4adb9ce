package db

import (
	"context"
	"fmt"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
)

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, queryGetAccountByID, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountByLogin(ctx context.Context, field entity.LoginField, value string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByLogin")
	defer func() { s.endSpan(span, err) }()

	query, ok := queryGetAccountByLogin[field]
	if !ok {
		return nil, fmt.Errorf("unsupported login field %d", field)
	}

	acc, err := scanAccount(s.conn.QueryRow(ctx, query, value))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

// AccountExists reports whether another account holds value in field. Pass
// zero as excludeID to check every account.
func (s *DB) AccountExists(ctx context.Context, field entity.LoginField, value string, excludeID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "AccountExists")
	defer func() { s.endSpan(span, err) }()

	query, ok := queryAccountExists[field]
	if !ok {
		return false, fmt.Errorf("unsupported login field %d", field)
	}

	var exists bool
	if err = s.conn.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
