package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/goerror"
	"github.com/samber/lo"
)

type ProfileUpdateInput struct {
	FullName *string `validate:"omitnil,min=1,max=255"`
	Username *string `validate:"omitnil,min=1,max=255"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return lo.ToPtr(strings.TrimSpace(*p))
}

// ProfileUpdate patches the supplied fields of the current account. Keeping
// the current username is not a conflict.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*entity.Account, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	in.FullName = trimPtr(in.FullName)
	in.Username = trimPtr(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.currentAccount(ctx)
	if err != nil {
		return nil, err
	}

	patch := entity.ProfileUpdate{FullName: in.FullName, Username: in.Username}
	if patch.IsEmpty() {
		return acc, nil
	}

	if patch.Username != nil && *patch.Username != acc.Username {
		exists, err := s.repoDB.AccountExists(ctx, entity.LoginFieldUsername, *patch.Username, acc.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo check account exists", "user_id", acc.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if exists {
			return nil, goerror.NewInvalidInput(nil, entity.LoginFieldUsername.String(), msgUsernameTaken)
		}
	}

	patch.UpdatedAt = s.clock.Now()
	updated, err := s.repoDB.UpdateProfile(ctx, acc.ID, patch)
	if err != nil {
		if ferr := uniqueFieldError(err); ferr != nil {
			return nil, ferr
		}
		slog.ErrorContext(ctx, "failed to repo update profile", "user_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "profile updated", "user_id", acc.ID)

	return updated, nil
}
