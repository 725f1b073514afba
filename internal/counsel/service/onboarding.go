package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

type OnboardingService struct {
	Store store.Store
}

// Get returns the user's questionnaire. ok is false when none was submitted.
func (s *OnboardingService) Get(ctx context.Context, userID int64) (domain.Onboarding, bool, error) {
	o, err := s.Store.Onboarding().GetOnboarding(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Onboarding{}, false, nil
		}
		return domain.Onboarding{}, false, err
	}
	return o, true, nil
}

// Upsert creates the questionnaire from patch (absent answers stay null) or
// applies only the present answers to the existing one, then marks the user
// onboarded. Both happen in one transaction.
func (s *OnboardingService) Upsert(ctx context.Context, userID int64, patch domain.OnboardingPatch) (domain.Onboarding, error) {
	log := slogx.FromContext(ctx)

	var (
		saved   domain.Onboarding
		created bool
	)
	write := func(tx store.Tx) error {
		existing, err := tx.Onboarding().GetOnboarding(ctx, userID)
		switch {
		case err == nil:
			existing.Apply(patch)
			saved, err = tx.Onboarding().UpdateOnboarding(ctx, existing)
			if err != nil {
				return err
			}
			created = false
		case errors.Is(err, store.ErrNotFound):
			fresh := domain.Onboarding{UserID: userID}
			fresh.Apply(patch)
			saved, err = tx.Onboarding().CreateOnboarding(ctx, fresh)
			if err != nil {
				return err
			}
			created = true
		default:
			return err
		}
		return tx.Users().MarkOnboarded(ctx, userID)
	}

	err := s.Store.WithTx(ctx, write)
	if errors.Is(err, store.ErrAlreadyExists) {
		// A concurrent first submission won the insert; apply ours on top.
		err = s.Store.WithTx(ctx, write)
	}
	if err != nil {
		log.Error("failed to save onboarding",
			slog.Int64("user_id", userID),
			slog.Any("error", err),
		)
		return domain.Onboarding{}, err
	}

	log.Debug("onboarding saved",
		slog.Int64("user_id", userID),
		slog.Bool("created", created),
	)
	return saved, nil
}
