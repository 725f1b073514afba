package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/internal/counsel/events"
	"github.com/globalgrad/counsellor/internal/counsel/store"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

type SelectionService struct {
	Store store.Store

	// Events is optional; nil disables dashboard notifications.
	Events events.Bus
}

func (s *SelectionService) List(ctx context.Context, userID int64) ([]domain.Selection, error) {
	return s.Store.Selections().ListSelections(ctx, userID)
}

// Set shortlists or locks a university. Re-submitting an existing pair only
// changes its status.
func (s *SelectionService) Set(
	ctx context.Context,
	userID int64,
	universityID string,
	status domain.SelectionStatus,
) (domain.Selection, error) {
	universityID = strings.TrimSpace(universityID)
	if universityID == "" {
		return domain.Selection{}, ErrInvalidUniversityID
	}
	if _, err := domain.ParseSelectionStatus(string(status)); err != nil {
		return domain.Selection{}, err
	}

	sel, err := s.Store.Selections().UpsertSelection(ctx, userID, universityID, status)
	if err != nil {
		return domain.Selection{}, err
	}

	s.publish(ctx, userID, domain.NewUniversityUpdate(domain.ActionForStatus(status), universityID))
	return sel, nil
}

// Remove deletes a selection. ErrSelectionNotFound when it did not exist.
func (s *SelectionService) Remove(ctx context.Context, userID int64, universityID string) error {
	removed, err := s.Store.Selections().DeleteSelection(ctx, userID, universityID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrSelectionNotFound
	}

	s.publish(ctx, userID, domain.NewUniversityUpdate(domain.ActionRemove, universityID))
	return nil
}

// publish failures never fail the write that triggered them.
func (s *SelectionService) publish(ctx context.Context, userID int64, ev domain.UniversityUpdate) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, userID, ev); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish university update",
			slog.Int64("user_id", userID),
			slog.String("action", ev.Action),
			slog.Any("error", err),
		)
	}
}
