package ama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// SetActive opens or closes the AMA for new questions.
func (s *Service) SetActive(ctx context.Context, amaID uuid.UUID, active bool) error {
	_, hostID, err := s.hostFor(ctx, amaID)
	if err != nil {
		return err
	}

	if err := s.amas.SetActive(ctx, amaID, active); err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	s.log.InfoContext(ctx, "ama active flag changed",
		slog.String("ama_id", amaID.String()),
		slog.String("host_id", hostID.String()),
		slog.Bool("active", active),
	)
	return nil
}

// SetAllowAnonymous toggles anonymous question submission.
func (s *Service) SetAllowAnonymous(ctx context.Context, amaID uuid.UUID, allow bool) error {
	_, hostID, err := s.hostFor(ctx, amaID)
	if err != nil {
		return err
	}

	if err := s.amas.SetAllowAnonymous(ctx, amaID, allow); err != nil {
		return fmt.Errorf("set allow anonymous: %w", err)
	}

	s.log.InfoContext(ctx, "ama anonymous flag changed",
		slog.String("ama_id", amaID.String()),
		slog.String("host_id", hostID.String()),
		slog.Bool("allow_anonymous", allow),
	)
	return nil
}
