package ama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openama/askfeed/internal/domain"
	"github.com/openama/askfeed/pkg/ctxutil"
)

// Create creates a new AMA event with a slug derived from its title.
// On a slug collision it retries once with a random suffix.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.AMA, error) {
	hostID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("host identity required: %w", domain.ErrPermission)
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	slug := domain.Slugify(title)
	if slug == "" {
		return nil, domain.NewValidationError("title", "must contain letters or digits")
	}

	ama := &domain.AMA{
		ID:             uuid.New(),
		HostID:         hostID,
		Title:          title,
		Description:    trimOrNil(input.Description),
		Slug:           slug,
		IsActive:       true,
		AllowAnonymous: input.AllowAnonymous,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.amas.Create(ctx, ama)
	if errors.Is(err, domain.ErrAlreadyExists) {
		ama.Slug = slug + "-" + uuid.NewString()[:8]
		created, err = s.amas.Create(ctx, ama)
	}
	if err != nil {
		return nil, fmt.Errorf("create ama: %w", err)
	}

	s.log.InfoContext(ctx, "ama created",
		slog.String("ama_id", created.ID.String()),
		slog.String("slug", created.Slug),
		slog.String("host_id", hostID.String()),
	)

	return created, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
