package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/models"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/websocket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Idea change events pushed to the owner's websocket clients.
const (
	EventIdeaCreated = "idea.created"
	EventIdeaUpdated = "idea.updated"
	EventIdeaDeleted = "idea.deleted"
)

// IdeaServiceProvider defines the interface for idea services. Every method is
// scoped to ownerID; ideas of other owners behave as if they did not exist.
type IdeaServiceProvider interface {
	Create(ctx context.Context, ownerID string, input IdeaInput) (models.Idea, error)
	ListMine(ctx context.Context, ownerID string) ([]models.Idea, error)
	UpdateStatus(ctx context.Context, ownerID, ideaID string, status models.IdeaStatus) error
	Delete(ctx context.Context, ownerID, ideaID string) error
}

// Notifier delivers a message to every live connection of one owner.
type Notifier interface {
	NotifyOwner(ownerID string, msg websocket.Message)
}

// IdeaInput holds the client-supplied fields of a new idea.
type IdeaInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
}

// IdeaService provides business logic for idea management.
type IdeaService struct {
	db       *sqlx.DB
	notifier Notifier
	now      func() time.Time
}

// NewIdeaService creates a new IdeaService. notifier may be nil.
func NewIdeaService(db *sqlx.DB, notifier Notifier) *IdeaService {
	return &IdeaService{
		db:       db,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create saves a new draft idea for ownerID.
func (s *IdeaService) Create(ctx context.Context, ownerID string, input IdeaInput) (models.Idea, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Idea{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	idea := models.Idea{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Platform:    input.Platform,
		Status:      models.StatusDraft,
		OwnerID:     ownerID,
		CreatedAt:   s.now().UTC(),
	}

	query := s.db.Rebind(`
		INSERT INTO ideas (id, owner_id, title, description, platform, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		idea.ID, idea.OwnerID, idea.Title, idea.Description, idea.Platform, idea.Status, idea.CreatedAt)
	if err != nil {
		return models.Idea{}, fmt.Errorf("failed to insert idea: %w", err)
	}

	s.notify(ownerID, EventIdeaCreated, idea)
	return idea, nil
}

// ListMine returns all ideas of ownerID, newest first. It never returns nil.
func (s *IdeaService) ListMine(ctx context.Context, ownerID string) ([]models.Idea, error) {
	ideas := []models.Idea{}
	query := s.db.Rebind(`
		SELECT id, owner_id, title, description, platform, status, created_at
		FROM ideas WHERE owner_id = ? ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &ideas, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, nil
}

// UpdateStatus moves one of ownerID's ideas to status. Only forward moves
// (draft to scheduled, scheduled to published) and no-op moves are accepted.
func (s *IdeaService) UpdateStatus(ctx context.Context, ownerID, ideaID string, status models.IdeaStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	idea, err := s.getOwned(ctx, ownerID, ideaID)
	if err != nil {
		return err
	}
	if !idea.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, idea.Status, status)
	}
	if idea.Status == status {
		return nil
	}

	// Guard on the observed status so a concurrent change is not overwritten.
	query := s.db.Rebind(`UPDATE ideas SET status = ? WHERE id = ? AND owner_id = ? AND status = ?`)
	res, err := s.db.ExecContext(ctx, query, status, ideaID, ownerID, idea.Status)
	if err != nil {
		return fmt.Errorf("failed to update idea status: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update idea status: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	idea.Status = status
	s.notify(ownerID, EventIdeaUpdated, idea)
	return nil
}

// Delete removes one of ownerID's ideas.
func (s *IdeaService) Delete(ctx context.Context, ownerID, ideaID string) error {
	if _, err := uuid.Parse(ideaID); err != nil {
		return ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM ideas WHERE id = ? AND owner_id = ?`), ideaID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.notify(ownerID, EventIdeaDeleted, map[string]string{"_id": ideaID})
	return nil
}

func (s *IdeaService) getOwned(ctx context.Context, ownerID, ideaID string) (models.Idea, error) {
	if _, err := uuid.Parse(ideaID); err != nil {
		return models.Idea{}, ErrNotFound
	}

	var idea models.Idea
	query := s.db.Rebind(`
		SELECT id, owner_id, title, description, platform, status, created_at
		FROM ideas WHERE id = ? AND owner_id = ?`)
	if err := s.db.GetContext(ctx, &idea, query, ideaID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Idea{}, ErrNotFound
		}
		return models.Idea{}, fmt.Errorf("failed to query idea: %w", err)
	}
	return idea, nil
}

func (s *IdeaService) notify(ownerID, action string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyOwner(ownerID, websocket.Message{Action: action, Payload: payload})
}
