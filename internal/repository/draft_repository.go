package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

const (
	draftKeyPrefix = "scholarship:draft:"
	stepKeyPrefix  = "scholarship:step:"
)

// DraftRepository persists in-progress applications and the wizard position in
// Redis, one draft and one step index per applicant session.
type DraftRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewDraftRepository constructs a draft repository.
func NewDraftRepository(client *redis.Client, logger *zap.Logger) *DraftRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftRepository{client: client, logger: logger}
}

// GetDraft loads the persisted draft for a session. A missing draft returns
// (nil, nil); a corrupt payload returns an error so callers can fall back to
// the default draft.
func (r *DraftRepository) GetDraft(ctx context.Context, sessionID string) (*models.DraftApplication, error) {
	raw, err := r.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get draft %s: %w", sessionID, err)
	}

	var draft models.DraftApplication
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", sessionID, err)
	}
	return &draft, nil
}

// SaveDraft writes the draft through to Redis. Drafts carry no TTL: they must
// survive until the applicant submits or resets.
func (r *DraftRepository) SaveDraft(ctx context.Context, sessionID string, draft *models.DraftApplication) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", sessionID, err)
	}
	if err := r.client.Set(ctx, draftKey(sessionID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", sessionID, err)
	}
	return nil
}

// DeleteDraft removes the persisted draft.
func (r *DraftRepository) DeleteDraft(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del draft %s: %w", sessionID, err)
	}
	return nil
}

// GetStep returns the persisted wizard step index, or 0 when absent.
func (r *DraftRepository) GetStep(ctx context.Context, sessionID string) (models.Step, error) {
	raw, err := r.client.Get(ctx, stepKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get step %s: %w", sessionID, err)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		r.logger.Warn("discarding malformed step index", zap.String("session", sessionID), zap.String("raw", raw))
		return 0, nil
	}
	return models.Step(value), nil
}

// SaveStep persists the wizard step index.
func (r *DraftRepository) SaveStep(ctx context.Context, sessionID string, step models.Step) error {
	if err := r.client.Set(ctx, stepKey(sessionID), int(step), 0).Err(); err != nil {
		return fmt.Errorf("redis set step %s: %w", sessionID, err)
	}
	return nil
}

// DeleteStep removes the persisted step index.
func (r *DraftRepository) DeleteStep(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, stepKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del step %s: %w", sessionID, err)
	}
	return nil
}

func draftKey(sessionID string) string {
	return draftKeyPrefix + sessionID
}

func stepKey(sessionID string) string {
	return stepKeyPrefix + sessionID
}
