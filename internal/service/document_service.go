package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/pkg/config"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/storage"
)

type documentDrafts interface {
	Load(ctx context.Context, sessionID string) *models.DraftApplication
	Mutate(ctx context.Context, sessionID string, fn func(*models.DraftApplication) error) (*models.DraftApplication, error)
}

// DocumentService handles document uploads bound to fixed slots. Payloads land
// in local storage; the draft only carries descriptors.
type DocumentService struct {
	drafts   documentDrafts
	files    *storage.LocalStorage
	maxBytes int64
	allowed  map[string]struct{}
	logger   *zap.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(drafts documentDrafts, files *storage.LocalStorage, cfg config.DocumentsConfig, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := cfg.MaxFileSizeBytes
	if maxBytes <= 0 {
		maxBytes = models.MaxDocumentBytes
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mime := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(mime))] = struct{}{}
	}
	if len(allowed) == 0 {
		for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "application/pdf"} {
			allowed[mime] = struct{}{}
		}
	}
	return &DocumentService{
		drafts:   drafts,
		files:    files,
		maxBytes: maxBytes,
		allowed:  allowed,
		logger:   logger,
	}
}

// Upload validates and stores a file for the given slot, replacing any prior
// upload in that slot.
func (s *DocumentService) Upload(ctx context.Context, sessionID string, slot models.DocumentSlot, fileName, mimeType string, size int64, r io.Reader) (*models.DocumentDescriptor, error) {
	if !models.ValidSlot(slot) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document slot %q", slot))
	}
	if size <= 0 {
		return nil, appErrors.Clone(appErrors.ErrUploadRejected, "File is empty")
	}
	if size > s.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrUploadRejected, "File exceeds 5MB limit")
	}
	if _, ok := s.allowed[strings.ToLower(mimeType)]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUploadRejected, "File must be JPEG, PNG or PDF")
	}

	payloadRef := filepath.Join(sessionID, uuid.NewString()+strings.ToLower(filepath.Ext(fileName)))
	if _, err := s.files.SaveStream(payloadRef, io.LimitReader(r, s.maxBytes)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}

	doc := models.DocumentDescriptor{
		SlotID:     slot,
		FileName:   fileName,
		MimeType:   mimeType,
		ByteSize:   size,
		PayloadRef: payloadRef,
		UploadedAt: time.Now().UTC(),
	}

	var replaced *models.DocumentDescriptor
	if _, err := s.drafts.Mutate(ctx, sessionID, func(draft *models.DraftApplication) error {
		replaced = draft.UpsertDocument(doc)
		return nil
	}); err != nil {
		// Don't leave an orphaned payload behind when the draft write fails.
		if delErr := s.files.Delete(payloadRef); delErr != nil {
			s.logger.Warn("failed to remove orphaned payload", zap.String("ref", payloadRef), zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist document")
	}

	if replaced != nil {
		if err := s.files.Delete(replaced.PayloadRef); err != nil {
			s.logger.Warn("failed to remove replaced payload", zap.String("ref", replaced.PayloadRef), zap.Error(err))
		}
	}

	s.logger.Info("document uploaded",
		zap.String("session", sessionID), zap.String("slot", string(slot)), zap.Int64("bytes", size))
	return &doc, nil
}

// Remove unbinds the slot's document and deletes its payload.
func (s *DocumentService) Remove(ctx context.Context, sessionID string, slot models.DocumentSlot) error {
	if !models.ValidSlot(slot) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document slot %q", slot))
	}

	var removed *models.DocumentDescriptor
	if _, err := s.drafts.Mutate(ctx, sessionID, func(draft *models.DraftApplication) error {
		removed = draft.RemoveDocument(slot)
		if removed == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "no document uploaded for this slot")
		}
		return nil
	}); err != nil {
		if removed == nil {
			return err
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist document removal")
	}
	if err := s.files.Delete(removed.PayloadRef); err != nil {
		s.logger.Warn("failed to remove payload", zap.String("ref", removed.PayloadRef), zap.Error(err))
	}
	return nil
}

// Slots lists the fixed document slots with the session's upload state.
func (s *DocumentService) Slots(ctx context.Context, sessionID string) []models.SlotState {
	draft := s.drafts.Load(ctx, sessionID)
	states := make([]models.SlotState, 0, len(models.DocumentSlots))
	for _, info := range models.DocumentSlots {
		state := models.SlotState{SlotInfo: info}
		if doc := draft.DocumentForSlot(info.Slot); doc != nil {
			state.Document = doc
		}
		states = append(states, state)
	}
	return states
}
