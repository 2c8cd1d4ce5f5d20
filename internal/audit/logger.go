package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// ChangeLogger appends redacted change records to ChangeLogs.
type ChangeLogger struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChangeLogger(db *gorm.DB) *ChangeLogger {
	return &ChangeLogger{db: db, now: time.Now}
}

type payload struct {
	Old any `json:"old"`
	New any `json:"new"`
}

func (l *ChangeLogger) Record(
	ctx context.Context,
	entityType EntityType,
	entityID uint,
	action Action,
	actor string,
	change Change,
) error {

	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidChange, entityType)
	}

	oldVal, err := Normalize(change.Old)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}
	newVal, err := Normalize(change.New)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}

	if err := validatePairing(action, oldVal, newVal); err != nil {
		return err
	}

	body, err := json.Marshal(payload{
		Old: Redact(oldVal),
		New: Redact(newVal),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChange, err)
	}

	row := models.ChangeLog{
		EntityType: string(entityType),
		EntityID:   entityID,
		Action:     string(action),
		ChangedBy:  ResolveActor(actor),
		Changes:    string(body),
		CreatedAt:  l.now(),
	}

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: insert change log: %w", ErrPersistence, err)
	}
	return nil
}
