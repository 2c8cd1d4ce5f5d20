package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// Query narrows the read surface. The zero value returns every row.
type Query struct {
	EntityType string
	EntityID   *uint
	Action     string
	Actor      string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
}

// Payload is the decoded {"old","new"} pair of a change record.
type Payload struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ChangeRecord is a ChangeLog row with its payload decoded.
type ChangeRecord struct {
	ID         uint      `json:"log_id"`
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Action     string    `json:"action"`
	ChangedBy  string    `json:"changed_by"`
	Changes    Payload   `json:"changes"`
	CreatedAt  time.Time `json:"created_at"`
}

type Reader struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewReader(db *gorm.DB, log *logrus.Logger) *Reader {
	return &Reader{db: db, log: log}
}

// ListChangeRecords returns change records newest first.
func (r *Reader) ListChangeRecords(ctx context.Context, q Query) ([]ChangeRecord, error) {
	tx := filterChanges(r.db.WithContext(ctx).Model(&models.ChangeLog{}), q)
	tx = applyPage(tx, q)

	var rows []models.ChangeLog
	if err := tx.
		Order("created_at DESC").
		Order("log_id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list change logs: %w", ErrPersistence, err)
	}

	return r.decode(rows), nil
}

// CountChangeRecords counts the rows matching q, ignoring limit and offset.
func (r *Reader) CountChangeRecords(ctx context.Context, q Query) (int64, error) {
	var total int64
	if err := filterChanges(r.db.WithContext(ctx).Model(&models.ChangeLog{}), q).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: count change logs: %w", ErrPersistence, err)
	}
	return total, nil
}

// ListChangeRecordsAfter returns up to limit records with log_id > afterID
// in ascending id order. Used by the archive exporter.
func (r *Reader) ListChangeRecordsAfter(ctx context.Context, afterID uint, limit int) ([]ChangeRecord, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.ChangeLog{}).
		Where("log_id > ?", afterID).
		Order("log_id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var rows []models.ChangeLog
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list change logs after %d: %w", ErrPersistence, afterID, err)
	}
	return r.decode(rows), nil
}

// ListAppointmentSnapshots returns snapshots most recently refreshed first.
// EntityID filters by appointment id and Actor by changed_by.
func (r *Reader) ListAppointmentSnapshots(ctx context.Context, q Query) ([]models.AppointmentHistory, error) {
	tx := applyPage(filterSnapshots(r.db.WithContext(ctx).Model(&models.AppointmentHistory{}), q), q)

	var rows []models.AppointmentHistory
	if err := tx.
		Order("created_at DESC").
		Order("history_id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list appointment history: %w", ErrPersistence, err)
	}
	return rows, nil
}

// CountAppointmentSnapshots counts the snapshots matching q, ignoring
// limit and offset.
func (r *Reader) CountAppointmentSnapshots(ctx context.Context, q Query) (int64, error) {
	var total int64
	if err := filterSnapshots(r.db.WithContext(ctx).Model(&models.AppointmentHistory{}), q).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: count appointment history: %w", ErrPersistence, err)
	}
	return total, nil
}

func filterSnapshots(tx *gorm.DB, q Query) *gorm.DB {
	if q.EntityID != nil {
		tx = tx.Where("appointment_id = ?", *q.EntityID)
	}
	if q.Actor != "" {
		tx = tx.Where("changed_by = ?", q.Actor)
	}
	return applySince(tx, q)
}

func filterChanges(tx *gorm.DB, q Query) *gorm.DB {
	if q.EntityType != "" {
		tx = tx.Where("entity_type = ?", q.EntityType)
	}
	if q.EntityID != nil {
		tx = tx.Where("entity_id = ?", *q.EntityID)
	}
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Actor != "" {
		tx = tx.Where("changed_by = ?", q.Actor)
	}
	return applySince(tx, q)
}

func applySince(tx *gorm.DB, q Query) *gorm.DB {
	if q.Since != nil {
		tx = tx.Where("created_at >= ?", *q.Since)
	}
	if q.Until != nil {
		tx = tx.Where("created_at < ?", *q.Until)
	}
	return tx
}

func applyPage(tx *gorm.DB, q Query) *gorm.DB {
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	return tx
}

func (r *Reader) decode(rows []models.ChangeLog) []ChangeRecord {
	out := make([]ChangeRecord, 0, len(rows))
	for _, row := range rows {
		rec := ChangeRecord{
			ID:         row.ID,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Action:     row.Action,
			ChangedBy:  row.ChangedBy,
			CreatedAt:  row.CreatedAt,
		}
		if row.Changes != "" {
			if err := json.Unmarshal([]byte(row.Changes), &rec.Changes); err != nil {
				r.log.WithError(err).WithField("log_id", row.ID).Warn("failed to decode change payload")
			}
		}
		out = append(out, rec)
	}
	return out
}
