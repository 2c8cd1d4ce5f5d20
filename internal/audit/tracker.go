package audit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/metrics"
)

// Sink receives tracked mutations. Implementations never fail the caller.
type Sink interface {
	Track(ctx context.Context, ev Event)
}

// Tracker writes the snapshot and the change record in the request path.
// Audit failures are logged and counted, then dropped: the entity
// mutation has already been committed.
//
// TODO: offer a transactional mode that writes the mutation, its change
// record and its snapshot in one transaction for deployments that cannot
// tolerate gaps in the trail.
type Tracker struct {
	changes   *ChangeLogger
	snapshots *SnapshotRecorder
	log       *logrus.Logger
}

func NewTracker(changes *ChangeLogger, snapshots *SnapshotRecorder, log *logrus.Logger) *Tracker {
	return &Tracker{changes: changes, snapshots: snapshots, log: log}
}

func (t *Tracker) Track(ctx context.Context, ev Event) {
	fields := logrus.Fields{
		"entity_type": ev.EntityType,
		"entity_id":   ev.EntityID,
		"action":      ev.Action,
	}

	if ev.EntityType == EntityAppointment && ev.Action != ActionDelete && t.snapshots != nil {
		ok, err := t.snapshots.Refresh(ctx, ev.EntityID, ev.Actor)
		switch {
		case err != nil:
			metrics.SnapshotRefreshes.WithLabelValues("error").Inc()
			t.log.WithError(err).WithFields(fields).Error("appointment snapshot refresh failed")
		case !ok:
			metrics.SnapshotRefreshes.WithLabelValues("missing").Inc()
			t.log.WithFields(fields).Debug("appointment gone, snapshot skipped")
		default:
			metrics.SnapshotRefreshes.WithLabelValues("ok").Inc()
		}
	}

	if err := t.changes.Record(ctx, ev.EntityType, ev.EntityID, ev.Action, ev.Actor, ev.Change); err != nil {
		metrics.ChangeLogWrites.WithLabelValues(string(ev.EntityType), "error").Inc()
		t.log.WithError(err).WithFields(fields).Error("change log write failed")
		return
	}
	metrics.ChangeLogWrites.WithLabelValues(string(ev.EntityType), "ok").Inc()
}
