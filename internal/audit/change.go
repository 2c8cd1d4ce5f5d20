package audit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidChange is returned when entity type, action and the
	// old/new pairing do not agree. Nothing is persisted.
	ErrInvalidChange = errors.New("audit: invalid change")

	// ErrPersistence wraps storage failures of the audit stores.
	ErrPersistence = errors.New("audit: persistence failure")
)

// UnknownActor is recorded when no actor can be attributed.
const UnknownActor = "Unknown"

type EntityType string

const (
	EntityStaff       EntityType = "staff"
	EntityAppointment EntityType = "appointment"
	EntityService     EntityType = "service"
	EntityClient      EntityType = "client"
	EntityRole        EntityType = "role"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityStaff, EntityAppointment, EntityService, EntityClient, EntityRole:
		return true
	}
	return false
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Change is the before/after pair of an entity mutation.
// Create has no Old, delete has no New, update has both.
type Change struct {
	Old any
	New any
}

// Event is one tracked mutation handed to a Sink.
type Event struct {
	EntityType EntityType
	EntityID   uint
	Action     Action
	Actor      string
	Change     Change
}

// ResolveActor trims the actor and substitutes UnknownActor when empty.
func ResolveActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return UnknownActor
	}
	return actor
}

func validatePairing(action Action, before, after any) error {
	switch action {
	case ActionCreate:
		if before != nil || after == nil {
			return fmt.Errorf("%w: create needs only a new value", ErrInvalidChange)
		}
	case ActionUpdate:
		if before == nil || after == nil {
			return fmt.Errorf("%w: update needs old and new values", ErrInvalidChange)
		}
	case ActionDelete:
		if before == nil || after != nil {
			return fmt.Errorf("%w: delete needs only an old value", ErrInvalidChange)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidChange, action)
	}
	return nil
}
