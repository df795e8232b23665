package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobState string

const (
	// JobStateNone is never stored; it is the answer for a key with no row and
	// must stay distinguishable from Paused.
	JobStateNone      JobState = "none"
	JobStateScheduled JobState = "scheduled"
	JobStatePaused    JobState = "paused"
	JobStateFired     JobState = "fired"
)

// ScheduledJob is a (Name, Group) keyed future action with a single trigger
// time. At most one live job exists per key; scheduling over an existing key
// replaces it.
type ScheduledJob struct {
	Id        uuid.UUID
	Name      string
	Group     string
	TriggerAt time.Time
	ContextId uuid.UUID // order item, order, booking, purchase or subscription id
	State     JobState
	Attempts  int
	FiredAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
