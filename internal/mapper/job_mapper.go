package mapper

import (
	"encoding/json"
	"time"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// jobPayload is the wire form persisted in the payload column; it matches what
// the scheduler hands to group handlers.
type jobPayload struct {
	Key          string    `json:"key"`
	Group        string    `json:"group"`
	TriggerAtUtc time.Time `json:"triggerAtUtc"`
	ContextId    uuid.UUID `json:"contextId"`
}

type JobMapper struct{}

func NewJobMapper() *JobMapper {
	return &JobMapper{}
}

func (m *JobMapper) ToEntity(j *model.ScheduledJob) *entity.ScheduledJob {
	if j == nil {
		return nil
	}
	var p jobPayload
	if len(j.Payload) > 0 {
		_ = json.Unmarshal(j.Payload, &p)
	}
	return &entity.ScheduledJob{
		Id:        j.Id,
		Name:      j.Name,
		Group:     j.Group,
		TriggerAt: j.TriggerAt,
		ContextId: p.ContextId,
		State:     entity.JobState(j.State),
		Attempts:  j.Attempts,
		FiredAt:   j.FiredAt,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func (m *JobMapper) ToModel(j *entity.ScheduledJob) *model.ScheduledJob {
	if j == nil {
		return nil
	}
	raw, _ := json.Marshal(jobPayload{
		Key:          j.Name,
		Group:        j.Group,
		TriggerAtUtc: j.TriggerAt.UTC(),
		ContextId:    j.ContextId,
	})
	return &model.ScheduledJob{
		Id:        j.Id,
		Name:      j.Name,
		Group:     j.Group,
		TriggerAt: j.TriggerAt,
		Payload:   datatypes.JSON(raw),
		State:     string(j.State),
		Attempts:  j.Attempts,
		FiredAt:   j.FiredAt,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
