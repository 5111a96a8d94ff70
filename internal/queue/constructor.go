package queue

import (
	"github.com/lotcast/lotcast/internal/service"
)

type Queue struct {
	cs service.CaptionService
}

func NewQueue(cs service.CaptionService) *Queue {
	return &Queue{
		cs: cs,
	}
}

const TaskTypeStageChanged = "lifecycle:stage_changed"

type StageChangedPayload struct {
	DealershipID int64  `json:"dealership_id"`
	VehicleID    int64  `json:"vehicle_id"`
	EventID      int64  `json:"event_id"`
	Stage        string `json:"stage"`
}
