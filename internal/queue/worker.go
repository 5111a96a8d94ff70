package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandleStageChangedTask pre-generates a caption draft for the new stage
// event. Generation failure still leaves a fallback draft behind, so the
// task never needs a retry.
func (j *Queue) HandleStageChangedTask(ctx context.Context, task *asynq.Task) error {
	var payload StageChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	_, err := j.cs.GenerateDraft(ctx, payload.DealershipID, payload.EventID, 0, "")
	if err != nil {
		log.Printf("Error preparing draft for EventID %d: %v", payload.EventID, err)
	}

	return nil
}
