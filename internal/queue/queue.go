package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// Notifier pushes stage-changed notifications onto the task queue so draft
// preparation happens off the request path. Enqueued tasks are not retried;
// a missed draft can always be regenerated on demand.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) StageChanged(ctx context.Context, dealershipID, vehicleID, eventID int64, stage string) error {
	payload := StageChangedPayload{
		DealershipID: dealershipID,
		VehicleID:    vehicleID,
		EventID:      eventID,
		Stage:        stage,
	}

	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeStageChanged, taskPayload)

	_, err = n.client.Enqueue(task, asynq.MaxRetry(0))
	if err != nil {
		return err
	}

	log.Printf("Task enqueued: %+v", payload)
	return nil
}
