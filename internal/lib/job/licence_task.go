package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskLicenceExpiryReport is the task type stored in Redis.
	TaskLicenceExpiryReport = "licence:expiry_report"
)

// LicenceReportPayload is the JSON payload of the licence report task.
type LicenceReportPayload struct {
	Recipient string        `json:"recipient"`
	Window    time.Duration `json:"window"`
}

// NewLicenceReportTask builds the report task. It is enqueued by the
// scheduler, never by request handlers, so it goes to the low queue.
func NewLicenceReportTask(recipient string, window time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(LicenceReportPayload{
		Recipient: recipient,
		Window:    window,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskLicenceExpiryReport,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(time.Minute),
	), nil
}
