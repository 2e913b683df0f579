package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/maska/internal/config"
	"github.com/deppfellow/maska/internal/lib/email"
	"github.com/deppfellow/maska/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// MemberLister finds members whose licence expires inside a window.
type MemberLister interface {
	ExpiringWithin(ctx context.Context, now time.Time, window time.Duration) ([]model.Member, error)
}

// ReportMailer delivers the licence expiry report.
type ReportMailer interface {
	SendLicenceExpiryReport(to string, data email.LicenceExpiryData) error
}

// InitHandlers wires the dependencies the task handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, members MemberLister) {
	j.mailer = email.NewClient(cfg, logger)
	j.members = members
}

func (j *JobService) handleLicenceReportTask(ctx context.Context, t *asynq.Task) error {
	var p LicenceReportPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal licence report payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.members == nil || j.mailer == nil {
		return fmt.Errorf("licence report handler not initialized: %w", asynq.SkipRetry)
	}

	now := j.now().UTC()
	expiring, err := j.members.ExpiringWithin(ctx, now, p.Window)
	if err != nil {
		j.logger.Error().Err(err).Str("type", TaskLicenceExpiryReport).Msg("failed to list expiring licences")
		return err
	}

	j.logger.Info().
		Str("type", TaskLicenceExpiryReport).
		Str("to", p.Recipient).
		Int("members", len(expiring)).
		Msg("Processing licence expiry report")

	err = j.mailer.SendLicenceExpiryReport(p.Recipient, email.LicenceExpiryData{
		GeneratedAt: now,
		WindowDays:  int(p.Window / (24 * time.Hour)),
		Members:     expiring,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskLicenceExpiryReport).
			Str("to", p.Recipient).
			Err(err).
			Msg("Failed to send licence expiry report")
		return err
	}

	j.logger.Info().
		Str("type", TaskLicenceExpiryReport).
		Str("to", p.Recipient).
		Msg("Successfully sent licence expiry report")

	return nil
}
