// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - a scheduler enqueues the periodic licence report
//   - a server runs workers that process the queued tasks
package job

import (
	"fmt"
	"time"

	"github.com/deppfellow/maska/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue), server (workers) and the
// scheduler for periodic tasks.
type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	cfg       *config.Config
	logger    *zerolog.Logger

	members MemberLister
	mailer  ReportMailer
	now     func() time.Time
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger worker share:
// out of 10 workers roughly 6 go to critical, 3 to default and 1 to low.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	return &JobService{
		Client:    asynq.NewClient(redisOpt),
		server:    server,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the task handlers, starts the workers and, when a report
// recipient is configured, schedules the licence expiry report.
// Neither asynq call blocks.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskLicenceExpiryReport, j.handleLicenceReportTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	recipient := j.cfg.Integration.ReportRecipient
	if recipient == "" {
		j.logger.Info().Msg("no report recipient configured, licence expiry report disabled")
		return nil
	}

	task, err := NewLicenceReportTask(recipient, j.cfg.Jobs.LicenceReportWindow)
	if err != nil {
		return err
	}

	entryID, err := j.scheduler.Register(j.cfg.Jobs.LicenceReportCron, task)
	if err != nil {
		return fmt.Errorf("failed to schedule licence report %q: %w", j.cfg.Jobs.LicenceReportCron, err)
	}

	if err := j.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	j.logger.Info().
		Str("entry_id", entryID).
		Str("cron", j.cfg.Jobs.LicenceReportCron).
		Msg("scheduled licence expiry report")

	return nil
}

// Stop shuts the scheduler and workers down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.scheduler.Shutdown()
	j.server.Shutdown()
	j.Client.Close()
}
