package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/maska/internal/lib/email"
	"github.com/deppfellow/maska/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

type fakeMembers struct {
	members []model.Member
	err     error
	window  time.Duration
}

func (f *fakeMembers) ExpiringWithin(_ context.Context, _ time.Time, window time.Duration) ([]model.Member, error) {
	f.window = window
	return f.members, f.err
}

type fakeMailer struct {
	to   string
	data email.LicenceExpiryData
	err  error
}

func (f *fakeMailer) SendLicenceExpiryReport(to string, data email.LicenceExpiryData) error {
	f.to = to
	f.data = data
	return f.err
}

func newTestJobService(members MemberLister, mailer ReportMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{
		logger:  &logger,
		members: members,
		mailer:  mailer,
		now:     func() time.Time { return reportTime },
	}
}

func TestNewLicenceReportTask(t *testing.T) {
	task, err := NewLicenceReportTask("registrar@example.com", 72*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, TaskLicenceExpiryReport, task.Type())
	assert.JSONEq(t, `{"recipient":"registrar@example.com","window":259200000000000}`, string(task.Payload()))
}

func TestHandleLicenceReportTask(t *testing.T) {
	expiring := []model.Member{
		model.NewMember("John", "Doe", "PA123456", "American", reportTime, reportTime.AddDate(0, 0, 3), 889939),
	}
	members := &fakeMembers{members: expiring}
	mailer := &fakeMailer{}
	j := newTestJobService(members, mailer)

	task, err := NewLicenceReportTask("registrar@example.com", 30*24*time.Hour)
	require.NoError(t, err)

	require.NoError(t, j.handleLicenceReportTask(context.Background(), task))

	assert.Equal(t, 30*24*time.Hour, members.window)
	assert.Equal(t, "registrar@example.com", mailer.to)
	assert.Equal(t, 30, mailer.data.WindowDays)
	assert.Equal(t, reportTime, mailer.data.GeneratedAt)
	assert.Equal(t, expiring, mailer.data.Members)
}

func TestHandleLicenceReportTask_Failures(t *testing.T) {
	task, err := NewLicenceReportTask("registrar@example.com", time.Hour)
	require.NoError(t, err)

	j := newTestJobService(&fakeMembers{err: errors.New("db down")}, &fakeMailer{})
	assert.ErrorContains(t, j.handleLicenceReportTask(context.Background(), task), "db down")

	j = newTestJobService(&fakeMembers{}, &fakeMailer{err: errors.New("resend down")})
	assert.ErrorContains(t, j.handleLicenceReportTask(context.Background(), task), "resend down")
}

func TestHandleLicenceReportTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&fakeMembers{}, &fakeMailer{})

	err := j.handleLicenceReportTask(context.Background(), asynq.NewTask(TaskLicenceExpiryReport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	j = newTestJobService(nil, nil)
	task, _ := NewLicenceReportTask("registrar@example.com", time.Hour)
	assert.ErrorIs(t, j.handleLicenceReportTask(context.Background(), task), asynq.SkipRetry)
}
