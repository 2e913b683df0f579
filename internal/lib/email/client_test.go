package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(sender Sender) *Client {
	logger := zerolog.Nop()
	return NewClientWithSender(sender, &logger)
}

func TestRender_LicenceExpiryPreview(t *testing.T) {
	html, err := Render(TemplateLicenceExpiry, PreviewData[TemplateLicenceExpiry])
	require.NoError(t, err)

	assert.Contains(t, html, "John Doe")
	assert.Contains(t, html, "PA123456")
	assert.Contains(t, html, "2024-03-20")
	assert.Contains(t, html, "next 30 days")
}

func TestRender_EmptyReport(t *testing.T) {
	html, err := Render(TemplateLicenceExpiry, LicenceExpiryData{WindowDays: 7})
	require.NoError(t, err)
	assert.Contains(t, html, "No licences expire in this window.")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestSendLicenceExpiryReport(t *testing.T) {
	sender := &fakeSender{}
	client := newTestClient(sender)

	data := PreviewData[TemplateLicenceExpiry].(LicenceExpiryData)
	require.NoError(t, client.SendLicenceExpiryReport("registrar@example.com", data))

	require.Len(t, sender.sent, 1)
	sent := sender.sent[0]
	assert.Equal(t, []string{"registrar@example.com"}, sent.To)
	assert.Equal(t, "1 licence(s) expiring in the next 30 days", sent.Subject)
	assert.Equal(t, defaultFrom, sent.From)
	assert.Contains(t, sent.Html, "889939")
}

func TestSendEmail_ProviderFailure(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendLicenceExpiryReport("registrar@example.com", LicenceExpiryData{WindowDays: 30})
	assert.ErrorContains(t, err, "rate limited")
}
