package email

import (
	"fmt"
	"time"

	"github.com/deppfellow/maska/internal/model"
)

// Template names an embedded template under templates/.
type Template string

const (
	TemplateLicenceExpiry Template = "licence_expiry"
)

// LicenceExpiryData feeds templates/licence_expiry.html.
type LicenceExpiryData struct {
	GeneratedAt time.Time
	WindowDays  int
	Members     []model.Member
}

// SendLicenceExpiryReport mails the list of members whose licence is about
// to expire.
func (c *Client) SendLicenceExpiryReport(to string, data LicenceExpiryData) error {
	subject := fmt.Sprintf("%d licence(s) expiring in the next %d days", len(data.Members), data.WindowDays)
	return c.SendEmail(to, subject, TemplateLicenceExpiry, data)
}
