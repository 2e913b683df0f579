package email

import (
	"time"

	"github.com/deppfellow/maska/internal/model"
)

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateLicenceExpiry: LicenceExpiryData{
		GeneratedAt: time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
		WindowDays:  30,
		Members: []model.Member{
			model.NewMember("John", "Doe", "PA123456", "American",
				time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
				889939),
		},
	},
}
