// internal/email/mailer/deal_expiring.go
package mailer

import "github.com/bradyhq/dealdesk/internal/email"

// DealExpiringTemplateData contains data for the nearing-expiry warning
type DealExpiringTemplateData struct {
	DealLabel   string
	PartnerName string
	ExpiryDate  string
}

// SendExpiryWarningEmail warns a recipient that a deal is about to expire.
func SendExpiryWarningEmail(s Sender, to string, data DealExpiringTemplateData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Brady Deal Desk",
		Subject:      "Deal " + data.DealLabel + " nearing expiry",
		TemplateName: "deal_expiring",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
