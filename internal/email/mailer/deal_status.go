// internal/email/mailer/deal_status.go
package mailer

import "github.com/bradyhq/dealdesk/internal/email"

// DealStatusTemplateData contains data for the deal status change template
type DealStatusTemplateData struct {
	DealLabel   string
	PartnerName string
	OldStatus   string
	NewStatus   string
	DealLink    string
}

// SendDealStatusEmail notifies a recipient that a deal changed status.
func SendDealStatusEmail(s Sender, to string, data DealStatusTemplateData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Brady Deal Desk",
		Subject:      "Deal " + data.DealLabel + " status changed to " + data.NewStatus,
		TemplateName: "deal_status",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
