// internal/email/mailer/mailer.go

// Package mailer holds the outbound email messages the workflow sends.
package mailer

//go:generate mockgen -source=./mailer.go -destination=../../mocks/mock_sender.go -package=mocks Sender

import "github.com/bradyhq/dealdesk/internal/email"

// Sender is satisfied by *email.Service and mocked in tests.
type Sender interface {
	SendEmail(data email.EmailData) error
}
