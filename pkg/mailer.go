package pkg

import (
	"github.com/rs/zerolog/log"
)

// Mailer delivers transactional email. Delivery is fire-and-forget from
// the caller's perspective; failures are logged, never escalated.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer is the default Mailer: it records the email instead of
// sending it. Deployments wire a real provider client behind the same
// interface.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("email (log sink)")
	return nil
}
