package notification

import (
	"fmt"
	"net/smtp"

	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/logger/zerolog"
)

const mailSubject = "toppairs: new pairs"

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mail handles email notifications for the application
type Mail struct {
	auth              smtp.Auth
	smtpServerPort    int
	smtpServerAddress string
	to                string
	from              string
	send              sendMailFunc
	log               logger.Logger
}

// MailParams contains all parameters needed to initialize a Mail instance
type MailParams struct {
	SMTPServerPort    int
	SMTPServerAddress string
	To                string
	From              string
	Password          string
	Logger            logger.Logger
}

// NewMail creates a new Mail instance with the provided parameters
func NewMail(params MailParams) *Mail {
	log := params.Logger
	if log == nil {
		log = zerolog.NewNop()
	}

	return &Mail{
		from:              params.From,
		to:                params.To,
		smtpServerPort:    params.SMTPServerPort,
		smtpServerAddress: params.SMTPServerAddress,
		auth: smtp.PlainAuth(
			"",
			params.From,
			params.Password,
			params.SMTPServerAddress,
		),
		send: smtp.SendMail,
		log:  log,
	}
}

// Notify sends an email notification with the given text
func (m *Mail) Notify(text string) {
	serverAddress := fmt.Sprintf("%s:%d", m.smtpServerAddress, m.smtpServerPort)

	message := fmt.Sprintf(
		"To: <%s>\r\nFrom: \"toppairs\" <%s>\r\nSubject: %s\r\n\r\n%s\r\n",
		m.to,
		m.from,
		mailSubject,
		text,
	)

	err := m.send(
		serverAddress,
		m.auth,
		m.from,
		[]string{m.to},
		[]byte(message),
	)
	if err != nil {
		m.log.WithError(err).Error("notification/mail: failed to send email")
	}
}
