package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"sanisidro-college/app/config"
)

// EnrollmentNotifier delivers the enrollment decision emails. Both calls are
// fire-and-forget: delivery failure is logged and never affects the
// enrollment outcome.
type EnrollmentNotifier interface {
	SendEnrollmentApproved(email, studentNo, password string)
	SendEnrollmentRejected(email string)
}

// NewNotifier returns the SendGrid notifier when an API key is configured,
// otherwise a console notifier for development.
func NewNotifier(cfg config.MailConfig) EnrollmentNotifier {
	if cfg.APIKey != "" {
		return &sendgridNotifier{
			client: sendgrid.NewSendClient(cfg.APIKey),
			from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		}
	}
	log.Println("SENDGRID_API_KEY not set, enrollment emails will be printed to the console")
	return &consoleNotifier{}
}

func approvedBody(studentNo, password string) (subject, body string) {
	subject = "Enrollment Approved"
	body = fmt.Sprintf(
		"Your enrollment has been approved.\n\nStudent number: %s\nPortal password: %s\n\nPlease change your password after your first login.",
		studentNo, password)
	return subject, body
}

func rejectedBody() (subject, body string) {
	subject = "Enrollment Not Approved"
	body = "We are sorry to inform you that your enrollment could not be approved. " +
		"Please visit the registrar's office for assistance."
	return subject, body
}

type sendgridNotifier struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func (n *sendgridNotifier) send(email, subject, body string) {
	go func() {
		to := sgmail.NewEmail("", email)
		message := sgmail.NewSingleEmail(n.from, subject, to, body, "")
		resp, err := n.client.Send(message)
		if err != nil {
			log.Printf("Failed to send %q to %s: %v", subject, email, err)
			return
		}
		if resp.StatusCode >= 400 {
			log.Printf("SendGrid rejected %q to %s: %d %s", subject, email, resp.StatusCode, resp.Body)
		}
	}()
}

func (n *sendgridNotifier) SendEnrollmentApproved(email, studentNo, password string) {
	subject, body := approvedBody(studentNo, password)
	n.send(email, subject, body)
}

func (n *sendgridNotifier) SendEnrollmentRejected(email string) {
	subject, body := rejectedBody()
	n.send(email, subject, body)
}

type consoleNotifier struct{}

func (n *consoleNotifier) SendEnrollmentApproved(email, studentNo, password string) {
	subject, body := approvedBody(studentNo, password)
	log.Printf("[mail] to=%s subject=%q\n%s", email, subject, body)
}

func (n *consoleNotifier) SendEnrollmentRejected(email string) {
	subject, body := rejectedBody()
	log.Printf("[mail] to=%s subject=%q\n%s", email, subject, body)
}
