package ports

import "context"

// Mail is a single outbound message.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message to one recipient. Delivery is best-effort from
// the caller's perspective; failures are logged, not rolled back.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// MailQueue accepts messages for asynchronous delivery.
type MailQueue interface {
	Enqueue(mail Mail)
}
