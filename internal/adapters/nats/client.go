package natsadapter

import (
	"context"
	"encoding/json"
	"time"

	nats "github.com/nats-io/nats.go"
)

// MailerClient hands magic links to whatever consumes the mail subject.
// Delivery itself is someone else's problem.
type MailerClient interface {
	MagicLinkIssued(ctx context.Context, email, link string) error
}

// LifecycleClient announces user lifecycle events (approval, role changes,
// deletion) for companion services such as the Discord bot.
type LifecycleClient interface {
	Publish(ctx context.Context, event, userID, email string) error
}

type mailerClient struct {
	conn    *nats.Conn
	subject string
}

type lifecycleClient struct {
	conn    *nats.Conn
	subject string
}

func NewMailerClient(conn *nats.Conn, subject string) MailerClient {
	return &mailerClient{conn: conn, subject: subject}
}

func NewLifecycleClient(conn *nats.Conn, subject string) LifecycleClient {
	return &lifecycleClient{conn: conn, subject: subject}
}

func (c *mailerClient) MagicLinkIssued(ctx context.Context, email, link string) error {
	return publish(c.conn, c.subject, map[string]interface{}{
		"email":     email,
		"link":      link,
		"issued_at": time.Now().UTC(),
	})
}

func (c *lifecycleClient) Publish(ctx context.Context, event, userID, email string) error {
	return publish(c.conn, c.subject, map[string]interface{}{
		"event":   event,
		"user_id": userID,
		"email":   email,
		"at":      time.Now().UTC(),
	})
}

func publish(conn *nats.Conn, subject string, payload interface{}) error {
	data, _ := json.Marshal(payload)
	return conn.Publish(subject, data)
}
