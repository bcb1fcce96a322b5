package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event names, appended to the configured subject prefix.
const (
	MovementCreated     = "movement.created"
	MovementDeleted     = "movement.deleted"
	TagCreated          = "tag.created"
	TagDeleted          = "tag.deleted"
	SuggestionGenerated = "suggestion.generated"
)

// Publisher emits domain events. Publishing is best effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(event string, payload any) error
	Close()
}

type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

func NewNATSPublisher(url, token, prefix string, logger *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("billetera-ia"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSPublisher{conn: nc, prefix: prefix, logger: logger}, nil
}

func (p *NATSPublisher) Publish(event string, payload any) error {
	data, err := json.Marshal(Envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(Subject(p.prefix, event), data)
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("NATS drain failed", zap.Error(err))
	}
}

// Subject builds the NATS subject for an event.
func Subject(prefix, event string) string {
	if prefix == "" {
		return event
	}
	return prefix + "." + event
}

// Nop discards every event. Used when NATS is not configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }
func (Nop) Close()                    {}
