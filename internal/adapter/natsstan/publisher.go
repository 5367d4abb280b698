package natsstan

import (
	"context"
	"encoding/json"

	stan "github.com/nats-io/stan.go"

	"github.com/example/akura-order-service/internal/domain"
)

// Publisher emits status-change events on a STAN subject. The inventory
// side consumes these; the DecrementStock flag inside the event is the
// whole contract.
type Publisher struct {
	Conn    stan.Conn
	Subject string
}

func (p *Publisher) PublishStatusChange(_ context.Context, change domain.StatusChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.Conn.Publish(p.Subject, data)
}

var _ domain.EventPublisher = (*Publisher)(nil)
