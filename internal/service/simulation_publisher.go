package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/creditsim-api/internal/dto"
)

// SimulationPublisher announces stored simulations to other systems.
type SimulationPublisher interface {
	Publish(ctx context.Context, event dto.SimulationEvent) error
}

// NATSSimulationPublisher publishes simulation events on a NATS subject.
type NATSSimulationPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSimulationPublisher constructs a NATS-backed publisher.
func NewNATSSimulationPublisher(conn *nats.Conn, subject string) *NATSSimulationPublisher {
	return &NATSSimulationPublisher{conn: conn, subject: subject}
}

// Publish encodes the event as JSON and sends it on the configured subject.
func (p *NATSSimulationPublisher) Publish(ctx context.Context, event dto.SimulationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode simulation event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = payload
	if event.CorrelationID != "" {
		msg.Header.Set("X-Correlation-ID", event.CorrelationID)
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish simulation event: %w", err)
	}
	return nil
}

// LogSimulationPublisher is used when no broker is configured; it only logs events.
type LogSimulationPublisher struct {
	logger zerolog.Logger
}

// NewLogSimulationPublisher constructs a logging publisher.
func NewLogSimulationPublisher(logger zerolog.Logger) *LogSimulationPublisher {
	return &LogSimulationPublisher{logger: logger.With().Str("component", "simulation_publisher").Logger()}
}

// Publish logs the event and returns nil.
func (l *LogSimulationPublisher) Publish(ctx context.Context, event dto.SimulationEvent) error {
	l.logger.Debug().
		Uint("simulation_id", event.ID).
		Int("score", event.Score).
		Str("risk_category", event.RiskCategory).
		Msg("simulation created")
	return nil
}
