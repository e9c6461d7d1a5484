package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"goita/internal/ports"

	"github.com/nats-io/nats.go"
)

// DefaultPrefix is the subject root moves are published under.
const DefaultPrefix = "goita.round"

// ErrNotConnected is returned when publishing on a closed connection.
var ErrNotConnected = errors.New("nats: not connected")

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher implements ports.MovePublisher over NATS. Every move goes to
// <prefix>.<roundID>.move as JSON.
type Publisher struct {
	conn   Conn
	prefix string
	nc     *nats.Conn
}

var _ ports.MovePublisher = (*Publisher)(nil)

// New wraps an existing connection.
func New(conn Conn, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Publisher{conn: conn, prefix: strings.TrimSuffix(prefix, ".")}
}

// Connect dials url and returns a publisher that owns the connection.
func Connect(url, prefix string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("goita"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	p := New(nc, prefix)
	p.nc = nc
	return p, nil
}

// Subject returns the subject moves of roundID are published on.
func (p *Publisher) Subject(roundID string) string {
	return p.prefix + "." + roundID + ".move"
}

// PublishMove sends one move record.
func (p *Publisher) PublishMove(ctx context.Context, rec ports.MoveRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.nc != nil && p.nc.IsClosed() {
		return ErrNotConnected
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode move: %w", err)
	}
	return p.conn.Publish(p.Subject(rec.RoundID), data)
}

// Close flushes and closes an owned connection.
func (p *Publisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}

// Watch subscribes to every round's moves under prefix and hands each
// decoded record to fn. Undecodable messages are skipped.
func Watch(nc *nats.Conn, prefix string, fn func(ports.MoveRecord)) (*nats.Subscription, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	subject := strings.TrimSuffix(prefix, ".") + ".*.move"
	return nc.Subscribe(subject, func(msg *nats.Msg) {
		rec, err := DecodeMove(msg.Data)
		if err != nil {
			return
		}
		fn(rec)
	})
}

// DecodeMove parses a published move record.
func DecodeMove(data []byte) (ports.MoveRecord, error) {
	var rec ports.MoveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ports.MoveRecord{}, fmt.Errorf("decode move: %w", err)
	}
	return rec, nil
}
