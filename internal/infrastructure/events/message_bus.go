// Package events carries committed conversation messages to push watchers.
// Delivery is best effort; clients that miss an event recover by polling.
package events

import (
	"context"
	"fmt"
	"strings"

	"jobni/internal/domain/conversation"
	"jobni/internal/ws"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "conversation:"

// Sink receives encoded events for one conversation.
type Sink interface {
	Deliver(topic uuid.UUID, payload []byte)
}

func Channel(conversationID uuid.UUID) string {
	return channelPrefix + conversationID.String()
}

// DirectBus hands events straight to the local sink. Used when Redis is
// unavailable, which limits push to watchers on the same instance.
type DirectBus struct {
	sink Sink
}

func NewDirectBus(sink Sink) *DirectBus {
	return &DirectBus{sink: sink}
}

func (b *DirectBus) PublishMessage(_ context.Context, m conversation.Message) error {
	payload, err := ws.EncodeMessagePosted(m)
	if err != nil {
		return err
	}
	b.sink.Deliver(m.ConversationID, payload)
	return nil
}

// RedisBus publishes to conversation:<id> so every API instance can feed its
// own hub from Run.
type RedisBus struct {
	client *redis.Client
	sink   Sink
	logger zerolog.Logger
}

func NewRedisBus(client *redis.Client, sink Sink) *RedisBus {
	return &RedisBus{
		client: client,
		sink:   sink,
		logger: log.With().Str("component", "events").Logger(),
	}
}

func (b *RedisBus) PublishMessage(ctx context.Context, m conversation.Message) error {
	payload, err := ws.EncodeMessagePosted(m)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, Channel(m.ConversationID), payload).Err(); err != nil {
		return fmt.Errorf("publish message event: %w", err)
	}
	return nil
}

// Run forwards every conversation event to the sink until ctx is done.
func (b *RedisBus) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer func() {
		_ = pubsub.Close()
	}()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe conversation events: %w", err)
	}
	b.logger.Info().Msg("subscribed to conversation events")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			id, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				b.logger.Warn().Str("channel", msg.Channel).Msg("ignoring event on malformed channel")
				continue
			}
			b.sink.Deliver(id, []byte(msg.Payload))
		}
	}
}
