// Package amqpgw implements the chat transport port over AMQP. A separate
// bridge process owns the actual chat session; this gateway consumes its
// inbound message and pairing streams and reaches back through reply/react
// commands and request-reply lookups.
package amqpgw

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"ledgerbot/internal/cache"
	"ledgerbot/internal/chat"
)

// Routing keys understood by the bridge.
const (
	rkInbound    = "chat.inbound"
	rkPairing    = "chat.pairing"
	rkReply      = "chat.reply"
	rkReact      = "chat.react"
	rkChatGet    = "chat.get"
	rkContactGet = "contact.get"
)

type Gateway struct {
	conn          *amqp091.Connection
	channel       *amqp091.Channel
	exchange      string
	inboundQueue  string
	pairingQueue  string
	callbackQueue string
	lookupTimeout time.Duration

	chats *cache.TTLCache[chat.ChatInfo]

	mu      sync.Mutex
	pending map[string]chan []byte
}

var _ chat.Transport = (*Gateway)(nil)

// Dial connects to the broker and declares the exchange, the two durable
// consume queues, and an exclusive callback queue for lookup replies.
func Dial(url, exchange, inboundQueue, pairingQueue string, lookupTimeout time.Duration) (*Gateway, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	g := &Gateway{
		conn:          conn,
		channel:       channel,
		exchange:      exchange,
		inboundQueue:  inboundQueue,
		pairingQueue:  pairingQueue,
		lookupTimeout: lookupTimeout,
		chats:         cache.NewTTL[chat.ChatInfo](256, 5*time.Minute),
		pending:       make(map[string]chan []byte),
	}
	if err := g.setup(); err != nil {
		g.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}
	return g, nil
}

func (g *Gateway) setup() error {
	err := g.channel.ExchangeDeclare(
		g.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for queue, key := range map[string]string{
		g.inboundQueue: rkInbound,
		g.pairingQueue: rkPairing,
	} {
		if _, err := g.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %q: %w", queue, err)
		}
		if err := g.channel.QueueBind(queue, key, g.exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %q: %w", queue, err)
		}
	}

	// Server-named exclusive queue for lookup replies.
	cb, err := g.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("declare callback queue: %w", err)
	}
	g.callbackQueue = cb.Name

	replies, err := g.channel.Consume(g.callbackQueue, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume callback queue: %w", err)
	}
	go func() {
		for d := range replies {
			g.dispatchReply(d.CorrelationId, d.Body)
		}
	}()
	return nil
}

// Consume blocks, delivering inbound messages to onMessage and pairing codes
// to onPairing until the context is cancelled. Undecodable payloads are
// rejected without requeue; handler errors are rejected without requeue as
// well, since the pipeline never retries.
func (g *Gateway) Consume(ctx context.Context, onMessage func(context.Context, chat.Event) error, onPairing func(string)) error {
	inbound, err := g.channel.Consume(g.inboundQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming %q: %w", g.inboundQueue, err)
	}
	pairing, err := g.channel.Consume(g.pairingQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming %q: %w", g.pairingQueue, err)
	}

	slog.InfoContext(ctx, "Consuming chat streams",
		"inbound_queue", g.inboundQueue,
		"pairing_queue", g.pairingQueue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping chat consumption", "reason", ctx.Err())
			return ctx.Err()

		case d, ok := <-inbound:
			if !ok {
				return errors.New("inbound channel closed")
			}
			var msg InboundMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				slog.ErrorContext(ctx, "Failed to decode inbound message", "error", err)
				d.Nack(false, false)
				continue
			}
			ev := chat.Event{
				MessageID:   msg.MessageID,
				ChatID:      msg.ChatID,
				SenderID:    msg.SenderID,
				Body:        msg.Body,
				IsGroupHint: msg.IsGroup,
			}
			if err := onMessage(ctx, ev); err != nil {
				slog.ErrorContext(ctx, "Message handler failed",
					"error", err, "chat_id", ev.ChatID, "message_id", ev.MessageID)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)

		case d, ok := <-pairing:
			if !ok {
				return errors.New("pairing channel closed")
			}
			var msg PairingMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				slog.ErrorContext(ctx, "Failed to decode pairing message", "error", err)
				d.Nack(false, false)
				continue
			}
			onPairing(msg.Code)
			d.Ack(false)
			slog.InfoContext(ctx, "Pairing code updated")
		}
	}
}

// Chat resolves a conversation through the bridge, caching successes.
func (g *Gateway) Chat(ctx context.Context, chatID string) (chat.ChatInfo, error) {
	if info, ok := g.chats.Get(chatID); ok {
		return info, nil
	}
	body, err := json.Marshal(chatLookupRequest{ChatID: chatID})
	if err != nil {
		return chat.ChatInfo{}, fmt.Errorf("marshal chat lookup: %w", err)
	}
	raw, err := g.rpc(ctx, rkChatGet, body)
	if err != nil {
		return chat.ChatInfo{}, fmt.Errorf("chat lookup %q: %w", chatID, err)
	}
	var resp chatLookupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return chat.ChatInfo{}, fmt.Errorf("decode chat lookup reply: %w", err)
	}
	if resp.Error != "" {
		return chat.ChatInfo{}, fmt.Errorf("chat lookup %q: %s", chatID, resp.Error)
	}
	info := chat.ChatInfo{IsGroup: resp.IsGroup, Name: resp.Name}
	g.chats.Set(chatID, info)
	return info, nil
}

// Contact resolves a sender's identity record through the bridge.
func (g *Gateway) Contact(ctx context.Context, senderID string) (chat.Contact, error) {
	body, err := json.Marshal(contactLookupRequest{SenderID: senderID})
	if err != nil {
		return chat.Contact{}, fmt.Errorf("marshal contact lookup: %w", err)
	}
	raw, err := g.rpc(ctx, rkContactGet, body)
	if err != nil {
		return chat.Contact{}, fmt.Errorf("contact lookup %q: %w", senderID, err)
	}
	var resp contactLookupResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return chat.Contact{}, fmt.Errorf("decode contact lookup reply: %w", err)
	}
	if resp.Error != "" {
		return chat.Contact{}, fmt.Errorf("contact lookup %q: %s", senderID, resp.Error)
	}
	return chat.Contact{Number: resp.Number}, nil
}

func (g *Gateway) Reply(ctx context.Context, ev chat.Event, text string) error {
	body, err := json.Marshal(replyCommand{MessageID: ev.MessageID, ChatID: ev.ChatID, Text: text})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	return g.publish(ctx, rkReply, body)
}

func (g *Gateway) React(ctx context.Context, ev chat.Event, emoji string) error {
	body, err := json.Marshal(reactCommand{MessageID: ev.MessageID, ChatID: ev.ChatID, Emoji: emoji})
	if err != nil {
		return fmt.Errorf("marshal reaction: %w", err)
	}
	return g.publish(ctx, rkReact, body)
}

func (g *Gateway) publish(ctx context.Context, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := g.channel.PublishWithContext(ctx, g.exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// rpc publishes a request with a correlation id and waits for the matching
// reply on the callback queue, bounded by the lookup timeout.
func (g *Gateway) rpc(ctx context.Context, key string, body []byte) ([]byte, error) {
	corrID := newCorrelationID()
	ch := make(chan []byte, 1)

	g.mu.Lock()
	g.pending[corrID] = ch
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		delete(g.pending, corrID)
		g.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	err := g.channel.PublishWithContext(ctx, g.exchange, key, false, false, amqp091.Publishing{
		ContentType:   "application/json",
		CorrelationId: corrID,
		ReplyTo:       g.callbackQueue,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", key, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case raw := <-ch:
		return raw, nil
	}
}

// dispatchReply routes a callback delivery to the waiter registered under
// its correlation id. Replies with no waiter (late or duplicate) are dropped.
func (g *Gateway) dispatchReply(corrID string, body []byte) {
	g.mu.Lock()
	ch, ok := g.pending[corrID]
	g.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- body:
	default:
	}
}

func newCorrelationID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("corr_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func (g *Gateway) Close() error {
	if g.channel != nil {
		g.channel.Close()
	}
	if g.conn != nil {
		return g.conn.Close()
	}
	return nil
}
