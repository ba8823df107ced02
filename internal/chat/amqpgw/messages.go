package amqpgw

import "time"

// Wire messages exchanged with the transport bridge over AMQP. Field names
// follow the bridge's JSON conventions.

// InboundMessage is one chat message delivered by the bridge.
type InboundMessage struct {
	MessageID string    `json:"messageId"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	IsGroup   bool      `json:"isGroup"`
	Timestamp time.Time `json:"timestamp"`
}

// PairingMessage carries a freshly issued pairing code.
type PairingMessage struct {
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

type chatLookupRequest struct {
	ChatID string `json:"chatId"`
}

type chatLookupResponse struct {
	IsGroup bool   `json:"isGroup"`
	Name    string `json:"name"`
	Error   string `json:"error,omitempty"`
}

type contactLookupRequest struct {
	SenderID string `json:"senderId"`
}

type contactLookupResponse struct {
	Number string `json:"number"`
	Error  string `json:"error,omitempty"`
}

type replyCommand struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
	Text      string `json:"text"`
}

type reactCommand struct {
	MessageID string `json:"messageId"`
	ChatID    string `json:"chatId"`
	Emoji     string `json:"emoji"`
}
