// Package chat defines the inbound event shape and the outbound capability
// port toward the chat transport bridge.
package chat

import (
	"context"
	"strings"
)

// GroupSuffix is the identifier convention for group conversations.
const GroupSuffix = "@g.us"

type (
	// Event is one inbound message. SenderID and Body are required;
	// events missing either are rejected at ingestion.
	Event struct {
		MessageID   string
		ChatID      string
		SenderID    string
		Body        string
		IsGroupHint bool
	}

	// ChatInfo describes the conversation an event belongs to.
	ChatInfo struct {
		IsGroup bool
		Name    string
	}

	// Contact is the transport's identity record for a sender.
	Contact struct {
		Number string
	}
)

// Transport is the outbound port to the chat bridge. Chat is fallible: the
// bridge may be unable to resolve a conversation, in which case callers fall
// back to the identifier suffix convention.
type Transport interface {
	Chat(ctx context.Context, chatID string) (ChatInfo, error)
	Contact(ctx context.Context, senderID string) (Contact, error)
	Reply(ctx context.Context, ev Event, text string) error
	React(ctx context.Context, ev Event, emoji string) error
}

// IsGroupID reports whether a chat identifier follows the group suffix
// convention.
func IsGroupID(chatID string) bool {
	return strings.HasSuffix(chatID, GroupSuffix)
}
