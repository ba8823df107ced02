// Package dispatch runs inbound chat events through the expense pipeline:
// gatekeeping, line splitting, parse/classify/resolve/write per line, and a
// single aggregated acknowledgment.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ledgerbot/internal/category"
	"ledgerbot/internal/chat"
	"ledgerbot/internal/contacts"
	"ledgerbot/internal/ledger"
	"ledgerbot/internal/parse"
	"ledgerbot/internal/storage"
)

// Acknowledgment prefixes. Inbound text starting with any of these is the
// bot's own output echoed back and is discarded before processing.
const (
	prefixRegistered = "Registered:"
	prefixInvalid    = "Invalid format:"
	prefixFailed     = "Failed to record:"
)

var ackPrefixes = []string{prefixRegistered, prefixInvalid, prefixFailed}

type Dispatcher struct {
	transport chat.Transport
	writer    *ledger.Writer
	resolver  *contacts.Resolver
	journal   *storage.Journal
	groupName string
	reaction  string
}

// New builds a dispatcher bound to one target group. journal may be nil.
func New(transport chat.Transport, writer *ledger.Writer, resolver *contacts.Resolver, journal *storage.Journal, groupName, reaction string) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		writer:    writer,
		resolver:  resolver,
		journal:   journal,
		groupName: groupName,
		reaction:  reaction,
	}
}

// HandleEvent runs one inbound event through the pipeline. Per-line failures
// surface in the acknowledgment, never as a returned error; events that fail
// the gates are discarded silently. Lines are processed strictly in order
// and each store or transport round trip completes before the next begins.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev chat.Event) error {
	if isOwnAck(ev.Body) {
		slog.DebugContext(ctx, "Discarding own acknowledgment echo", "chat_id", ev.ChatID)
		return nil
	}
	if ev.SenderID == "" || strings.TrimSpace(ev.Body) == "" {
		slog.DebugContext(ctx, "Discarding malformed event", "chat_id", ev.ChatID)
		return nil
	}

	ident := d.resolveGroup(ctx, ev)
	switch {
	case !ident.isGroup:
		return nil
	case !ident.resolved:
		// Never process when group identity cannot be confirmed.
		slog.WarnContext(ctx, "Group name unresolved, discarding", "chat_id", ev.ChatID)
		return nil
	case ident.name != d.groupName:
		slog.DebugContext(ctx, "Event from non-target group, discarding",
			"chat_id", ev.ChatID, "group", ident.name)
		return nil
	}

	lines := splitLines(ev.Body)
	if len(lines) == 0 {
		return nil
	}
	sender := d.resolveSender(ctx, ev)

	outcomes := make([]string, 0, len(lines))
	allOK := true
	for _, line := range lines {
		outcome, ok := d.processLine(ctx, ev, sender, line)
		outcomes = append(outcomes, outcome)
		allOK = allOK && ok
	}

	if allOK {
		if err := d.transport.React(ctx, ev, d.reaction); err != nil {
			slog.ErrorContext(ctx, "Reaction failed", "error", err, "chat_id", ev.ChatID)
		}
		return nil
	}
	if err := d.transport.Reply(ctx, ev, strings.Join(outcomes, "\n")); err != nil {
		slog.ErrorContext(ctx, "Reply failed", "error", err, "chat_id", ev.ChatID)
	}
	return nil
}

type groupIdentity struct {
	isGroup  bool
	resolved bool
	name     string
}

// resolveGroup asks the transport for the conversation. When the lookup
// fails it falls back to the id suffix convention, which can confirm
// group-ness but never the name, so the result stays unresolved.
func (d *Dispatcher) resolveGroup(ctx context.Context, ev chat.Event) groupIdentity {
	info, err := d.transport.Chat(ctx, ev.ChatID)
	if err != nil {
		slog.WarnContext(ctx, "Chat lookup failed, falling back to id suffix",
			"chat_id", ev.ChatID, "error", err)
		return groupIdentity{isGroup: ev.IsGroupHint || chat.IsGroupID(ev.ChatID)}
	}
	return groupIdentity{
		isGroup:  info.IsGroup,
		resolved: strings.TrimSpace(info.Name) != "",
		name:     info.Name,
	}
}

func (d *Dispatcher) resolveSender(ctx context.Context, ev chat.Event) string {
	id := ev.SenderID
	contact, err := d.transport.Contact(ctx, ev.SenderID)
	if err != nil {
		slog.WarnContext(ctx, "Contact lookup failed, using sender id",
			"sender_id", ev.SenderID, "error", err)
	} else if contact.Number != "" {
		id = contact.Number
	}
	return d.resolver.Resolve(id)
}

func (d *Dispatcher) processLine(ctx context.Context, ev chat.Event, sender, line string) (outcome string, ok bool) {
	defer func() { d.journalLine(ctx, ev, sender, line, outcome, ok) }()

	parsed, err := parse.ParseLine(line)
	if err != nil {
		return fmt.Sprintf("%s %q", prefixInvalid, line), false
	}

	label := category.Classify(parsed.Description)
	entry, err := d.writer.Record(ctx, sender, parsed.Description, label, parsed.Amount)
	if err != nil {
		slog.ErrorContext(ctx, "Ledger write failed",
			"error", err, "line", line, "sender", sender, "chat_id", ev.ChatID)
		return fmt.Sprintf("%s %q (%v)", prefixFailed, line, err), false
	}

	return fmt.Sprintf("%s %s - $%s - %s",
		prefixRegistered, entry.Description, entry.Amount.String(), entry.Category), true
}

func (d *Dispatcher) journalLine(ctx context.Context, ev chat.Event, sender, line, outcome string, ok bool) {
	if d.journal == nil {
		return
	}
	err := d.journal.Record(ctx, storage.Entry{
		ChatID:  ev.ChatID,
		Sender:  sender,
		Line:    line,
		Outcome: outcome,
		Success: ok,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Journal write failed", "error", err, "chat_id", ev.ChatID)
	}
}

func isOwnAck(body string) bool {
	trimmed := strings.TrimSpace(body)
	for _, p := range ackPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// splitLines breaks a message body into trimmed, non-empty lines.
func splitLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
