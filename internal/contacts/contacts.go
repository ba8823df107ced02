// Package contacts maps transport-level sender identifiers to display names.
package contacts

import "strings"

// Resolver translates sender identifiers (phone numbers) into the names the
// ledger shows. Unknown identifiers pass through unchanged.
type Resolver struct {
	aliases map[string]string
}

func NewResolver(aliases map[string]string) *Resolver {
	m := make(map[string]string, len(aliases))
	for id, name := range aliases {
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" || name == "" {
			continue
		}
		m[id] = name
	}
	return &Resolver{aliases: m}
}

// Resolve returns the display name for id, or id itself when unmapped.
func (r *Resolver) Resolve(id string) string {
	if name, ok := r.aliases[id]; ok {
		return name
	}
	return id
}

// ParseAliases parses the SENDER_ALIASES config format,
// "id=Name,id=Name,...". Malformed pairs are skipped.
func ParseAliases(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		id, name, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" || name == "" {
			continue
		}
		out[id] = name
	}
	return out
}
