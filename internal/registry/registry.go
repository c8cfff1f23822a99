// Package registry loads the static protocol-address and blocked-address
// registries. Both are read once at startup and immutable afterwards.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	_ "embed"

	"github.com/alexenglish/insight-api-komodo/internal/model"
)

//go:embed protocol_addresses.json
var defaultProtocolAddresses []byte

//go:embed blocked_addresses.json
var defaultBlockedAddresses []byte

// Entry is the display metadata of one well-known protocol address. Entries
// with a Decode type additionally flag matching outputs for script decoding.
type Entry struct {
	Address     string           `json:"address"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Color       string           `json:"color,omitempty"`
	Icon        string           `json:"icon,omitempty"`
	Decode      model.DecodeType `json:"decode,omitempty"`
}

// Registry holds the loaded protocol-address and blocked-address documents.
type Registry struct {
	entries map[string]Entry
	blocked map[string]struct{}
}

// Load reads both registry documents. Empty paths fall back to the compiled-in
// VRSC mainnet defaults.
func Load(protocolPath, blockedPath string) (*Registry, error) {
	protocolDoc, err := readOrDefault(protocolPath, defaultProtocolAddresses)
	if err != nil {
		return nil, fmt.Errorf("read protocol addresses: %w", err)
	}
	blockedDoc, err := readOrDefault(blockedPath, defaultBlockedAddresses)
	if err != nil {
		return nil, fmt.Errorf("read blocked addresses: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(protocolDoc, &entries); err != nil {
		return nil, fmt.Errorf("parse protocol addresses: %w", err)
	}
	var blocked []string
	if err := json.Unmarshal(blockedDoc, &blocked); err != nil {
		return nil, fmt.Errorf("parse blocked addresses: %w", err)
	}

	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		blocked: make(map[string]struct{}, len(blocked)),
	}
	for _, e := range entries {
		if e.Address == "" {
			return nil, fmt.Errorf("protocol address entry %q has no address", e.Name)
		}
		switch e.Decode {
		case model.DecodeNone, model.DecodeFeePool, model.DecodeAcceptedNotarization:
		default:
			return nil, fmt.Errorf("protocol address %s: unknown decode type %q", e.Address, e.Decode)
		}
		r.entries[e.Address] = e
	}
	for _, a := range blocked {
		r.blocked[a] = struct{}{}
	}
	return r, nil
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}

// Lookup returns the registry entry for an address.
func (r *Registry) Lookup(address string) (Entry, bool) {
	e, ok := r.entries[address]
	return e, ok
}

// IsBlocked reports whether an address is on the blocked list.
func (r *Registry) IsBlocked(address string) bool {
	_, ok := r.blocked[address]
	return ok
}

// Len returns the number of protocol address entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
