package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Contact is a record of the random-user list stored under the "data" key.
// Records are identified by address. Fields other than address and balance
// are carried through untouched.
type Contact struct {
	Address string
	Balance string
	Extra   map[string]json.RawMessage

	// balanceToken is the balance as read, written back while Balance
	// still renders to it.
	balanceToken json.RawMessage
}

// MarshalJSON writes address, balance and any extra fields.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	addr, err := json.Marshal(c.Address)
	if err != nil {
		return nil, err
	}
	out["address"] = addr
	switch {
	case c.balanceToken != nil && rawScalar(c.balanceToken) == c.Balance:
		out["balance"] = c.balanceToken
	case c.balanceToken == nil && c.Balance == "":
		// never had one
	default:
		bal, err := json.Marshal(c.Balance)
		if err != nil {
			return nil, err
		}
		out["balance"] = bal
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a contact. A numeric balance is kept as its literal text
// and marshals back as the same number until Balance changes.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Contact{}
	if v, ok := raw["address"]; ok {
		if err := json.Unmarshal(v, &c.Address); err != nil {
			return fmt.Errorf("address: %w", err)
		}
		delete(raw, "address")
	}
	if v, ok := raw["balance"]; ok {
		c.Balance = rawScalar(v)
		c.balanceToken = v
		delete(raw, "balance")
	}
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// ExtraKeys returns the names of the extra fields in sorted order.
func (c *Contact) ExtraKeys() []string {
	keys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rawScalar(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(v))
	if text == "null" {
		return ""
	}
	return text
}
