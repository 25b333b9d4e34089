// Package models defines the wire-level metadata document shared by the
// client and the server.
package models

// Item is a single key/value metadata entry. Lookup identity is the key,
// but the document itself does not guarantee key uniqueness: duplicate keys
// are a legitimate (if unwanted) state, and several operations define their
// behavior in terms of document order.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Document is a full metadata snapshot. Fingerprint is an opaque version
// token: it is compared by equality only and must be presented unchanged on
// the next write to prove no intervening modification occurred.
//
// Items is an ordered slice on purpose. Replacing it with a map would lose
// both duplicate keys and the order that the last-match-wins operations
// depend on.
type Document struct {
	Fingerprint string `json:"fingerprint"`
	Items       []Item `json:"items,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{Fingerprint: d.Fingerprint}
	if d.Items != nil {
		c.Items = make([]Item, len(d.Items))
		copy(c.Items, d.Items)
	}
	return c
}
