package models

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one row in a visitor's cart: a product at a specific add-on
// configuration. Two adds of the same configuration land on the same line.
type CartLine struct {
	LineID     string          `json:"line_id"`
	Product    *Product        `json:"product"`
	AddOns     []string        `json:"add_ons"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ConfigKey builds the canonical merge key for a (product, add-on set)
// configuration. Add-on order is irrelevant to identity, so the ids are
// sorted before joining. The input slice is not modified.
func ConfigKey(productID int, addOnIDs []string) string {
	sorted := make([]string, len(addOnIDs))
	copy(sorted, addOnIDs)
	sort.Strings(sorted)
	return strconv.Itoa(productID) + "|" + strings.Join(sorted, "+")
}

// Key returns the line's canonical configuration key.
func (l *CartLine) Key() string {
	return ConfigKey(l.Product.ID, l.AddOns)
}

// Clone returns a detached copy of the line, safe to hand outside the
// session lock. The product pointer is shared: catalog records are
// immutable for the session.
func (l *CartLine) Clone() *CartLine {
	copied := *l
	copied.AddOns = make([]string, len(l.AddOns))
	copy(copied.AddOns, l.AddOns)
	return &copied
}

// Draft modes. A draft is either a fresh customization headed for a new
// add-to-cart, or an edit of an existing line.
const (
	DraftModeNew  = "new"
	DraftModeEdit = "edit"
)

// Draft is the in-progress customization: not part of the cart until
// confirmed, discarded wholesale on cancel.
type Draft struct {
	Product *Product `json:"product"`
	AddOns  []string `json:"add_ons"`
	Mode    string   `json:"mode"`
	LineID  string   `json:"line_id,omitempty"`
}

// Clone returns a detached copy of the draft, safe to hand outside the
// session lock.
func (d *Draft) Clone() *Draft {
	copied := *d
	copied.AddOns = make([]string, len(d.AddOns))
	copy(copied.AddOns, d.AddOns)
	return &copied
}

// HasAddOn reports whether the draft currently has the add-on selected.
func (d *Draft) HasAddOn(id string) bool {
	for _, a := range d.AddOns {
		if a == id {
			return true
		}
	}
	return false
}

// Notification is the transient "added to cart" toast. Only one is shown at
// a time; a new one supersedes whatever is currently visible.
type Notification struct {
	Visible bool      `json:"visible"`
	Message string    `json:"message,omitempty"`
	ShownAt time.Time `json:"shown_at,omitempty"`

	// Generation increments on every show so a stale auto-dismiss timer
	// cannot clear a newer notification.
	Generation uint64 `json:"-"`
}

// Session is the per-visitor state container: the cart, the customization
// draft and the toast. All mutations go through the cart service, which
// holds the session's lock for the duration of each operation so operations
// on one session never interleave.
type Session struct {
	ID           string
	Lines        []*CartLine
	Draft        *Draft
	Notification Notification
	CreatedAt    time.Time
	LastSeen     time.Time

	Mu sync.Mutex
}

// FindLine returns the line with the given id, or nil.
func (s *Session) FindLine(lineID string) *CartLine {
	for _, line := range s.Lines {
		if line.LineID == lineID {
			return line
		}
	}
	return nil
}

// FindLineByKey returns the line matching the configuration key, skipping
// the line with id skipLineID (pass "" to search all lines).
func (s *Session) FindLineByKey(key, skipLineID string) *CartLine {
	for _, line := range s.Lines {
		if line.LineID != skipLineID && line.Key() == key {
			return line
		}
	}
	return nil
}

// RemoveLine deletes the line with the given id, preserving the order of
// the remaining lines. Returns true if a line was removed.
func (s *Session) RemoveLine(lineID string) bool {
	for i, line := range s.Lines {
		if line.LineID == lineID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// TotalItemCount is the sum of quantities across all lines, recomputed on
// every call.
func (s *Session) TotalItemCount() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// TotalPrice is the sum of line totals across all lines, recomputed on
// every call.
func (s *Session) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.TotalPrice)
	}
	return total
}
