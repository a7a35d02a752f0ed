// Package models defines the shared data model of the archive: the Entry
// record itself plus the small view/config types derived from it.
package models

// Category tags an entry as either a spoken slip or a poor pun. No other
// value is valid.
type Category string

const (
	CategorySlip Category = "slip"
	CategoryJoke Category = "joke"

	// CategoryAll is only meaningful as a view filter, never stored.
	CategoryAll Category = "all"
)

// Valid reports whether c is one of the two storable categories.
func (c Category) Valid() bool {
	return c == CategorySlip || c == CategoryJoke
}

// Entry is the sole persisted entity. Once created it is never mutated and
// can only be removed; there is no soft delete and no undo.
//
// Timestamp is client-assigned unix milliseconds and is the sole ordering
// key of the feed, newest first. Ties are broken by backend arrival order.
type Entry struct {
	ID         string   `json:"id"`
	VictimName string   `json:"victimName"`
	Content    string   `json:"content"`
	Category   Category `json:"category"`
	Timestamp  int64    `json:"timestamp"`
	Analysis   string   `json:"analysis,omitempty"`

	// Creator identity, present only when the submitting client was signed
	// in (guest or otherwise).
	UserID    string `json:"userId,omitempty"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	UserPhoto string `json:"userPhoto,omitempty"`
}

// Stat is one leaderboard row: how many entries a victim has collected.
type Stat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Identity describes the signed-in (possibly guest) user on the client side.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}
