// Package api defines the JSON wire types shared by the server handlers and
// the remote backend client. Realtime watch frames are plain JSON arrays of
// entries: the server pushes the full, timestamp-descending snapshot on
// connect and after every change.
package api

import "github.com/kalajat/archive/internal/models"

// GuestAuthRequest asks the server for an anonymous identity.
type GuestAuthRequest struct {
	Name string `json:"name,omitempty"`
}

// GuestAuthResponse carries the signed access token and the resolved guest
// identity.
type GuestAuthResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// CreateEntryRequest is the draft submitted by a client. The server assigns
// the id and keeps the client timestamp (assigning one only if zero).
type CreateEntryRequest struct {
	VictimName string          `json:"victimName"`
	Content    string          `json:"content"`
	Category   models.Category `json:"category"`
	Timestamp  int64           `json:"timestamp,omitempty"`
	Analysis   string          `json:"analysis,omitempty"`
}

// ExportResponse reports where the snapshot export landed.
type ExportResponse struct {
	Key string `json:"key"`
}

// ErrorResponse is the uniform error body for non-2xx replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
