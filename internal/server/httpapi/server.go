// Package httpapi exposes the archive over HTTP: guest auth, entry writes,
// the list endpoint, the websocket watch stream and the admin export hook.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kalajat/archive/internal/api"
	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
	"github.com/kalajat/archive/internal/server/auth"
	"github.com/kalajat/archive/internal/server/entries"
	"github.com/kalajat/archive/internal/server/export"
	"github.com/kalajat/archive/internal/server/realtime"
)

const shutdownTimeout = 5 * time.Second

// GuestName is the display name assigned when a guest does not pick one.
const GuestName = "ضيف"

type Server struct {
	address       string
	entries       *entries.Service
	exporter      *export.Exporter
	hub           *realtime.Hub
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	upgrader      websocket.Upgrader
}

func NewServer(address string, l logging.Logger, es *entries.Service, ex *export.Exporter, hub *realtime.Hub, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		entries:       es,
		exporter:      ex,
		hub:           hub,
		logger:        l.With("module", "http_server"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
		upgrader:      websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler builds the route table. Exposed so tests can drive the server
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/guest", s.handleGuestAuth)
	mux.HandleFunc("GET /api/v1/entries", s.handleList)
	mux.HandleFunc("POST /api/v1/entries", s.requireAuth(s.handleCreate))
	mux.HandleFunc("DELETE /api/v1/entries/{id}", s.requireAuth(s.handleDelete))
	mux.HandleFunc("GET /api/v1/entries/watch", s.handleWatch)
	mux.HandleFunc("POST /api/v1/admin/export", s.requireAuth(s.handleExport))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

type identityKey struct{}

// requireAuth verifies the bearer token and stashes the identity in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, common.ErrorUnauthorized)
			return
		}
		user, err := auth.IdentityFromToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, *user)
		next(w, r.WithContext(ctx))
	}
}

func identityFromContext(ctx context.Context) models.Identity {
	user, _ := ctx.Value(identityKey{}).(models.Identity)
	return user
}

func (s *Server) handleGuestAuth(w http.ResponseWriter, r *http.Request) {
	var req api.GuestAuthRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // an empty body means default name
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = GuestName
	}

	user := models.Identity{UID: uuid.NewString(), DisplayName: name}
	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.GuestAuthResponse{Token: token, User: user})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.entries.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, common.ErrValidation)
		return
	}

	draft := models.Entry{
		VictimName: req.VictimName,
		Content:    req.Content,
		Category:   req.Category,
		Timestamp:  req.Timestamp,
		Analysis:   req.Analysis,
	}

	created, err := s.entries.Create(r.Context(), identityFromContext(r.Context()), draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.entries.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	items, err := s.entries.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	key, err := s.exporter.Export(r.Context(), items)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ExportResponse{Key: key})
}

// handleWatch upgrades to a websocket and pushes the full snapshot on
// connect and after every change notification until the peer goes away.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // the upgrader already replied
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	changes, unregister := s.hub.Register()
	defer unregister()

	// Read pump: we expect no client frames, but reading is the only way
	// to notice the peer closing the connection.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.pushSnapshot(ctx, conn); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if err := s.pushSnapshot(ctx, conn); err != nil {
				return
			}
		}
	}
}

func (s *Server) pushSnapshot(ctx context.Context, conn *websocket.Conn) error {
	items, err := s.entries.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "snapshot fetch failed", "error", err.Error())
		return err
	}
	return conn.WriteJSON(items)
}
