// Package remote implements the persistence backend backed by the hosted
// archive server: writes over HTTP, realtime reads over a websocket that the
// server feeds with full snapshots. Mirrors the contract of the local
// fallback so the store never needs to know which one is active.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/kalajat/archive/internal/api"
	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/logging"
	"github.com/kalajat/archive/internal/models"
)

// Backend talks to one archive server. Safe for concurrent use.
type Backend struct {
	endpoint string // e.g. "http://127.0.0.1:8080"
	http     *http.Client
	log      logging.Logger

	mu    sync.Mutex
	token string
}

func New(endpoint string, log logging.Logger) *Backend {
	return &Backend{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log.With("module", "remote_backend"),
	}
}

// SetToken installs the access token used on write requests.
func (b *Backend) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *Backend) accessToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// Authenticate obtains a guest identity and access token from the server and
// installs the token for subsequent writes.
func (b *Backend) Authenticate(ctx context.Context, name string) (*models.Identity, error) {
	var resp api.GuestAuthResponse
	if err := b.doJSON(ctx, http.MethodPost, "/api/v1/auth/guest", api.GuestAuthRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	b.SetToken(resp.Token)
	return &resp.User, nil
}

func (b *Backend) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.endpoint+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := b.accessToken(); token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case resp.StatusCode >= 400:
		var e api.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server: %s", resp.Status)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Create submits the draft; the server assigns the id. The canonical list
// update arrives through the watch stream, not through this call.
func (b *Backend) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	req := api.CreateEntryRequest{
		VictimName: entry.VictimName,
		Content:    entry.Content,
		Category:   entry.Category,
		Timestamp:  entry.Timestamp,
		Analysis:   entry.Analysis,
	}
	var created models.Entry
	if err := b.doJSON(ctx, http.MethodPost, "/api/v1/entries", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an entry by id; unknown ids are a server-side no-op.
func (b *Backend) Delete(ctx context.Context, id string) error {
	return b.doJSON(ctx, http.MethodDelete, "/api/v1/entries/"+id, nil, nil)
}

// Export asks the server to upload the current snapshot to object storage.
func (b *Backend) Export(ctx context.Context) (string, error) {
	var resp api.ExportResponse
	if err := b.doJSON(ctx, http.MethodPost, "/api/v1/admin/export", nil, &resp); err != nil {
		return "", err
	}
	return resp.Key, nil
}

func (b *Backend) watchURL() string {
	url := b.endpoint + "/api/v1/entries/watch"
	url = strings.Replace(url, "https://", "wss://", 1)
	url = strings.Replace(url, "http://", "ws://", 1)
	return url
}

// Subscribe dials the watch websocket and forwards every snapshot frame to
// onChange. The first frame arrives immediately on connect, so subscribers
// get the current state without waiting for a change. Dropped connections
// are redialed with exponential backoff until cancelled.
func (b *Backend) Subscribe(ctx context.Context, onChange func([]models.Entry)) (func(), error) {
	conn, err := b.dial(ctx)
	if err != nil {
		return nil, err
	}

	subCtx, cancelCtx := context.WithCancel(ctx)
	done := make(chan struct{})

	var connMu sync.Mutex // guards conn across the reader loop and cancel

	go func() {
		defer close(done)
		for {
			err := b.readFrames(subCtx, conn, onChange)
			connMu.Lock()
			conn.Close()
			connMu.Unlock()

			if subCtx.Err() != nil {
				return
			}
			b.log.Warn(subCtx, "watch stream dropped, reconnecting", "error", err.Error())

			next, err := b.redial(subCtx)
			if err != nil {
				return
			}
			connMu.Lock()
			conn = next
			connMu.Unlock()
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelCtx()
			connMu.Lock()
			conn.Close()
			connMu.Unlock()
			<-done
		})
	}
	return cancel, nil
}

func (b *Backend) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, b.watchURL(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial watch: %w", err)
	}
	return conn, nil
}

// redial retries the watch connection with exponential backoff, capped so a
// long outage keeps probing about every half minute.
func (b *Backend) redial(ctx context.Context) (*websocket.Conn, error) {
	backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(time.Second))

	var conn *websocket.Conn
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := b.dial(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (b *Backend) readFrames(ctx context.Context, conn *websocket.Conn, onChange func([]models.Entry)) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var entries []models.Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			b.log.Warn(ctx, "bad watch frame", "error", err.Error())
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		onChange(entries)
	}
}

func (b *Backend) Close() error {
	b.http.CloseIdleConnections()
	return nil
}
