package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kalajat/archive/internal/filex"
)

// FileStore keeps one file per slot under a state directory. Writes are
// atomic (temp file + rename), so watchers never read half a value. Watch is
// backed by fsnotify on the directory, which is what makes edits from a
// second process on the same machine visible without waiting for a poll.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if _, err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := filex.WriteAtomic(s.path(key), []byte(value)); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Watch signals on every write/create/rename within the state directory.
// Signals are coalesced: the channel holds at most one pending tick.
func (s *FileStore) Watch(ctx context.Context) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	ch := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	cancel := func() {
		watcher.Close()
		<-done
	}
	return ch, cancel, nil
}

func (s *FileStore) Close() error {
	return nil
}
