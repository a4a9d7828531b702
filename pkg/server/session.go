// Package server is the HTTP and websocket backend for the browser editor.
// Every request runs against one Session, so mutations are applied and
// previewed in the order they arrive.
package server

import (
	"log/slog"
	"sync"

	"github.com/pyrx/pyrx-cli/pkg/composer"
	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/models"
)

// Snapshot is the state pushed to the browser after every change
type Snapshot struct {
	Tree     string           `json:"tree"`
	Document *models.Document `json:"document"`
}

// SessionOptions configure a Session
type SessionOptions struct {
	// LayoutPath is written after each successful mutation when Autosave is set
	LayoutPath string
	Autosave   bool
	// RootName overrides the extension name for the preview root folder
	RootName string
	Logger   *slog.Logger
}

// Session owns the layout being edited
type Session struct {
	mu       sync.Mutex
	store    *layout.Store
	opts     SessionOptions
	logger   *slog.Logger
	onChange []func(Snapshot)
}

// NewSession wraps store. The session takes ownership of it.
func NewSession(store *layout.Store, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{store: store, opts: opts, logger: logger}
}

// Subscribe registers fn to receive a snapshot after every successful
// change. fn runs while the session is locked and must not call back into it.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// View runs fn with the store locked. fn must not mutate the store.
func (s *Session) View(fn func(*layout.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// Update runs fn with the store locked. When fn succeeds the layout is
// autosaved and subscribers are notified.
func (s *Session) Update(fn func(*layout.Store) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.store); err != nil {
		return Snapshot{}, err
	}
	return s.changed(), nil
}

// Replace swaps in a freshly loaded store
func (s *Session) Replace(store *layout.Store) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ReplaceAll(store)
	return s.changed()
}

// Current runs fn with the latest snapshot while mutations are held off,
// so whatever fn sends is ordered with the change notifications
func (s *Session) Current(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshot())
}

// Snapshot returns the current preview and document
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Compose projects the current layout. The returned tree does not share
// state with the store.
func (s *Session) Compose() (*models.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return composer.ComposeExtension(s.store, s.opts.RootName)
}

func (s *Session) changed() Snapshot {
	if s.opts.Autosave && s.opts.LayoutPath != "" {
		if err := files.SaveLayout(s.opts.LayoutPath, s.store); err != nil {
			s.logger.Error("autosave failed", "path", s.opts.LayoutPath, "err", err)
		}
	}
	snap := s.snapshot()
	for _, fn := range s.onChange {
		fn(snap)
	}
	return snap
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{Document: s.store.Document()}
	root, err := composer.ComposeExtension(s.store, s.opts.RootName)
	if err != nil {
		s.logger.Error("projection failed", "err", err)
		return snap
	}
	snap.Tree = composer.FormatTree(root)
	return snap
}
