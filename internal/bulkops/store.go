package bulkops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Store persists workspaces across dashboard requests. Workspaces are
// transient session state, not durable data; every implementation expires
// them after a TTL.
type Store interface {
	Put(ctx context.Context, sessionID string, workspace *Workspace) error
	Get(ctx context.Context, sessionID string) (*Workspace, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

func NewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

const memoryStoreMaxEntries = 1000

type memoryEntry struct {
	workspace *Workspace
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: map[string]memoryEntry{},
	}
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, workspace *Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{workspace: workspace, expiresAt: time.Now().Add(s.ttl)}
	if len(s.entries) > memoryStoreMaxEntries {
		s.pruneLocked()
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Workspace, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, false, nil
	}
	return entry.workspace, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

func (s *MemoryStore) pruneLocked() {
	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
