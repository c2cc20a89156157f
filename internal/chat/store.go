package chat

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	appErr "github.com/documind/documind/internal/pkg/errors"
)

// Store holds the live sessions of the process. Sessions expire after
// the configured idle TTL or when capacity pushes them out; eviction
// closes the session so a stale handle can never send again.
type Store struct {
	sessions *expirable.LRU[string, *Session]
}

func NewStore(maxSessions int, ttl time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	onEvict := func(key string, session *Session) {
		session.Close()
	}
	return &Store{
		sessions: expirable.NewLRU[string, *Session](maxSessions, onEvict, ttl),
	}
}

func (s *Store) Put(session *Session) {
	s.sessions.Add(session.ID, session)
}

// Get returns the session if it exists and belongs to the workspace.
func (s *Store) Get(workspaceID, id string) (*Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok || session.WorkspaceID != workspaceID {
		return nil, appErr.ErrNotFound
	}
	return session, nil
}

// Remove closes and drops the session. Missing sessions are reported
// as not found so a double close is visible to the caller.
func (s *Store) Remove(workspaceID, id string) error {
	session, err := s.Get(workspaceID, id)
	if err != nil {
		return err
	}
	session.Close()
	s.sessions.Remove(id)
	return nil
}

func (s *Store) Len() int {
	return s.sessions.Len()
}
