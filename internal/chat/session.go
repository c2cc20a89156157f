package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
)

const (
	stateReady int32 = iota
	stateAwaiting
	stateClosed
)

// Session is a document-bound conversational context. It owns the full
// model-side history, including the hidden seed exchange; the visible
// transcript starts empty. Turns are strictly sequential: while one
// Send is in flight any other Send is rejected, not queued.
type Session struct {
	ID          string
	WorkspaceID string
	DocumentID  string
	Ctime       int64

	manager *ai.Manager
	state   atomic.Int32

	mu         sync.Mutex
	history    []ai.Turn
	transcript []model.ChatTurn
}

// NewSession seeds a ready session with the document payload and the
// grounding instruction.
func NewSession(id, workspaceID, documentID string, doc *model.EncodedDocument, manager *ai.Manager) (*Session, error) {
	history, err := ai.SeedHistory(doc)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:          id,
		WorkspaceID: workspaceID,
		DocumentID:  documentID,
		Ctime:       time.Now().Unix(),
		manager:     manager,
		history:     history,
	}, nil
}

// Send submits one user message and returns the model answer. A failed
// turn mutates nothing: the history stays at its last successful state
// and the next Send retries cleanly.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty message", appErr.ErrInvalid)
	}
	if !s.state.CompareAndSwap(stateReady, stateAwaiting) {
		if s.state.Load() == stateClosed {
			return "", appErr.ErrSessionClosed
		}
		return "", appErr.ErrSessionBusy
	}
	defer s.state.CompareAndSwap(stateAwaiting, stateReady)

	answer, err := s.manager.Chat(ctx, s.snapshotHistory(), trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", appErr.ErrChatTurn, err)
	}

	now := time.Now().Unix()
	s.mu.Lock()
	s.history = append(s.history,
		ai.Turn{Role: ai.RoleUser, Parts: []ai.Part{{Text: trimmed}}},
		ai.Turn{Role: ai.RoleModel, Parts: []ai.Part{{Text: answer}}},
	)
	s.transcript = append(s.transcript,
		model.ChatTurn{Role: model.ChatRoleUser, Text: trimmed, Timestamp: now},
		model.ChatTurn{Role: model.ChatRoleAssistant, Text: answer, Timestamp: now},
	)
	s.mu.Unlock()
	return answer, nil
}

// Transcript returns a copy of the visible turns. The seed exchange is
// never included.
func (s *Session) Transcript() []model.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatTurn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// HistoryLen reports the model-side history length, seed included.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Close ends the session. Subsequent Send calls fail with
// ErrSessionClosed. Closing twice is harmless.
func (s *Session) Close() {
	s.state.Store(stateClosed)
}

func (s *Session) Closed() bool {
	return s.state.Load() == stateClosed
}

func (s *Session) snapshotHistory() []ai.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ai.Turn, len(s.history))
	copy(out, s.history)
	return out
}
