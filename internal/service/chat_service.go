package service

import (
	"context"

	"github.com/documind/documind/internal/ai"
	"github.com/documind/documind/internal/chat"
	"github.com/documind/documind/internal/model"
)

type ChatService struct {
	manager   *ai.Manager
	documents *DocumentService
	sessions  *chat.Store
}

func NewChatService(manager *ai.Manager, documents *DocumentService, sessions *chat.Store) *ChatService {
	return &ChatService{manager: manager, documents: documents, sessions: sessions}
}

// CreateSession opens a new session bound to one stored document.
// Sessions for the same document do not interact; a newer session
// simply supersedes the older one's relevance.
func (s *ChatService) CreateSession(ctx context.Context, workspaceID, docID string) (*chat.Session, error) {
	doc, encoded, err := s.documents.Load(ctx, workspaceID, docID)
	if err != nil {
		return nil, err
	}
	session, err := chat.NewSession(newID(), workspaceID, doc.ID, encoded, s.manager)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(session)
	return session, nil
}

func (s *ChatService) Send(ctx context.Context, workspaceID, sessionID, text string) (string, error) {
	session, err := s.sessions.Get(workspaceID, sessionID)
	if err != nil {
		return "", err
	}
	return session.Send(ctx, text)
}

func (s *ChatService) Transcript(workspaceID, sessionID string) ([]model.ChatTurn, error) {
	session, err := s.sessions.Get(workspaceID, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript(), nil
}

func (s *ChatService) CloseSession(workspaceID, sessionID string) error {
	return s.sessions.Remove(workspaceID, sessionID)
}
