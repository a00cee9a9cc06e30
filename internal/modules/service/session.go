package service

import (
	"context"

	"github.com/schema-studio/schema-studio/internal/modules/model"
	"github.com/schema-studio/schema-studio/internal/modules/repo"
)

// SessionService covers the session lifecycle endpoints. GetByID returns
// the full record; credential redaction happens in the serializer.
type SessionService interface {
	List(ctx context.Context) (*ListSessionsOutput, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type ListSessionsOutput struct {
	Sessions []string `json:"sessions"`
	Count    int      `json:"count"`
}

type sessionService struct {
	r repo.SessionRepo
}

func NewSessionService(r repo.SessionRepo) SessionService {
	return &sessionService{r: r}
}

func (s *sessionService) List(ctx context.Context) (*ListSessionsOutput, error) {
	ids, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSessionsOutput{Sessions: ids, Count: len(ids)}, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*model.Session, error) {
	return s.r.Get(ctx, id)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	existed, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrSessionNotFound
	}
	return nil
}
