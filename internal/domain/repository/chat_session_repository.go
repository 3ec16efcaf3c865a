package repository

import (
	"context"

	"doctor-roster/internal/domain/entity"
)

type ChatSessionRepository interface {
	FindByLineUserID(ctx context.Context, lineUserID string) (*entity.ChatSession, error)
	Upsert(ctx context.Context, session *entity.ChatSession) error
}
