package repository

import (
	"context"
	"errors"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) domainRepo.ChatSessionRepository {
	return &chatSessionRepository{db: db}
}

func (r *chatSessionRepository) FindByLineUserID(ctx context.Context, lineUserID string) (*entity.ChatSession, error) {
	var session entity.ChatSession
	err := r.db.WithContext(ctx).Where("line_user_id = ?", lineUserID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Upsert creates the session on first contact and overwrites state/context afterwards.
func (r *chatSessionRepository) Upsert(ctx context.Context, session *entity.ChatSession) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "line_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "context", "updated_at"}),
		}).
		Create(session).Error
}
