package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatState is the conversational state of one LINE user
type ChatState string

const (
	ChatStateIdle               ChatState = "idle"
	ChatStateConfirm            ChatState = "confirm"
	ChatStateWaitingAcceptLeave ChatState = "waiting_accept_leave"
)

// IsValid checks if state is one of the known values
func (s ChatState) IsValid() bool {
	switch s {
	case ChatStateIdle, ChatStateConfirm, ChatStateWaitingAcceptLeave:
		return true
	}
	return false
}

// Context keys stored in ChatSession.Context
const (
	ChatContextDoctorID = "doctor_id"
	ChatContextLeaveID  = "leave_id"
)

// ChatSession is keyed by the LINE user id and may exist before any doctor is registered
type ChatSession struct {
	LineUserID string            `gorm:"column:line_user_id;type:varchar(64);primaryKey" json:"line_user_id"`
	State      ChatState         `gorm:"type:varchar(30);not null;default:'idle'" json:"state"`
	Context    datatypes.JSONMap `gorm:"type:jsonb" json:"context,omitempty"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// NewIdleSession returns the implicit session of a user we have never seen
func NewIdleSession(lineUserID string) *ChatSession {
	return &ChatSession{
		LineUserID: lineUserID,
		State:      ChatStateIdle,
		Context:    datatypes.JSONMap{},
	}
}

// ContextUUID reads a uuid stored under key in the session context
func (s *ChatSession) ContextUUID(key string) (uuid.UUID, bool) {
	if s.Context == nil {
		return uuid.Nil, false
	}
	raw, ok := s.Context[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
