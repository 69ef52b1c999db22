package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Query      string     `gorm:"type:text;not null"`
	Context    string     `gorm:"type:text"`
	Reply      string     `gorm:"type:text;not null"`
	SeverityId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
