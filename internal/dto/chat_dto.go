package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type SeverityInfo struct {
	Score       float64 `json:"score"`
	Level       string  `json:"level"`
	IsEmergency bool    `json:"is_emergency"`
	Condition   *string `json:"condition,omitempty"`
}

type SendChatResponse struct {
	Id       uuid.UUID     `json:"id"`
	Reply    string        `json:"reply"`
	Model    string        `json:"model"`
	Severity *SeverityInfo `json:"severity,omitempty"`
}

type ChatHistoryItem struct {
	Id        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

type SeverityStatusResponse struct {
	MaxSeverity float64               `json:"max_severity"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
	History     []SeverityHistoryItem `json:"history"`
}

type SeverityHistoryItem struct {
	Score       float64   `json:"score"`
	Level       string    `json:"level"`
	IsEmergency bool      `json:"is_emergency"`
	Condition   *string   `json:"condition,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
