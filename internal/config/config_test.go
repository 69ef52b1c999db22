package config

import (
	"os"
	"testing"

	"ai-medassist-be/internal/constant"
)

func TestLoadChatModelsNeverEmpty(t *testing.T) {
	t.Setenv("CHAT_MODEL_CANDIDATES", " , ,")

	cfg := Load()
	if len(cfg.Ai.ChatModels) == 0 {
		t.Fatal("ChatModels is empty, want fallback candidates")
	}
	if cfg.Ai.ChatModels[0] != "gemini-1.5-flash" {
		t.Errorf("first candidate = %q, want gemini-1.5-flash", cfg.Ai.ChatModels[0])
	}
}

func TestLoadProgressTopicDefault(t *testing.T) {
	os.Unsetenv("OCR_PROGRESS_TOPIC_NAME")

	cfg := Load()
	if cfg.Keys.ProgressTopic != constant.TopicOcrProgress {
		t.Errorf("ProgressTopic = %q, want %q", cfg.Keys.ProgressTopic, constant.TopicOcrProgress)
	}
}
