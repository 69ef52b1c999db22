package implementation

import (
	"testing"

	"ai-medassist-be/internal/model"
)

func TestNewKnowledgeRepositoryTableSelection(t *testing.T) {
	def := NewKnowledgeRepository(nil, "").(*KnowledgeRepositoryImpl)
	if want := (model.KnowledgeRecord{}).TableName(); def.table != want {
		t.Errorf("empty table name resolved to %q, want %q", def.table, want)
	}

	custom := NewKnowledgeRepository(nil, "knowledge_records_v2").(*KnowledgeRepositoryImpl)
	if custom.table != "knowledge_records_v2" {
		t.Errorf("custom table name resolved to %q, want knowledge_records_v2", custom.table)
	}
}
