package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-medassist-be/internal/entity"
)

type MedicationItem struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Timing string `json:"timing"`
}

type UploadPrescriptionResponse struct {
	Id          uuid.UUID        `json:"id"`
	RawText     string           `json:"raw_text"`
	Source      string           `json:"source"`
	Confidence  *float64         `json:"confidence,omitempty"`
	Medications []MedicationItem `json:"medications"`
}

type ShowPrescriptionResponse struct {
	Id          uuid.UUID        `json:"id"`
	RawText     string           `json:"raw_text"`
	Source      string           `json:"source"`
	Confidence  *float64         `json:"confidence,omitempty"`
	Medications []MedicationItem `json:"medications"`
	CreatedAt   time.Time        `json:"created_at"`
}

type ListPrescriptionsResponse struct {
	Id              uuid.UUID `json:"id"`
	MedicationCount int       `json:"medication_count"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToMedicationItems(medications []entity.MedicationEntity) []MedicationItem {
	items := make([]MedicationItem, len(medications))
	for i, m := range medications {
		items[i] = MedicationItem{
			Name:   m.Name,
			Dosage: m.Dosage,
			Timing: string(m.Timing),
		}
	}
	return items
}

// OcrProgressMessage is the payload published on the progress topic while an
// upload moves through the extraction pipeline.
type OcrProgressMessage struct {
	UserId  uuid.UUID `json:"user_id"`
	Stage   string    `json:"stage"`
	Percent int       `json:"percent"`
	Detail  string    `json:"detail,omitempty"`
}
