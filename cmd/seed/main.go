package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"ai-medassist-be/internal/config"
	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/mapper"
	"ai-medassist-be/pkg/database"
	"ai-medassist-be/pkg/embedding"
)

// seedRecord is one knowledge-base row before embedding.
type seedRecord struct {
	Condition     string
	Symptoms      []string
	Remedy        string
	Precautions   []string
	SeverityScore float64
}

var seedData = []seedRecord{
	{
		Condition:     "Common Cold",
		Symptoms:      []string{"runny nose", "sneezing", "sore throat", "mild cough"},
		Remedy:        "Rest, warm fluids, steam inhalation and saline gargles.",
		Precautions:   []string{"avoid cold drinks", "wash hands frequently"},
		SeverityScore: 1.5,
	},
	{
		Condition:     "Viral Fever",
		Symptoms:      []string{"high temperature", "body ache", "fatigue", "chills"},
		Remedy:        "Rest, hydration and paracetamol for fever as advised.",
		Precautions:   []string{"monitor temperature", "see a doctor if fever exceeds 3 days"},
		SeverityScore: 3.0,
	},
	{
		Condition:     "Migraine",
		Symptoms:      []string{"throbbing headache", "nausea", "light sensitivity"},
		Remedy:        "Rest in a dark quiet room, cold compress and hydration.",
		Precautions:   []string{"track triggers", "avoid skipped meals"},
		SeverityScore: 4.0,
	},
	{
		Condition:     "Influenza",
		Symptoms:      []string{"fever", "dry cough", "muscle pain", "headache"},
		Remedy:        "Rest, fluids and antiviral medication when prescribed early.",
		Precautions:   []string{"stay home while symptomatic", "annual vaccination"},
		SeverityScore: 3.5,
	},
	{
		Condition:     "Gastritis",
		Symptoms:      []string{"stomach pain", "burning sensation", "bloating", "nausea"},
		Remedy:        "Small bland meals, avoid irritants, antacids as advised.",
		Precautions:   []string{"avoid spicy food", "limit caffeine and alcohol"},
		SeverityScore: 3.5,
	},
	{
		Condition:     "Acid Reflux",
		Symptoms:      []string{"heartburn", "regurgitation", "chest discomfort after meals"},
		Remedy:        "Smaller meals, stay upright after eating, antacids as advised.",
		Precautions:   []string{"avoid late-night meals", "elevate the head of the bed"},
		SeverityScore: 3.0,
	},
	{
		Condition:     "Food Poisoning",
		Symptoms:      []string{"vomiting", "diarrhea", "abdominal cramps", "weakness"},
		Remedy:        "Oral rehydration solution and rest; bland food once vomiting stops.",
		Precautions:   []string{"seek care if blood in stool", "watch for dehydration"},
		SeverityScore: 4.5,
	},
	{
		Condition:     "Diarrhea",
		Symptoms:      []string{"loose stools", "cramps", "urgency"},
		Remedy:        "Oral rehydration solution, zinc supplements and a bland diet.",
		Precautions:   []string{"maintain hydration", "seek care if it persists beyond 2 days"},
		SeverityScore: 3.5,
	},
	{
		Condition:     "Allergic Rhinitis",
		Symptoms:      []string{"sneezing", "itchy eyes", "nasal congestion"},
		Remedy:        "Antihistamines as advised and allergen avoidance.",
		Precautions:   []string{"keep windows closed in pollen season", "wash bedding weekly"},
		SeverityScore: 2.0,
	},
	{
		Condition:     "Dermatitis",
		Symptoms:      []string{"itchy skin", "redness", "dry patches"},
		Remedy:        "Moisturizers, avoiding the irritant and mild topical steroids as advised.",
		Precautions:   []string{"avoid harsh soaps", "patch-test new products"},
		SeverityScore: 2.5,
	},
	{
		Condition:     "Anemia",
		Symptoms:      []string{"fatigue", "pale skin", "shortness of breath on exertion"},
		Remedy:        "Iron-rich diet and supplements as prescribed after blood work.",
		Precautions:   []string{"confirm with a blood test", "pair iron with vitamin C"},
		SeverityScore: 4.0,
	},
	{
		Condition:     "Arthritis",
		Symptoms:      []string{"joint pain", "stiffness", "swelling"},
		Remedy:        "Gentle exercise, warm compresses and anti-inflammatory medication as advised.",
		Precautions:   []string{"maintain healthy weight", "avoid joint overuse"},
		SeverityScore: 4.5,
	},
	{
		Condition:     "Peptic Ulcer",
		Symptoms:      []string{"burning stomach pain", "bloating", "pain between meals"},
		Remedy:        "Acid-suppressing medication as prescribed and an ulcer-friendly diet.",
		Precautions:   []string{"avoid NSAIDs", "seek care for black stools"},
		SeverityScore: 5.5,
	},
	{
		Condition:     "Hypertension",
		Symptoms:      []string{"often silent", "headache", "dizziness"},
		Remedy:        "Prescribed antihypertensives, low-salt diet and regular exercise.",
		Precautions:   []string{"monitor blood pressure regularly", "do not stop medication abruptly"},
		SeverityScore: 6.0,
	},
	{
		Condition:     "Diabetes",
		Symptoms:      []string{"frequent urination", "excessive thirst", "unexplained weight loss"},
		Remedy:        "Blood sugar monitoring, prescribed medication, diet control and exercise.",
		Precautions:   []string{"regular HbA1c checks", "foot care"},
		SeverityScore: 6.0,
	},
	{
		Condition:     "Asthma",
		Symptoms:      []string{"wheezing", "shortness of breath", "chest tightness"},
		Remedy:        "Prescribed inhalers and trigger avoidance; seek help for severe attacks.",
		Precautions:   []string{"carry reliever inhaler", "avoid known triggers"},
		SeverityScore: 6.5,
	},
	{
		Condition:     "Typhoid",
		Symptoms:      []string{"sustained fever", "abdominal pain", "weakness"},
		Remedy:        "Antibiotics as prescribed, hydration and soft diet.",
		Precautions:   []string{"complete the antibiotic course", "drink safe water"},
		SeverityScore: 6.5,
	},
	{
		Condition:     "Malaria",
		Symptoms:      []string{"cyclic fever", "chills", "sweating", "headache"},
		Remedy:        "Antimalarial treatment as prescribed after a confirmed blood test.",
		Precautions:   []string{"use mosquito nets", "complete the full course"},
		SeverityScore: 7.0,
	},
	{
		Condition:     "Dengue",
		Symptoms:      []string{"high fever", "severe body ache", "rash", "low platelets"},
		Remedy:        "Hydration, rest and platelet monitoring; avoid aspirin.",
		Precautions:   []string{"watch for bleeding signs", "daily platelet counts in the critical phase"},
		SeverityScore: 7.5,
	},
	{
		Condition:     "Pneumonia",
		Symptoms:      []string{"productive cough", "fever", "chest pain", "breathlessness"},
		Remedy:        "Antibiotics as prescribed, rest and fluids; hospital care when severe.",
		Precautions:   []string{"complete the antibiotic course", "seek care if breathing worsens"},
		SeverityScore: 7.5,
	},
	{
		Condition:     "Heart Attack",
		Symptoms:      []string{"chest pain", "pain radiating to arm or jaw", "sweating", "breathlessness"},
		Remedy:        "Call emergency services immediately. Chew aspirin if advised by a medic.",
		Precautions:   []string{"do not drive yourself", "note symptom onset time"},
		SeverityScore: 9.5,
	},
	{
		Condition:     "Stroke",
		Symptoms:      []string{"face drooping", "arm weakness", "slurred speech", "sudden confusion"},
		Remedy:        "Call emergency services immediately. Time-critical treatment.",
		Precautions:   []string{"note symptom onset time", "do not give food or drink"},
		SeverityScore: 9.5,
	},
}

func embeddingText(r seedRecord) string {
	return fmt.Sprintf("Condition: %s\nSymptoms: %s\nRemedy: %s",
		r.Condition, strings.Join(r.Symptoms, ", "), r.Remedy)
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingDims)
	}

	knowledgeMapper := mapper.NewKnowledgeMapper()

	for _, r := range seedData {
		res, err := provider.Generate(embeddingText(r), "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Fatalf("Error: Failed to embed %q: %v", r.Condition, err)
		}

		record := &entity.KnowledgeRecord{
			Id:            uuid.New(),
			Condition:     r.Condition,
			Symptoms:      r.Symptoms,
			Remedy:        r.Remedy,
			Precautions:   r.Precautions,
			SeverityScore: r.SeverityScore,
			Embedding:     res.Embedding.Values,
		}

		// Re-running the seeder refreshes existing rows in place.
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "condition"}},
			UpdateAll: true,
		}).Create(knowledgeMapper.ToModel(record)).Error
		if err != nil {
			log.Fatalf("Error: Failed to upsert %q: %v", r.Condition, err)
		}

		log.Printf("Seeded %q (severity %.1f)", r.Condition, r.SeverityScore)
	}

	log.Printf("Success: Seeded %d knowledge records.", len(seedData))
}
