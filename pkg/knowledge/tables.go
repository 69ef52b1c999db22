package knowledge

// Curated tables for the matcher. These are deliberate overrides above
// automatic retrieval: loose full-text matching is not acceptable for some
// medical terms, so the alias layer routes them explicitly.

// AliasDefer is the sentinel for symptom terms that are too broad for a
// keyword alias ("cancer" alone could be anything). The matcher returns no
// record for them and the generative responder handles the turn.
const AliasDefer = "__DEFER__"

// advisoryWords gate the matcher: a query with none of these and no condition
// keyword is ordinary chat and must not trigger a knowledge lookup.
var advisoryWords = []string{
	"suggest",
	"remedy",
	"remedies",
	"recommend",
	"treatment",
	"treat",
	"cure",
	"help",
	"relief",
	"medicine",
	"medication",
	"advise",
	"advice",
	"prescribe",
	"symptom",
	"symptoms",
}

// conditionKeywords map a detectable keyword to its canonical knowledge-base
// condition name.
var conditionKeywords = map[string]string{
	"diabetes":       "Diabetes",
	"sugar level":    "Diabetes",
	"migraine":       "Migraine",
	"headache":       "Migraine",
	"fever":          "Viral Fever",
	"cold":           "Common Cold",
	"cough":          "Common Cold",
	"flu":            "Influenza",
	"asthma":         "Asthma",
	"breathless":     "Asthma",
	"cannot breathe": "Asthma",
	"hypertension":   "Hypertension",
	"blood pressure": "Hypertension",
	"chest pain":     "Heart Attack",
	"heart attack":   "Heart Attack",
	"stroke":         "Stroke",
	"allergy":        "Allergic Rhinitis",
	"malaria":        "Malaria",
	"dengue":         "Dengue",
	"typhoid":        "Typhoid",
	"anemia":         "Anemia",
	"arthritis":      "Arthritis",
	"joint pain":     "Arthritis",
	"ulcer":          "Peptic Ulcer",
	"acidity":        "Acid Reflux",
	"pneumonia":      "Pneumonia",
	"diarrhea":       "Diarrhea",
	"loose motion":   "Diarrhea",
	"food poisoning": "Food Poisoning",
	"skin rash":      "Dermatitis",
	"cancer":         AliasDefer,
	"tumor":          AliasDefer,
}

// conditionUrgency ranks conditions for keyword collisions: when a query
// carries keywords of several conditions at once, the most dangerous one must
// win the detection. Values track the knowledge-base severity scores.
var conditionUrgency = map[string]float64{
	"Common Cold":       1.5,
	"Allergic Rhinitis": 2.0,
	"Dermatitis":        2.5,
	"Viral Fever":       3.0,
	"Acid Reflux":       3.0,
	"Influenza":         3.5,
	"Gastritis":         3.5,
	"Diarrhea":          3.5,
	"Migraine":          4.0,
	"Anemia":            4.0,
	"Food Poisoning":    4.5,
	"Arthritis":         4.5,
	"Peptic Ulcer":      5.5,
	"Hypertension":      6.0,
	"Diabetes":          6.0,
	"Asthma":            6.5,
	"Typhoid":           6.5,
	"Malaria":           7.0,
	"Dengue":            7.5,
	"Pneumonia":         7.5,
	"Heart Attack":      9.5,
	"Stroke":            9.5,
}

// symptomAliases route symptom phrasings to a condition before any database
// matching happens. Word-boundary matched, checked in insertion-independent
// order with longer phrases first.
var symptomAliases = map[string]string{
	"head is pounding":  "Migraine",
	"head pain":         "Migraine",
	"high temperature":  "Viral Fever",
	"running nose":      "Common Cold",
	"runny nose":        "Common Cold",
	"sore throat":       "Common Cold",
	"short of breath":   "Asthma",
	"wheezing":          "Asthma",
	"burning chest":     "Acid Reflux",
	"heartburn":         "Acid Reflux",
	"stomach ache":      "Gastritis",
	"stomach pain":      "Gastritis",
	"vomiting":          "Food Poisoning",
	"itchy skin":        "Dermatitis",
	"frequent urination": "Diabetes",
	"always thirsty":    "Diabetes",
	"dizzy":             "Hypertension",
	"lump":              AliasDefer,
}
