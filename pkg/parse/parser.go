package parse

import (
	"regexp"
	"strings"

	"ai-medassist-be/internal/entity"
)

const (
	minNameLength = 3
	maxNameLength = 100
	maxEntities   = 10

	defaultDosage = "As prescribed"
)

var (
	// Tier 1: a word run immediately followed by a number and a dose unit.
	dosagePattern = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\-]+(?:\s+[A-Za-z][A-Za-z\-]+)?)\s+(\d+(?:\.\d+)?)\s*(mg|ml|g|units|iu)\b`)

	// Tier 2: a dosage-form abbreviation followed by a single-word name, with
	// an optional dose or frequency code. The name is one word: greedy
	// multi-word capture would swallow frequency codes like "BD".
	abbrevPattern = regexp.MustCompile(`(?i)\b(?:tab|syp|cap|inj|drops|liquid)\.?\s+([A-Za-z][A-Za-z\-]+)(?:\s+(\d+(?:\.\d+)?)\s*(mg|ml|g|units|iu)\b|\s+(?:BD|OD|TDS|QID|once|twice|thrice)\b)?`)

	// Tier 3: capitalized word runs, the last-resort heuristic.
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-z]{2,}(?:\s+[A-Z][a-z]{2,})*\b`)

	// "1-0-1" style schedule codes.
	schedulePattern = regexp.MustCompile(`\b\d+\s*-\s*\d+\s*-\s*\d+\b`)
)

// Parse extracts medication entities from raw prescription text. It never
// fails: unmatchable input yields an empty slice. Tiers run as a cascade —
// the capitalization fallback only fires when the anchored tiers found
// nothing at all.
func Parse(text string) []entity.MedicationEntity {
	lines := splitLines(text)

	seen := make(map[string]struct{})
	entities := make([]entity.MedicationEntity, 0)

	entities = appendEntities(entities, seen, parseDosageAnchored(lines))
	if len(entities) < maxEntities {
		entities = appendEntities(entities, seen, parseAbbrevAnchored(lines))
	}
	if len(entities) == 0 {
		entities = appendEntities(entities, seen, parseCapitalized(lines))
	}

	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		trimmed := strings.TrimSpace(l)
		if len(trimmed) >= minNameLength {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func appendEntities(dst []entity.MedicationEntity, seen map[string]struct{}, src []entity.MedicationEntity) []entity.MedicationEntity {
	for _, e := range src {
		key := strings.ToLower(e.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, e)
		if len(dst) >= maxEntities {
			break
		}
	}
	return dst
}

func parseDosageAnchored(lines []string) []entity.MedicationEntity {
	var result []entity.MedicationEntity
	for _, line := range lines {
		for _, m := range dosagePattern.FindAllStringSubmatch(line, -1) {
			name := cleanName(m[1])
			if name == "" {
				continue
			}
			result = append(result, entity.MedicationEntity{
				Name:   name,
				Dosage: m[2] + " " + normalizeUnit(m[3]),
				Timing: deriveTiming(line),
			})
		}
	}
	return result
}

func parseAbbrevAnchored(lines []string) []entity.MedicationEntity {
	var result []entity.MedicationEntity
	for _, line := range lines {
		for _, m := range abbrevPattern.FindAllStringSubmatch(line, -1) {
			name := cleanName(m[1])
			if name == "" {
				continue
			}
			dosage := defaultDosage
			if m[2] != "" {
				dosage = m[2] + " " + normalizeUnit(m[3])
			}
			result = append(result, entity.MedicationEntity{
				Name:   name,
				Dosage: dosage,
				Timing: deriveTiming(line),
			})
		}
	}
	return result
}

func parseCapitalized(lines []string) []entity.MedicationEntity {
	var result []entity.MedicationEntity
	for _, line := range lines {
		// Lines carrying report structure ("Dr ...", "Dosage Instructions")
		// are skipped wholesale; capitalized runs on them are never names.
		if containsStructuralWord(line) {
			continue
		}
		for _, m := range capitalizedPattern.FindAllString(line, -1) {
			name := cleanName(m)
			if name == "" {
				continue
			}
			result = append(result, entity.MedicationEntity{
				Name:   name,
				Dosage: defaultDosage,
				Timing: deriveTiming(line),
			})
		}
	}
	return result
}

// cleanName strips leading stop words from a captured word run and validates
// the remainder against the length bounds.
func cleanName(raw string) string {
	words := strings.Fields(strings.TrimSpace(raw))
	for len(words) > 0 {
		if _, stop := stopWords[strings.ToLower(words[0])]; stop {
			words = words[1:]
			continue
		}
		break
	}
	if len(words) == 0 {
		return ""
	}

	last := strings.ToLower(words[len(words)-1])
	if _, stop := stopWords[last]; stop {
		return ""
	}

	name := strings.Join(words, " ")
	if len(name) < minNameLength || len(name) >= maxNameLength {
		return ""
	}
	return name
}

func containsStructuralWord(line string) bool {
	for _, word := range strings.Fields(line) {
		if _, ok := structuralWords[strings.ToLower(strings.Trim(word, ".:,"))]; ok {
			return true
		}
	}
	return false
}

func normalizeUnit(unit string) string {
	if strings.EqualFold(unit, "iu") {
		return "IU"
	}
	return strings.ToLower(unit)
}

func deriveTiming(line string) entity.MedicationTiming {
	if schedulePattern.MatchString(line) {
		return entity.TimingAsPerSchedule
	}

	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "morning") || strings.Contains(lower, "breakfast"):
		return entity.TimingMorning
	case strings.Contains(lower, "afternoon") || strings.Contains(lower, "lunch"):
		return entity.TimingAfternoon
	case strings.Contains(lower, "evening") || strings.Contains(lower, "dinner") || strings.Contains(lower, "night"):
		return entity.TimingNight
	default:
		return entity.TimingAsDirected
	}
}
