package parse

// Curated word tables for the parsing tiers. Loaded once at init; swap here,
// not inline in the matching code.

// stopWords are directional/temporal words that show up immediately before a
// dose ("take 500 mg", "after 2 tablets") and must never be accepted as a
// medication name.
var stopWords = map[string]struct{}{
	"for":    {},
	"after":  {},
	"before": {},
	"with":   {},
	"take":   {},
	"taken":  {},
	"use":    {},
	"apply":  {},
	"daily":  {},
	"twice":  {},
	"thrice": {},
	"once":   {},
	"every":  {},
	"each":   {},
	"per":    {},
	"day":    {},
	"days":   {},
	"week":   {},
	"weeks":  {},
	"month":  {},
	"dose":   {},
	"doses":  {},
	"food":   {},
	"meals":  {},
	"meal":   {},
	"water":  {},
	"and":    {},
	"the":    {},
	"then":   {},
	"about":  {},
	"only":   {},
	"total":  {},
}

// structuralWords are report-layout words excluded by the capitalization
// fallback tier.
var structuralWords = map[string]struct{}{
	"dr":           {},
	"rx":           {},
	"dosage":       {},
	"instructions": {},
	"instruction":  {},
	"patient":      {},
	"name":         {},
	"age":          {},
	"date":         {},
	"gender":       {},
	"address":      {},
	"hospital":     {},
	"clinic":       {},
	"doctor":       {},
	"signature":    {},
	"diagnosis":    {},
	"medicine":     {},
	"medicines":    {},
	"medication":   {},
	"prescription": {},
	"advice":       {},
	"review":       {},
	"next":         {},
	"visit":        {},
}
