package traindata

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText cleans a phrase for storage: NFKC form with control
// characters stripped and surrounding whitespace trimmed. Newlines and
// tabs survive so multi-token phrases keep their separators.
func NormalizeText(text string) string {
	var b strings.Builder
	for _, r := range norm.NFKC.String(text) {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// NormalizeKey folds text into a lookup key: NFKC form, collapsed
// whitespace, lower case.
func NormalizeKey(text string) string {
	normed := norm.NFKC.String(text)
	fields := strings.Fields(normed)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// NormalizePhrases rewrites lookup table elements and synonym surface
// forms through NormalizeText, dropping phrases that normalize to the
// empty string. Example texts are never touched so entity offsets stay
// valid. When two surface forms normalize to the same text the
// lexicographically later one wins.
func (td *TrainingData) NormalizePhrases() {
	for i := range td.LookupTables {
		table := &td.LookupTables[i]
		if len(table.Elements) == 0 {
			continue
		}
		kept := table.Elements[:0]
		for _, element := range table.Elements {
			if cleaned := NormalizeText(element); cleaned != "" {
				kept = append(kept, cleaned)
			}
		}
		table.Elements = kept
	}
	if len(td.EntitySynonyms) == 0 {
		return
	}
	texts := make([]string, 0, len(td.EntitySynonyms))
	for text := range td.EntitySynonyms {
		texts = append(texts, text)
	}
	sort.Strings(texts)
	cleaned := make(SynonymTable, len(td.EntitySynonyms))
	for _, text := range texts {
		surface := NormalizeText(text)
		if surface == "" {
			continue
		}
		cleaned[surface] = td.EntitySynonyms[text]
	}
	td.EntitySynonyms = cleaned
}
