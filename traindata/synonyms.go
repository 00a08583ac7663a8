package traindata

import (
	"log"
	"sort"
)

// SynonymTable maps an entity surface form to its canonical value.
type SynonymTable map[string]string

// TransformEntitySynonyms folds synonym declarations into a surface->value
// table. When known is non-nil it is extended in place and returned,
// otherwise a fresh table is allocated. Declarations without a value or
// without surface forms are skipped.
func TransformEntitySynonyms(declarations []SynonymDeclaration, known SynonymTable) SynonymTable {
	table := known
	if table == nil {
		table = SynonymTable{}
	}
	for _, decl := range declarations {
		if decl.Value == "" || len(decl.Synonyms) == 0 {
			continue
		}
		for _, synonym := range decl.Synonyms {
			table[synonym] = decl.Value
		}
	}
	return table
}

// CheckDuplicateSynonym warns when a surface form is about to be remapped to
// a different canonical value. The table is never modified. The context
// names the running operation for the log line, e.g. "reading markdown".
func CheckDuplicateSynonym(table SynonymTable, text, syn, context string, logger *log.Logger) {
	if logger == nil {
		return
	}
	if existing, ok := table[text]; ok && existing != syn {
		logger.Printf("Found inconsistent entity synonyms while %s, overwriting %s->%s with %s->%s during merge.",
			context, text, existing, text, syn)
	}
}

// Clone returns a copy of the table.
func (t SynonymTable) Clone() SynonymTable {
	if t == nil {
		return nil
	}
	out := make(SynonymTable, len(t))
	for text, value := range t {
		out[text] = value
	}
	return out
}

// Folded returns a copy of the table keyed by NormalizeKey so lookups are
// insensitive to casing and width differences. When two surface forms fold
// to the same key the lexicographically later one wins.
func (t SynonymTable) Folded() SynonymTable {
	texts := make([]string, 0, len(t))
	for text := range t {
		texts = append(texts, text)
	}
	sort.Strings(texts)
	out := make(SynonymTable, len(t))
	for _, text := range texts {
		key := NormalizeKey(text)
		if key == "" {
			continue
		}
		out[key] = t[text]
	}
	return out
}

// Resolve looks up the canonical value for a surface form. The exact form
// wins; otherwise the folded form is tried, which resolves case and width
// variants against tables produced by Folded.
func (t SynonymTable) Resolve(text string) (string, bool) {
	if value, ok := t[text]; ok {
		return value, true
	}
	if value, ok := t[NormalizeKey(text)]; ok {
		return value, true
	}
	return "", false
}

// Declarations inverts the table into value->synonyms declarations sorted
// for stable output. Identity mappings are dropped.
func (t SynonymTable) Declarations() []SynonymDeclaration {
	grouped := make(map[string][]string)
	for text, value := range t {
		if text == value {
			continue
		}
		grouped[value] = append(grouped[value], text)
	}
	values := make([]string, 0, len(grouped))
	for value := range grouped {
		values = append(values, value)
	}
	sort.Strings(values)
	out := make([]SynonymDeclaration, 0, len(values))
	for _, value := range values {
		synonyms := grouped[value]
		sort.Strings(synonyms)
		out = append(out, SynonymDeclaration{Value: value, Synonyms: synonyms})
	}
	return out
}

// ApplySynonyms rewrites entity values through the table so downstream
// consumers only see canonical values. One log line is written per
// replacement.
func ApplySynonyms(examples []Example, table SynonymTable, logger *log.Logger) {
	if len(table) == 0 {
		return
	}
	folded := table.Folded()
	for i := range examples {
		entities := examples[i].Entities
		for j := range entities {
			replacement, ok := folded.Resolve(entities[j].Value)
			if !ok || replacement == entities[j].Value {
				continue
			}
			if logger != nil {
				logger.Printf("Replacing entity value %q with synonym %q", entities[j].Value, replacement)
			}
			entities[j].Value = replacement
		}
	}
}
