package traindata

import (
	"encoding/hex"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// Minimum number of examples Validate expects per intent and entity type
// before it stops warning.
const (
	MinExamplesPerIntent = 2
	MinExamplesPerEntity = 2
)

// TrainingData holds the normalized contents of one or more training data
// files.
type TrainingData struct {
	Examples       []Example      `json:"examples"`
	EntitySynonyms SynonymTable   `json:"entitySynonyms"`
	RegexFeatures  []RegexFeature `json:"regexFeatures"`
	LookupTables   []LookupTable  `json:"lookupTables"`
}

// NewTrainingData bundles the given parts, trimming whitespace from intent
// annotations.
func NewTrainingData(examples []Example, synonyms SynonymTable, regexes []RegexFeature, lookups []LookupTable) *TrainingData {
	for i := range examples {
		examples[i].Intent = strings.TrimSpace(examples[i].Intent)
	}
	if synonyms == nil {
		synonyms = SynonymTable{}
	}
	return &TrainingData{
		Examples:       examples,
		EntitySynonyms: synonyms,
		RegexFeatures:  regexes,
		LookupTables:   lookups,
	}
}

// Merge combines the receiver with the given data sets into a new
// TrainingData, leaving all inputs untouched. Synonym tables are folded
// left to right; remapping a surface form to a different value warns
// through CheckDuplicateSynonym before overwriting.
func (td *TrainingData) Merge(logger *log.Logger, others ...*TrainingData) *TrainingData {
	merged := &TrainingData{
		Examples:       cloneExamples(td.Examples),
		EntitySynonyms: td.EntitySynonyms.Clone(),
		RegexFeatures:  append([]RegexFeature(nil), td.RegexFeatures...),
		LookupTables:   cloneLookupTables(td.LookupTables),
	}
	if merged.EntitySynonyms == nil {
		merged.EntitySynonyms = SynonymTable{}
	}
	for _, other := range others {
		if other == nil {
			continue
		}
		merged.Examples = append(merged.Examples, cloneExamples(other.Examples)...)
		merged.RegexFeatures = append(merged.RegexFeatures, other.RegexFeatures...)
		merged.LookupTables = append(merged.LookupTables, cloneLookupTables(other.LookupTables)...)

		texts := make([]string, 0, len(other.EntitySynonyms))
		for text := range other.EntitySynonyms {
			texts = append(texts, text)
		}
		sort.Strings(texts)
		for _, text := range texts {
			CheckDuplicateSynonym(merged.EntitySynonyms, text, other.EntitySynonyms[text], "merging training data", logger)
			merged.EntitySynonyms[text] = other.EntitySynonyms[text]
		}
	}
	return merged
}

// Validate reports data quality problems without failing. Intents and
// entity types backed by fewer examples than the minimum produce one
// warning each.
func (td *TrainingData) Validate(logger *log.Logger) {
	td.ValidateThresholds(logger, MinExamplesPerIntent, MinExamplesPerEntity)
}

// ValidateThresholds is Validate with caller supplied minimums.
func (td *TrainingData) ValidateThresholds(logger *log.Logger, minPerIntent, minPerEntity int) {
	if logger == nil {
		return
	}
	perIntent := td.ExamplesPerIntent()
	for _, intent := range sortedKeys(perIntent) {
		if count := perIntent[intent]; count < minPerIntent {
			logger.Printf("Intent '%s' has only %d training examples! Minimum is %d.", intent, count, minPerIntent)
		}
	}
	perEntity := td.ExamplesPerEntity()
	for _, entityType := range sortedKeys(perEntity) {
		if count := perEntity[entityType]; count < minPerEntity {
			logger.Printf("Entity '%s' has only %d training examples! Minimum is %d.", entityType, count, minPerEntity)
		}
	}
}

// Intents returns the distinct intent names, sorted.
func (td *TrainingData) Intents() []string {
	return sortedKeys(td.ExamplesPerIntent())
}

// EntityTypes returns the distinct entity type names, sorted.
func (td *TrainingData) EntityTypes() []string {
	return sortedKeys(td.ExamplesPerEntity())
}

// ExamplesPerIntent counts examples by intent.
func (td *TrainingData) ExamplesPerIntent() map[string]int {
	out := make(map[string]int)
	for _, example := range td.Examples {
		if example.Intent == "" {
			continue
		}
		out[example.Intent]++
	}
	return out
}

// ExamplesPerEntity counts entity annotations by entity type.
func (td *TrainingData) ExamplesPerEntity() map[string]int {
	out := make(map[string]int)
	for _, example := range td.Examples {
		for _, entity := range example.Entities {
			if entity.Type == "" {
				continue
			}
			out[entity.Type]++
		}
	}
	return out
}

// IsEmpty reports whether the data carries no examples, synonyms, regex
// features or lookup tables.
func (td *TrainingData) IsEmpty() bool {
	return len(td.Examples) == 0 && len(td.EntitySynonyms) == 0 &&
		len(td.RegexFeatures) == 0 && len(td.LookupTables) == 0
}

// Fingerprint returns a stable BLAKE3 digest over the canonical JSON form
// of the data. Example order is preserved, so the digest changes when files
// are reordered but is identical across repeated loads of the same files.
func (td *TrainingData) Fingerprint() string {
	canonical, _ := json.Marshal(td)
	sum := blake3.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

func cloneExamples(examples []Example) []Example {
	out := make([]Example, len(examples))
	for i, example := range examples {
		out[i] = example.Clone()
	}
	return out
}

func cloneLookupTables(tables []LookupTable) []LookupTable {
	out := make([]LookupTable, len(tables))
	for i, table := range tables {
		out[i] = table
		if table.Elements != nil {
			out[i].Elements = append([]string(nil), table.Elements...)
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
