package traindata

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
)

// PretrainedExtractors names the annotators whose entities come from
// pretrained models rather than from the training data itself. Their output
// cannot be learned from again and is dropped before markdown dumps.
var PretrainedExtractors = map[string]struct{}{
	"DucklingHTTPExtractor": {},
	"SpacyEntityExtractor":  {},
}

// RemoveUntrainableEntities drops entities produced by pretrained
// extractors from the example, keeping the surviving entities in order.
// One warning is written per dropped entity.
func RemoveUntrainableEntities(example *Example, logger *log.Logger) {
	RemoveEntitiesExtractedBy(example, PretrainedExtractors, logger)
}

// RemoveEntitiesExtractedBy drops entities whose extractor is in the given
// set. The example is modified in place; entities without an extractor are
// always kept.
func RemoveEntitiesExtractedBy(example *Example, extractors map[string]struct{}, logger *log.Logger) {
	if example == nil || len(example.Entities) == 0 {
		// nothing to do
		return
	}
	trainable := make([]Entity, 0, len(example.Entities))
	for _, entity := range example.Entities {
		if _, excluded := extractors[entity.Extractor]; excluded {
			if logger != nil {
				serialized, _ := json.Marshal(entity)
				logger.Printf("Excluding entity '%s' from training data. Entity examples extracted by the following classes are not dumped to training data in markdown format: %s.",
					serialized, backquotedNames(extractors))
			}
			continue
		}
		trainable = append(trainable, entity)
	}
	example.Entities = trainable
}

func backquotedNames(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		names[i] = "`" + name + "`"
	}
	return strings.Join(names, ", ")
}
