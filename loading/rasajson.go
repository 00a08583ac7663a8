package loading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"nlutools/traindata/traindata"
)

// rasaEnvelope is the on-disk layout of the rasa NLU JSON dialect. The
// deprecated intent and entity example sections are read but never written.
type rasaEnvelope struct {
	Data *rasaSections `json:"rasa_nlu_data"`
}

type rasaSections struct {
	CommonExamples []traindata.Example            `json:"common_examples"`
	IntentExamples []traindata.Example            `json:"intent_examples,omitempty"`
	EntityExamples []traindata.Example            `json:"entity_examples,omitempty"`
	RegexFeatures  []traindata.RegexFeature       `json:"regex_features"`
	LookupTables   []traindata.LookupTable        `json:"lookup_tables"`
	EntitySynonyms []traindata.SynonymDeclaration `json:"entity_synonyms"`
}

// ReadRasaJSON parses training data stored in the rasa NLU JSON dialect.
func ReadRasaJSON(data []byte, logger *log.Logger) (*traindata.TrainingData, error) {
	var envelope rasaEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode rasa json: %w", err)
	}
	if envelope.Data == nil {
		return nil, errors.New("missing rasa_nlu_data section")
	}
	sections := envelope.Data
	if logger != nil && (len(sections.IntentExamples) > 0 || len(sections.EntityExamples) > 0) {
		logger.Print("DEPRECATION warning: your rasa data contains 'intent_examples' or 'entity_examples' which will be removed in the future. Consider putting all your examples into the 'common_examples' section.")
	}
	examples := make([]traindata.Example, 0, len(sections.CommonExamples)+len(sections.IntentExamples)+len(sections.EntityExamples))
	examples = append(examples, sections.CommonExamples...)
	examples = append(examples, sections.IntentExamples...)
	examples = append(examples, sections.EntityExamples...)
	synonyms := traindata.TransformEntitySynonyms(sections.EntitySynonyms, nil)
	return traindata.NewTrainingData(examples, synonyms, sections.RegexFeatures, sections.LookupTables), nil
}

// WriteRasaJSON renders the data in the rasa NLU JSON dialect. Identity
// synonym mappings are dropped from the output.
func WriteRasaJSON(td *traindata.TrainingData) ([]byte, error) {
	sections := &rasaSections{
		CommonExamples: td.Examples,
		RegexFeatures:  td.RegexFeatures,
		LookupTables:   td.LookupTables,
		EntitySynonyms: td.EntitySynonyms.Declarations(),
	}
	if sections.CommonExamples == nil {
		sections.CommonExamples = []traindata.Example{}
	}
	if sections.RegexFeatures == nil {
		sections.RegexFeatures = []traindata.RegexFeature{}
	}
	if sections.LookupTables == nil {
		sections.LookupTables = []traindata.LookupTable{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rasaEnvelope{Data: sections}); err != nil {
		return nil, fmt.Errorf("encode rasa json: %w", err)
	}
	return buf.Bytes(), nil
}
