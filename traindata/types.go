package traindata

import "encoding/json"

// FormatTag identifies the on-disk format of a training data resource.
type FormatTag string

const (
	// FormatMarkdown marks files using the markdown training data layout.
	FormatMarkdown FormatTag = "md"
	// FormatJSON marks JSON training data when no dialect was recognized.
	FormatJSON FormatTag = "json"
	// FormatUnknown marks files whose format could not be guessed.
	FormatUnknown FormatTag = "unk"
)

// JSON dialect tags reported by format guessing.
const (
	FormatRasa               FormatTag = "rasa_nlu"
	FormatWit                FormatTag = "wit"
	FormatLuis               FormatTag = "luis"
	FormatDialogflowAgent    FormatTag = "dialogflow_agent"
	FormatDialogflowPackage  FormatTag = "dialogflow_package"
	FormatDialogflowIntent   FormatTag = "dialogflow_intent"
	FormatDialogflowEntities FormatTag = "dialogflow_entities"
	FormatDialogflowSays     FormatTag = "dialogflow_intent_examples"
	FormatDialogflowEntries  FormatTag = "dialogflow_entity_entries"
)

// Entity represents a labelled span inside an example text. Start and End
// are rune offsets into the plain text, End exclusive.
type Entity struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Value     string `json:"value"`
	Type      string `json:"entity"`
	Extractor string `json:"extractor,omitempty"`
}

// Example represents a single annotated training utterance.
type Example struct {
	Text     string   `json:"text"`
	Intent   string   `json:"intent,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

// Clone creates a deep copy of the example so callers can mutate safely.
func (e Example) Clone() Example {
	out := e
	if e.Entities != nil {
		out.Entities = append([]Entity(nil), e.Entities...)
	}
	return out
}

// SynonymDeclaration groups a canonical value with the surface forms that
// should resolve to it.
type SynonymDeclaration struct {
	Value    string   `json:"value"`
	Synonyms []string `json:"synonyms"`
}

// RegexFeature names a regular expression that hints at intents or entities.
type RegexFeature struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// LookupTable carries a named phrase list used for entity matching. Either
// Elements holds the phrases inline or File points at an external phrase
// file.
type LookupTable struct {
	Name     string
	Elements []string
	File     string
}

// MarshalJSON keeps the wire layout where the elements key holds either the
// inline phrase list or the external file reference.
func (l LookupTable) MarshalJSON() ([]byte, error) {
	if l.File != "" && len(l.Elements) == 0 {
		return json.Marshal(struct {
			Name     string `json:"name"`
			Elements string `json:"elements"`
		}{l.Name, l.File})
	}
	return json.Marshal(struct {
		Name     string   `json:"name"`
		Elements []string `json:"elements"`
	}{l.Name, l.Elements})
}

// UnmarshalJSON accepts both shapes of the elements key, restoring either
// the inline phrase list or the file reference.
func (l *LookupTable) UnmarshalJSON(data []byte) error {
	var head struct {
		Name     string          `json:"name"`
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	l.Name = head.Name
	l.Elements = nil
	l.File = ""
	if len(head.Elements) == 0 {
		return nil
	}
	if head.Elements[0] == '"' {
		return json.Unmarshal(head.Elements, &l.File)
	}
	return json.Unmarshal(head.Elements, &l.Elements)
}
