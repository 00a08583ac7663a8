package loading

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"nlutools/traindata/traindata"
)

// markdownMarkers identify markdown training data when a file does not hold
// valid JSON.
var markdownMarkers = []string{"## intent:", "## synonym:", "## regex:", "## lookup:"}

// jsonHeuristics map decoded JSON content to a dialect tag. They are tried
// in order and the first match wins.
var jsonHeuristics = []struct {
	tag   traindata.FormatTag
	match func(decoded any, path string) bool
}{
	{traindata.FormatWit, func(decoded any, _ string) bool {
		obj, ok := decoded.(map[string]any)
		if !ok {
			return false
		}
		_, isList := obj["data"].([]any)
		return isList
	}},
	{traindata.FormatLuis, hasKey("luis_schema_version")},
	{traindata.FormatRasa, hasKey("rasa_nlu_data")},
	{traindata.FormatDialogflowAgent, hasKey("supportedLanguages")},
	{traindata.FormatDialogflowPackage, func(decoded any, _ string) bool {
		obj, ok := decoded.(map[string]any)
		if !ok {
			return false
		}
		_, found := obj["version"]
		return found && len(obj) == 1
	}},
	{traindata.FormatDialogflowIntent, hasKey("responses")},
	{traindata.FormatDialogflowEntities, hasKey("isEnum")},
	{traindata.FormatDialogflowSays, hasPathPart("_usersays_")},
	{traindata.FormatDialogflowEntries, hasPathPart("_entries_")},
}

func hasKey(key string) func(any, string) bool {
	return func(decoded any, _ string) bool {
		obj, ok := decoded.(map[string]any)
		if !ok {
			return false
		}
		_, found := obj[key]
		return found
	}
}

func hasPathPart(part string) func(any, string) bool {
	return func(_ any, path string) bool {
		return strings.Contains(path, part)
	}
}

// DefaultGuesser guesses the format of single training data files from
// their content.
type DefaultGuesser struct{}

// GuessFormat reads the file at path and reports its format tag.
func (DefaultGuesser) GuessFormat(path string) (traindata.FormatTag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return guessContent(data, path), nil
}

// guessContent matches valid JSON against the dialect heuristics. Anything
// else is markdown when a section marker appears and unknown otherwise.
func guessContent(data []byte, path string) traindata.FormatTag {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		content := string(data)
		for _, marker := range markdownMarkers {
			if strings.Contains(content, marker) {
				return traindata.FormatMarkdown
			}
		}
		return traindata.FormatUnknown
	}
	for _, heuristic := range jsonHeuristics {
		if heuristic.match(decoded, path) {
			return heuristic.tag
		}
	}
	return traindata.FormatUnknown
}
