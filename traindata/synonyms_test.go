package traindata

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestTransformEntitySynonymsFreshTable(t *testing.T) {
	decls := []SynonymDeclaration{
		{Value: "new york", Synonyms: []string{"nyc", "big apple"}},
	}
	table := TransformEntitySynonyms(decls, nil)
	if got, want := len(table), 2; got != want {
		t.Fatalf("table size = %d, want %d", got, want)
	}
	if got := table["nyc"]; got != "new york" {
		t.Errorf("table[nyc] = %q, want %q", got, "new york")
	}
	if got := table["big apple"]; got != "new york" {
		t.Errorf("table[big apple] = %q, want %q", got, "new york")
	}
}

func TestTransformEntitySynonymsMutatesAccumulator(t *testing.T) {
	known := SynonymTable{"sf": "san francisco"}
	decls := []SynonymDeclaration{{Value: "los angeles", Synonyms: []string{"la"}}}
	got := TransformEntitySynonyms(decls, known)
	if len(known) != 2 {
		t.Fatalf("accumulator size = %d, want 2", len(known))
	}
	// The returned table must be the accumulator itself.
	got["marker"] = "x"
	if known["marker"] != "x" {
		t.Errorf("returned table is not the supplied accumulator")
	}
}

func TestTransformEntitySynonymsSkipsIncomplete(t *testing.T) {
	decls := []SynonymDeclaration{
		{Value: "kept", Synonyms: []string{"k"}},
		{Value: "", Synonyms: []string{"ignored"}},
		{Value: "no surface forms"},
	}
	table := TransformEntitySynonyms(decls, nil)
	if len(table) != 1 {
		t.Fatalf("table = %v, want single entry", table)
	}
	if table["k"] != "kept" {
		t.Errorf("table[k] = %q, want %q", table["k"], "kept")
	}
}

func TestTransformEntitySynonymsLaterDeclarationWins(t *testing.T) {
	decls := []SynonymDeclaration{
		{Value: "first", Synonyms: []string{"term"}},
		{Value: "second", Synonyms: []string{"term"}},
	}
	table := TransformEntitySynonyms(decls, nil)
	if table["term"] != "second" {
		t.Errorf("table[term] = %q, want %q", table["term"], "second")
	}
}

func TestCheckDuplicateSynonymWarnsOnConflict(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	table := SynonymTable{"nyc": "new york"}

	CheckDuplicateSynonym(table, "nyc", "new york city", "reading markdown", logger)

	want := "Found inconsistent entity synonyms while reading markdown, overwriting nyc->new york with nyc->new york city during merge."
	if got := strings.TrimSpace(buf.String()); got != want {
		t.Errorf("warning = %q, want %q", got, want)
	}
	if table["nyc"] != "new york" {
		t.Errorf("table was modified: %v", table)
	}
}

func TestCheckDuplicateSynonymQuietCases(t *testing.T) {
	table := SynonymTable{"nyc": "new york"}
	cases := []struct {
		name string
		text string
		syn  string
	}{
		{"absent surface form", "la", "los angeles"},
		{"same value", "nyc", "new york"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			CheckDuplicateSynonym(table, tc.text, tc.syn, "merging training data", log.New(&buf, "", 0))
			if buf.Len() != 0 {
				t.Errorf("unexpected warning: %q", buf.String())
			}
		})
	}
}

func TestCheckDuplicateSynonymNilLogger(t *testing.T) {
	table := SynonymTable{"nyc": "new york"}
	CheckDuplicateSynonym(table, "nyc", "other", "merging training data", nil)
	if table["nyc"] != "new york" {
		t.Errorf("table was modified: %v", table)
	}
}

func TestSynonymTableFoldedResolve(t *testing.T) {
	table := SynonymTable{"NYC": "New York City", "ＬＡ": "Los Angeles"}
	folded := table.Folded()
	if got, ok := folded.Resolve("nyc"); !ok || got != "New York City" {
		t.Errorf("Resolve(nyc) = %q, %v; want New York City", got, ok)
	}
	if got, ok := folded.Resolve("la"); !ok || got != "Los Angeles" {
		t.Errorf("Resolve(la) = %q, %v; want Los Angeles", got, ok)
	}
	if _, ok := folded.Resolve("sf"); ok {
		t.Errorf("Resolve(sf) unexpectedly succeeded")
	}
}

func TestSynonymTableDeclarations(t *testing.T) {
	table := SynonymTable{
		"nyc":       "new york",
		"big apple": "new york",
		"la":        "los angeles",
		"new york":  "new york",
	}
	decls := table.Declarations()
	if len(decls) != 2 {
		t.Fatalf("declarations = %v, want 2 entries", decls)
	}
	if decls[0].Value != "los angeles" || decls[1].Value != "new york" {
		t.Errorf("values not sorted: %v", decls)
	}
	if got, want := strings.Join(decls[1].Synonyms, ","), "big apple,nyc"; got != want {
		t.Errorf("synonyms = %q, want %q", got, want)
	}
}

func TestApplySynonyms(t *testing.T) {
	examples := []Example{{
		Text:     "show me flights to NYC",
		Intent:   "search_flight",
		Entities: []Entity{{Start: 19, End: 22, Value: "NYC", Type: "city"}},
	}}
	table := SynonymTable{"nyc": "new york"}
	var buf bytes.Buffer
	ApplySynonyms(examples, table, log.New(&buf, "", 0))
	if got := examples[0].Entities[0].Value; got != "new york" {
		t.Errorf("entity value = %q, want %q", got, "new york")
	}
	if !strings.Contains(buf.String(), `"new york"`) {
		t.Errorf("expected a replacement log line, got %q", buf.String())
	}
}

func TestApplySynonymsEmptyTable(t *testing.T) {
	examples := []Example{{
		Text:     "hi",
		Entities: []Entity{{Start: 0, End: 2, Value: "hi", Type: "word"}},
	}}
	ApplySynonyms(examples, nil, nil)
	if examples[0].Entities[0].Value != "hi" {
		t.Errorf("entity value changed with empty table")
	}
}
