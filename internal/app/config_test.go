package app

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traindata.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := defaultConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := writeConfig(t, `
excludedExtractors:
  - DucklingHTTPExtractor
  - MyCustomExtractor
minExamplesPerIntent: 5
minExamplesPerEntity: 3
defaultFormat: md
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		ExcludedExtractors:   []string{"DucklingHTTPExtractor", "MyCustomExtractor"},
		MinExamplesPerIntent: 5,
		MinExamplesPerEntity: 3,
		DefaultFormat:        "md",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigSanitizesValues(t *testing.T) {
	path := writeConfig(t, `
minExamplesPerIntent: 0
minExamplesPerEntity: -3
defaultFormat: xml
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got, want := cfg.MinExamplesPerIntent, defaultConfig().MinExamplesPerIntent; got != want {
		t.Errorf("MinExamplesPerIntent = %d, want %d", got, want)
	}
	if got, want := cfg.MinExamplesPerEntity, defaultConfig().MinExamplesPerEntity; got != want {
		t.Errorf("MinExamplesPerEntity = %d, want %d", got, want)
	}
	if got, want := cfg.DefaultFormat, "json"; got != want {
		t.Errorf("DefaultFormat = %q, want %q", got, want)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "defaultFormat: [unclosed")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig succeeded on malformed yaml")
	}
	if !strings.Contains(err.Error(), "decode config") {
		t.Errorf("error = %v, want mention of decode config", err)
	}
}

func TestExtractorSetSkipsBlankNames(t *testing.T) {
	set := extractorSet([]string{" DucklingHTTPExtractor ", "", "   ", "SpacyEntityExtractor"})
	if len(set) != 2 {
		t.Fatalf("len(set) = %d, want 2", len(set))
	}
	for _, name := range []string{"DucklingHTTPExtractor", "SpacyEntityExtractor"} {
		if _, ok := set[name]; !ok {
			t.Errorf("set missing %q", name)
		}
	}
}
