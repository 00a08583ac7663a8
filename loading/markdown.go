package loading

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"nlutools/traindata/traindata"
)

const (
	sectionIntent  = "intent"
	sectionSynonym = "synonym"
	sectionRegex   = "regex"
	sectionLookup  = "lookup"
)

var (
	sectionHeaderRegex = regexp.MustCompile(`##\s*(.+?):(.+)`)
	listItemRegex      = regexp.MustCompile(`^\s*[-*+]\s*(.+)`)
	commentRegex       = regexp.MustCompile(`<!--[\s\S]*?--!*>`)
	entityMarkupRegex  = regexp.MustCompile(`\[([^\]]+)\]\(([^:)]*?)(?::([^)]+))?\)`)
)

type markdownParser struct {
	logger   *log.Logger
	section  string
	title    string
	examples []traindata.Example
	synonyms traindata.SynonymTable
	regexes  []traindata.RegexFeature
	lookups  []traindata.LookupTable
}

// ReadMarkdown parses the markdown training data dialect. Sections are
// introduced by "## intent:name" style headers, entries by markdown list
// items. Synonym conflicts are reported through logger.
func ReadMarkdown(data []byte, logger *log.Logger) (*traindata.TrainingData, error) {
	p := &markdownParser{logger: logger, synonyms: traindata.SynonymTable{}}
	content := commentRegex.ReplaceAllString(string(data), "")
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if match := sectionHeaderRegex.FindStringSubmatch(line); match != nil {
			if err := p.setSection(match[1], match[2]); err != nil {
				return nil, err
			}
			continue
		}
		p.parseItem(line)
		p.collectLookupFile(line)
	}
	return traindata.NewTrainingData(p.examples, p.synonyms, p.regexes, p.lookups), nil
}

func (p *markdownParser) setSection(section, title string) error {
	switch section {
	case sectionIntent, sectionSynonym, sectionRegex, sectionLookup:
	default:
		return fmt.Errorf("markdown section %q is not one of intent, synonym, regex, lookup", section)
	}
	p.section = section
	p.title = title
	return nil
}

func (p *markdownParser) parseItem(line string) {
	match := listItemRegex.FindStringSubmatch(line)
	if match == nil {
		return
	}
	item := match[1]
	switch p.section {
	case sectionIntent:
		p.examples = append(p.examples, p.parseExample(item))
	case sectionSynonym:
		p.addSynonym(item, p.title)
	case sectionRegex:
		p.regexes = append(p.regexes, traindata.RegexFeature{Name: p.title, Pattern: item})
	case sectionLookup:
		p.addLookupElement(item)
	}
}

// collectLookupFile treats a bare line inside a lookup section as a
// reference to an external phrase file.
func (p *markdownParser) collectLookupFile(line string) {
	if p.section != sectionLookup || line == "" {
		return
	}
	if strings.IndexByte("-*+", line[0]) >= 0 {
		return
	}
	p.lookups = append(p.lookups, traindata.LookupTable{Name: p.title, File: line})
}

func (p *markdownParser) parseExample(markup string) traindata.Example {
	plain, entities := parseEntityMarkup(markup)
	runes := []rune(plain)
	for _, entity := range entities {
		surface := string(runes[entity.Start:entity.End])
		if surface != entity.Value {
			p.addSynonym(surface, entity.Value)
		}
	}
	return traindata.Example{Text: plain, Intent: p.title, Entities: entities}
}

func (p *markdownParser) addSynonym(text, value string) {
	traindata.CheckDuplicateSynonym(p.synonyms, text, value, "reading markdown", p.logger)
	p.synonyms[text] = value
}

func (p *markdownParser) addLookupElement(item string) {
	for i := range p.lookups {
		if p.lookups[i].Name == p.title {
			p.lookups[i].Elements = append(p.lookups[i].Elements, item)
			return
		}
	}
	p.lookups = append(p.lookups, traindata.LookupTable{Name: p.title, Elements: []string{item}})
}

// parseEntityMarkup strips [text](type) and [text](type:value) annotations
// from markup, returning the plain text and the entities with rune offsets
// into it.
func parseEntityMarkup(markup string) (string, []traindata.Entity) {
	matches := entityMarkupRegex.FindAllStringSubmatchIndex(markup, -1)
	if len(matches) == 0 {
		return markup, nil
	}
	var plain strings.Builder
	entities := make([]traindata.Entity, 0, len(matches))
	pos := 0
	runeOffset := 0
	for _, match := range matches {
		lead := markup[pos:match[0]]
		plain.WriteString(lead)
		runeOffset += utf8.RuneCountInString(lead)

		entityText := markup[match[2]:match[3]]
		entityType := markup[match[4]:match[5]]
		value := entityText
		if match[6] >= 0 {
			value = markup[match[6]:match[7]]
		}
		plain.WriteString(entityText)
		start := runeOffset
		runeOffset += utf8.RuneCountInString(entityText)
		entities = append(entities, traindata.Entity{Start: start, End: runeOffset, Value: value, Type: entityType})
		pos = match[1]
	}
	plain.WriteString(markup[pos:])
	return plain.String(), entities
}

// WriteMarkdown renders the data in the markdown training data layout.
// Entities produced by pretrained extractors are filtered from the dump and
// reported through logger.
func WriteMarkdown(td *traindata.TrainingData, logger *log.Logger) []byte {
	var b strings.Builder
	writeExamplesMarkdown(&b, td, logger)
	writeSynonymsMarkdown(&b, td)
	writeRegexFeaturesMarkdown(&b, td)
	writeLookupTablesMarkdown(&b, td)
	return []byte(b.String())
}

func writeExamplesMarkdown(b *strings.Builder, td *traindata.TrainingData, logger *log.Logger) {
	var order []string
	grouped := make(map[string][]traindata.Example)
	for _, example := range td.Examples {
		clean := example.Clone()
		traindata.RemoveUntrainableEntities(&clean, logger)
		if _, ok := grouped[clean.Intent]; !ok {
			order = append(order, clean.Intent)
		}
		grouped[clean.Intent] = append(grouped[clean.Intent], clean)
	}
	for i, intent := range order {
		writeSectionHeader(b, sectionIntent, intent, i > 0)
		for _, example := range grouped[intent] {
			fmt.Fprintf(b, "- %s\n", markdownMessage(example))
		}
	}
}

func writeSynonymsMarkdown(b *strings.Builder, td *traindata.TrainingData) {
	type mapping struct{ text, value string }
	mappings := make([]mapping, 0, len(td.EntitySynonyms))
	for text, value := range td.EntitySynonyms {
		mappings = append(mappings, mapping{text, value})
	}
	sort.Slice(mappings, func(i, j int) bool {
		if mappings[i].value != mappings[j].value {
			return mappings[i].value < mappings[j].value
		}
		return mappings[i].text < mappings[j].text
	})
	for i, m := range mappings {
		if i == 0 || mappings[i-1].value != m.value {
			writeSectionHeader(b, sectionSynonym, m.value, true)
		}
		fmt.Fprintf(b, "- %s\n", m.text)
	}
}

func writeRegexFeaturesMarkdown(b *strings.Builder, td *traindata.TrainingData) {
	for _, feature := range td.RegexFeatures {
		writeSectionHeader(b, sectionRegex, feature.Name, true)
		fmt.Fprintf(b, "- %s\n", feature.Pattern)
	}
}

func writeLookupTablesMarkdown(b *strings.Builder, td *traindata.TrainingData) {
	for _, table := range td.LookupTables {
		writeSectionHeader(b, sectionLookup, table.Name, true)
		if table.File != "" && len(table.Elements) == 0 {
			fmt.Fprintf(b, "  %s\n", table.File)
			continue
		}
		for _, element := range table.Elements {
			fmt.Fprintf(b, "- %s\n", element)
		}
	}
}

func writeSectionHeader(b *strings.Builder, section, title string, prependNewline bool) {
	if prependNewline {
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "## %s:%s\n", section, title)
}

// markdownMessage re-applies entity markup onto the plain example text.
func markdownMessage(example traindata.Example) string {
	entities := append([]traindata.Entity(nil), example.Entities...)
	sort.SliceStable(entities, func(i, j int) bool { return entities[i].Start < entities[j].Start })
	runes := []rune(example.Text)
	var b strings.Builder
	pos := 0
	for _, entity := range entities {
		start, end := clampSpan(len(runes), entity.Start, entity.End)
		if start < pos {
			continue
		}
		b.WriteString(string(runes[pos:start]))
		b.WriteString(markdownEntity(string(runes[start:end]), entity))
		pos = end
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

func markdownEntity(entityText string, entity traindata.Entity) string {
	if entityText != entity.Value {
		return fmt.Sprintf("[%s](%s:%s)", entityText, entity.Type, entity.Value)
	}
	return fmt.Sprintf("[%s](%s)", entityText, entity.Type)
}

func clampSpan(length, start, end int) (int, int) {
	start = min(max(start, 0), length)
	end = min(max(end, start), length)
	return start, end
}
