package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"nlutools/traindata/loading"
	"nlutools/traindata/traindata"
)

// Tool runs the training data commands against a loaded configuration.
// Warnings go to the logger, results to the writer.
type Tool struct {
	cfg    Config
	logger *log.Logger
	out    io.Writer
}

// NewTool wires the configuration with the warning logger and the writer
// that receives command results. A nil writer falls back to stdout.
func NewTool(cfg Config, logger *log.Logger, out io.Writer) *Tool {
	if out == nil {
		out = os.Stdout
	}
	return &Tool{cfg: cfg, logger: logger, out: out}
}

// ConvertOptions selects the output format and the optional rewrite
// passes Convert applies before writing.
type ConvertOptions struct {
	Format        string
	ApplySynonyms bool
	NormalizeText bool
}

// Convert loads the resource at path and writes it to outPath. An empty
// Format falls back to the configured default. Entities produced by
// configured extractors are stripped before writing; NormalizeText cleans
// lookup phrases and synonym surface forms, and ApplySynonyms rewrites
// entity values through the synonym table.
func (t *Tool) Convert(path, outPath string, opts ConvertOptions) error {
	td, err := loading.Load(path, t.logger)
	if err != nil {
		return err
	}
	format := opts.Format
	if format == "" {
		format = t.cfg.DefaultFormat
	}
	before := td.Fingerprint()

	if set := extractorSet(t.cfg.ExcludedExtractors); len(set) > 0 {
		for i := range td.Examples {
			traindata.RemoveEntitiesExtractedBy(&td.Examples[i], set, t.logger)
		}
	}
	if opts.NormalizeText {
		td.NormalizePhrases()
	}
	if opts.ApplySynonyms {
		traindata.ApplySynonyms(td.Examples, td.EntitySynonyms, t.logger)
	}

	var data []byte
	switch traindata.FormatTag(format) {
	case traindata.FormatMarkdown:
		data = loading.WriteMarkdown(td, t.logger)
	case traindata.FormatJSON:
		data, err = loading.WriteRasaJSON(td)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err := loading.WriteFile(outPath, data); err != nil {
		return err
	}
	after := td.Fingerprint()

	fmt.Fprintf(t.out, "wrote %s (%s)\n", outPath, format)
	fmt.Fprintf(t.out, "fingerprint before: %s\n", before)
	fmt.Fprintf(t.out, "fingerprint after:  %s\n", after)
	return nil
}

// Validate loads the resource at path and reports data quality warnings
// using the configured thresholds.
func (t *Tool) Validate(path string) error {
	td, err := loading.Load(path, t.logger)
	if err != nil {
		return err
	}
	td.ValidateThresholds(t.logger, t.cfg.MinExamplesPerIntent, t.cfg.MinExamplesPerEntity)
	fmt.Fprintf(t.out, "%d examples, %d intents, %d entity types\n",
		len(td.Examples), len(td.Intents()), len(td.EntityTypes()))
	return nil
}

// Format prints the sniffed format of the resource at path.
func (t *Tool) Format(path string) error {
	tag, err := loading.FileFormat(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.out, tag)
	return nil
}

// Stats prints example, synonym and per-intent counts for the resource at
// path.
func (t *Tool) Stats(path string) error {
	td, err := loading.Load(path, t.logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "examples: %d\n", len(td.Examples))
	fmt.Fprintf(t.out, "synonyms: %d\n", len(td.EntitySynonyms))
	fmt.Fprintf(t.out, "regex features: %d\n", len(td.RegexFeatures))
	fmt.Fprintf(t.out, "lookup tables: %d\n", len(td.LookupTables))

	perIntent := td.ExamplesPerIntent()
	fmt.Fprintf(t.out, "intents: %d\n", len(perIntent))
	for _, intent := range td.Intents() {
		fmt.Fprintf(t.out, "  %s: %d\n", intent, perIntent[intent])
	}
	perEntity := td.ExamplesPerEntity()
	fmt.Fprintf(t.out, "entity types: %d\n", len(perEntity))
	for _, entityType := range td.EntityTypes() {
		fmt.Fprintf(t.out, "  %s: %d\n", entityType, perEntity[entityType])
	}
	fmt.Fprintf(t.out, "fingerprint: %s\n", td.Fingerprint())
	return nil
}
