// Command traindata-cli converts, validates and inspects NLU training data
// resources in the markdown and rasa JSON dialects.
package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"

	"nlutools/traindata/internal/app"
)

// CLI defines the command-line interface for traindata-cli.
var CLI struct {
	Config string `help:"Path to the tool configuration file" type:"path"`
	Quiet  bool   `short:"q" help:"Suppress warnings"`

	Convert  ConvertCmd  `cmd:"" help:"Convert a training data resource to another format"`
	Validate ValidateCmd `cmd:"" help:"Report data quality problems in a resource"`
	Format   FormatCmd   `cmd:"" help:"Print the detected format of a resource"`
	Stats    StatsCmd    `cmd:"" help:"Print counts and the fingerprint of a resource"`
}

// ConvertCmd rewrites a training data resource in another format.
type ConvertCmd struct {
	Path          string `arg:"" help:"Training data file or directory" type:"path"`
	Out           string `required:"" help:"Output file path" type:"path"`
	Format        string `help:"Output format, md or json (default: configured format)"`
	ApplySynonyms bool   `name:"apply-synonyms" help:"Rewrite entity values through the synonym table"`
	NormalizeText bool   `name:"normalize-text" help:"Clean lookup phrases and synonym surface forms"`
}

func (c *ConvertCmd) Run(tool *app.Tool) error {
	return tool.Convert(c.Path, c.Out, app.ConvertOptions{
		Format:        c.Format,
		ApplySynonyms: c.ApplySynonyms,
		NormalizeText: c.NormalizeText,
	})
}

// ValidateCmd reports intents and entity types with too few examples.
type ValidateCmd struct {
	Path string `arg:"" help:"Training data file or directory" type:"path"`
}

func (c *ValidateCmd) Run(tool *app.Tool) error {
	return tool.Validate(c.Path)
}

// FormatCmd prints the sniffed resource format.
type FormatCmd struct {
	Path string `arg:"" help:"Training data file or directory" type:"path"`
}

func (c *FormatCmd) Run(tool *app.Tool) error {
	return tool.Format(c.Path)
}

// StatsCmd prints example, intent, entity and synonym counts.
type StatsCmd struct {
	Path string `arg:"" help:"Training data file or directory" type:"path"`
}

func (c *StatsCmd) Run(tool *app.Tool) error {
	return tool.Stats(c.Path)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("traindata-cli"),
		kong.Description("Training data normalization tool for NLU pipelines"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	cfg, err := app.LoadConfig(CLI.Config)
	ctx.FatalIfErrorf(err)

	var logger *log.Logger
	if !CLI.Quiet {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	err = ctx.Run(app.NewTool(cfg, logger, os.Stdout))
	ctx.FatalIfErrorf(err)
}
