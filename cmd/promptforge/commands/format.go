package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/codec"
	"github.com/teranos/promptforge/config"
	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/logger"
	"github.com/teranos/promptforge/source"
	"github.com/teranos/promptforge/store"
	"github.com/teranos/promptforge/subst"
	"github.com/teranos/promptforge/value"
	"github.com/teranos/promptforge/watch"
)

var (
	formatPromptsPath  string
	formatTemplatePath string
	formatLibraryName  string
	formatOutputPath   string
	formatToken        string
	formatJSONL        bool
	formatBoth         bool
	formatRepair       bool
	formatWatch        bool
	formatWorkers      int
)

// FormatCmd represents the format command
var FormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Substitute prompts into a template and write records",
	Long: `format — Substitute prompts into a template and write records

Reads one prompt per line from the prompt file (blank lines skipped), replaces
every occurrence of the placeholder token in the template with each prompt,
and writes one record per prompt.

Examples:
  promptforge format -p prompts.txt -t template.json
  promptforge format -p prompts.txt -t template.yaml --placeholder '{{CHALLENGE}}'
  promptforge format -p prompts.txt --library copywriter --jsonl -o batch.jsonl
  promptforge format -p - -t template.json -o -      # stdin to stdout
  promptforge format -p prompts.txt -t template.json --watch`,
	RunE: runFormat,
}

func init() {
	FormatCmd.Flags().StringVarP(&formatPromptsPath, "prompts", "p", "", "Prompt file, one prompt per line ('-' for stdin)")
	FormatCmd.Flags().StringVarP(&formatTemplatePath, "template", "t", "", "Template file (.json, .hjson, .yaml)")
	FormatCmd.Flags().StringVarP(&formatLibraryName, "library", "l", "", "Load the template from the library by name instead of a file")
	FormatCmd.Flags().StringVarP(&formatOutputPath, "output", "o", "", "Output path ('-' for stdout; default from config)")
	FormatCmd.Flags().StringVar(&formatToken, "placeholder", "", "Placeholder token to replace (default from config)")
	FormatCmd.Flags().BoolVar(&formatJSONL, "jsonl", false, "Write JSONL instead of a pretty-printed JSON array")
	FormatCmd.Flags().BoolVar(&formatBoth, "both", false, "Write both the JSON array and a derived .jsonl file")
	FormatCmd.Flags().BoolVar(&formatRepair, "repair", false, "Attempt automatic repair of malformed JSON templates")
	FormatCmd.Flags().BoolVar(&formatWatch, "watch", false, "Re-run whenever the prompt or template file changes")
	FormatCmd.Flags().IntVar(&formatWorkers, "workers", 0, "Parallel substitution workers (default from config)")

	_ = FormatCmd.MarkFlagRequired("prompts")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	if formatTemplatePath == "" && formatLibraryName == "" {
		return errors.NewInvalidRequestError("either --template or --library is required")
	}
	if formatTemplatePath != "" && formatLibraryName != "" {
		return errors.NewInvalidRequestError("--template and --library are mutually exclusive")
	}
	if formatBoth && formatOutputPath == "-" {
		return errors.NewInvalidRequestError("--both requires a file output path")
	}

	token := formatToken
	if token == "" {
		token = cfg.Format.Placeholder
	}
	workers := formatWorkers
	if workers <= 0 {
		workers = cfg.Format.Workers
	}
	outPath := formatOutputPath
	if outPath == "" {
		outPath = cfg.Format.Output
		if formatJSONL {
			outPath = source.DeriveJSONLPath(outPath)
		}
	}

	run := func() error {
		return formatOnce(cmd.Context(), cfg, token, workers, outPath)
	}

	if err := run(); err != nil {
		return err
	}
	if !formatWatch {
		return nil
	}

	if formatPromptsPath == "-" || outPath == "-" {
		return errors.NewInvalidRequestError("--watch requires file inputs and outputs")
	}

	watchPaths := []string{formatPromptsPath}
	if formatTemplatePath != "" {
		watchPaths = append(watchPaths, formatTemplatePath)
	}
	watcher, err := watch.New(watchPaths...)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnChange(func() {
		if err := run(); err != nil {
			logger.Errorw("Reformat failed", "error", err)
		}
	})
	watcher.Start()

	logger.Infow("Watching for changes", "paths", watchPaths)

	// Block until interrupted.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

func formatOnce(ctx context.Context, cfg *config.Config, token string, workers int, outPath string) error {
	prompts, err := readFormatPrompts()
	if err != nil {
		return err
	}

	tmpl, err := loadFormatTemplate(ctx, cfg)
	if err != nil {
		return err
	}

	records, err := subst.FormatAllParallel(ctx, prompts, tmpl, token, workers)
	if err != nil {
		return errors.Wrap(err, "formatting interrupted")
	}

	if len(prompts) == 0 {
		logger.Warnw("No prompts supplied; output will be empty", "prompts", formatPromptsPath)
	}

	if formatJSONL {
		return emit(outPath, codec.EncodeJSONL(records), len(records))
	}
	if err := emit(outPath, codec.EncodeJSON(records), len(records)); err != nil {
		return err
	}
	if formatBoth {
		jsonlPath := source.DeriveJSONLPath(outPath)
		return emit(jsonlPath, codec.EncodeJSONL(records), len(records))
	}
	return nil
}

func readFormatPrompts() ([]string, error) {
	if formatPromptsPath == "-" {
		return source.ReadPromptsFrom(os.Stdin)
	}
	return source.ReadPrompts(formatPromptsPath)
}

func loadFormatTemplate(ctx context.Context, cfg *config.Config) (value.Value, error) {
	if formatLibraryName == "" {
		var opts []source.TemplateOption
		if formatRepair {
			opts = append(opts, source.WithRepair())
		}
		return source.ReadTemplate(formatTemplatePath, opts...)
	}

	lib, err := store.Open(cfg.Library.Path)
	if err != nil {
		return value.Value{}, err
	}
	defer lib.Close()

	tpl, err := lib.GetByName(ctx, formatLibraryName)
	if err != nil {
		return value.Value{}, err
	}
	return tpl.Parse()
}

func emit(path, data string, count int) error {
	if path == "-" {
		_, err := os.Stdout.WriteString(data)
		if data != "" && data[len(data)-1] != '\n' {
			os.Stdout.WriteString("\n")
		}
		return err
	}
	if err := source.WriteOutput(path, data); err != nil {
		return err
	}
	pterm.Success.Printf("Formatted %d prompts → %s\n", count, path)
	return nil
}
