package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/cmd/promptforge/commands"
	"github.com/teranos/promptforge/logger"
)

var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "promptforge - Batch prompt formatting for LLM pipelines",
	Long: `promptforge - Turn raw prompt lists into structured JSON records.

promptforge substitutes each prompt from a plain-text list into every
placeholder occurrence of a JSON template, producing one record per prompt,
and writes the batch as a pretty-printed JSON array or as JSONL.

Available commands:
  format  - Substitute prompts into a template and write records
  convert - Re-encode a JSON array file as JSONL
  library - Manage the named template library
  config  - Inspect or initialize configuration
  version - Show version information

Examples:
  promptforge format -p prompts.txt -t template.json
  promptforge format -p prompts.txt -t template.json --jsonl -o batch.jsonl
  promptforge convert formatted_prompts.json
  promptforge library save -n copywriter -f template.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(commands.FormatCmd)
	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.LibraryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
