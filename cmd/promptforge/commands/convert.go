package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/codec"
	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/source"
	"github.com/teranos/promptforge/value"
)

var convertOutputPath string

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Re-encode a JSON array file as JSONL",
	Long: `convert — Re-encode a JSON array file as JSONL

Parses a file containing a single JSON array and writes its elements as one
compact JSON value per line. The default output path swaps the .json
extension for .jsonl.

Examples:
  promptforge convert formatted_prompts.json
  promptforge convert batch.json -o batch.jsonl
  promptforge convert batch.json -o -`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	ConvertCmd.Flags().StringVarP(&convertOutputPath, "output", "o", "", "Output path ('-' for stdout; default derives from input)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	data, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", inPath)
	}

	records, err := value.DecodeJSONArray(data)
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", inPath)
	}

	outPath := convertOutputPath
	if outPath == "" {
		outPath = source.DeriveJSONLPath(inPath)
	}

	out := codec.ConvertArrayToJSONL(records)
	if outPath == "-" {
		_, err := os.Stdout.WriteString(out)
		return err
	}
	if err := source.WriteOutput(outPath, out); err != nil {
		return err
	}

	pterm.Success.Printf("Converted %d records → %s\n", len(records), outPath)
	return nil
}
