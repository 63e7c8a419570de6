// Package codec serializes lists of records to the two on-disk forms the
// tool produces: a pretty-printed JSON array and newline-delimited JSON.
package codec

import (
	"strings"

	"github.com/teranos/promptforge/value"
)

// Indent is the indentation unit for pretty-printed JSON output.
const Indent = "  "

// EncodeJSON renders the records as a single human-readable JSON array with
// two-space indentation, preserving per-record key and element order.
// An empty record list encodes as "[]".
func EncodeJSON(records []value.Value) string {
	if len(records) == 0 {
		return "[]"
	}

	var b strings.Builder
	b.WriteString("[\n")
	for i, r := range records {
		b.WriteString(Indent)
		b.WriteString(r.EncodeJSONIndent(Indent, Indent))
		if i < len(records)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte(']')
	return b.String()
}

// EncodeJSONL renders the records as one compact JSON value per line, in
// input order, every line newline-terminated. An empty record list encodes
// as the empty string.
func EncodeJSONL(records []value.Value) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(r.EncodeJSON())
		b.WriteByte('\n')
	}
	return b.String()
}

// ConvertArrayToJSONL re-encodes the elements of an already-parsed JSON array
// as JSONL. It exists as a distinct entry point for the file-to-file
// conversion utility and is byte-identical to EncodeJSONL on the same
// records.
func ConvertArrayToJSONL(parsed []value.Value) string {
	return EncodeJSONL(parsed)
}
