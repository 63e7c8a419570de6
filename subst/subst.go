// Package subst implements placeholder substitution over value trees and the
// batch pipeline that turns a list of prompts into a list of records.
//
// Substitution is literal: every occurrence of a caller-supplied token inside
// a string leaf is replaced with the prompt text. There is no expression
// language, no conditionals, and no escaping; a template without the token is
// legal and simply yields identical records.
package subst

import (
	"context"
	"strings"
	"sync"

	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/value"
)

// DefaultToken is the placeholder marker the surrounding tooling understands
// unless the caller overrides it.
const DefaultToken = "{{prompt}}"

// Apply walks the template and returns a new tree in which every occurrence
// of token inside a string leaf is replaced by replacement.
//
// Rules, by kind:
//   - String: standard left-to-right non-overlapping replace-all.
//   - Number, Bool, Null: identity. Scalars are never substitution sites,
//     even when their textual form equals the token.
//   - Array: elements substituted in order, length preserved.
//   - Object: member values substituted, keys untouched, order preserved.
//
// The result shares no mutable node with the input, so records built from the
// same template are fully independent. Apply performs exactly one pass: a
// token reintroduced by the replacement text is left as-is.
//
// An empty token has no sites to match and degrades to a deep copy.
func Apply(tmpl value.Value, token, replacement string) value.Value {
	if token == "" {
		return tmpl.Clone()
	}

	switch tmpl.Kind() {
	case value.String:
		return value.NewString(strings.ReplaceAll(tmpl.Text(), token, replacement))
	case value.Null, value.Bool, value.Number:
		return tmpl
	case value.Array:
		items := make([]value.Value, tmpl.Len())
		for i, item := range tmpl.Items() {
			items[i] = Apply(item, token, replacement)
		}
		return value.NewArray(items...)
	case value.Object:
		members := make([]value.Member, 0, tmpl.Len())
		for _, m := range tmpl.Members() {
			members = append(members, value.Member{Key: m.Key, Value: Apply(m.Value, token, replacement)})
		}
		return value.NewObject(members...)
	default:
		// Upstream decode guarantees well-formed values; reaching this is a
		// programming error, not an input error.
		panic(errors.AssertionFailedf("subst: unhandled value kind %d", tmpl.Kind()))
	}
}

// FormatAll substitutes each prompt into the template and returns one record
// per prompt, in input order. An empty prompt list yields an empty, non-nil
// record list.
func FormatAll(prompts []string, tmpl value.Value, token string) []value.Value {
	records := make([]value.Value, len(prompts))
	for i, p := range prompts {
		records[i] = Apply(tmpl, token, p)
	}
	return records
}

// FormatAllParallel is FormatAll fanned out over a bounded worker pool.
// Each substitution is independent and touches no shared state, so the only
// ordering obligation is re-sequencing results by original index, which the
// indexed result slice provides for free. workers <= 1 degrades to the
// sequential path.
func FormatAllParallel(ctx context.Context, prompts []string, tmpl value.Value, token string, workers int) ([]value.Value, error) {
	if workers <= 1 || len(prompts) <= 1 {
		return FormatAll(prompts, tmpl, token), ctx.Err()
	}
	if workers > len(prompts) {
		workers = len(prompts)
	}

	records := make([]value.Value, len(prompts))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				records[i] = Apply(tmpl, token, prompts[i])
			}
		}()
	}

feed:
	for i := range prompts {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
