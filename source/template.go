package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v3"

	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/value"
)

// TemplateOption adjusts template parsing.
type TemplateOption func(*templateOptions)

type templateOptions struct {
	repair bool
}

// WithRepair enables a second parse attempt through json-repair when a .json
// template fails to parse. Useful for hand-edited templates with trailing
// commas, comments, or single quotes.
func WithRepair() TemplateOption {
	return func(o *templateOptions) {
		o.repair = true
	}
}

// ReadTemplate loads and parses a template file into a value tree. The
// format is chosen by extension: .json (optionally repaired), .hjson, and
// .yaml/.yml are supported; anything else is treated as JSON.
func ReadTemplate(path string, opts ...TemplateOption) (value.Value, error) {
	var o templateOptions
	for _, opt := range opts {
		opt(&o)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "failed to read template file %s", path)
	}

	var v value.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson":
		v, err = parseHJSONTemplate(data)
	case ".yaml", ".yml":
		v, err = parseYAMLTemplate(data)
	default:
		v, err = parseJSONTemplate(data, o.repair)
	}
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "failed to parse template %s", path)
	}
	return v, nil
}

// ParseTemplate parses raw JSON template bytes, e.g. a library body.
func ParseTemplate(data []byte) (value.Value, error) {
	return value.DecodeJSON(data)
}

func parseJSONTemplate(data []byte, repair bool) (value.Value, error) {
	v, err := value.DecodeJSON(data)
	if err == nil {
		return v, nil
	}
	if !repair {
		return value.Value{}, errors.WithHint(err, "pass --repair to attempt automatic JSON repair")
	}

	repaired, rerr := jsonrepair.RepairJSON(string(data))
	if rerr != nil {
		return value.Value{}, errors.Wrap(err, "JSON repair failed")
	}
	v, err = value.DecodeJSON([]byte(repaired))
	if err != nil {
		return value.Value{}, errors.Wrap(err, "repaired JSON still unparseable")
	}
	return v, nil
}

// parseHJSONTemplate accepts human-friendly JSON (comments, unquoted keys,
// optional commas). hjson decodes objects into its order-preserving map, so
// re-marshaling to standard JSON keeps document key order intact.
func parseHJSONTemplate(data []byte) (value.Value, error) {
	var raw interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return value.Value{}, errors.Wrap(err, "invalid HJSON")
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return value.Value{}, errors.Wrap(err, "failed to normalize HJSON")
	}
	return value.DecodeJSON(normalized)
}

// parseYAMLTemplate walks the yaml.Node tree directly; unlike unmarshaling
// into map[string]interface{}, nodes retain mapping key order.
func parseYAMLTemplate(data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, errors.Wrap(err, "invalid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return value.Value{}, errors.New("empty YAML document")
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromYAMLNode(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, item)
		}
		return value.NewArray(items...), nil
	case yaml.MappingNode:
		members := make([]value.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return value.Value{}, errors.Newf("unsupported non-scalar mapping key at line %d", key.Line)
			}
			member, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Member{Key: key.Value, Value: member})
		}
		return value.NewObject(members...), nil
	default:
		return value.Value{}, errors.Newf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

func fromYAMLScalar(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.NewNull(), nil
	case "!!bool":
		return value.NewBool(n.Value == "true" || n.Value == "True" || n.Value == "TRUE"), nil
	case "!!int", "!!float":
		// YAML numeric lexemes in the JSON-compatible subset pass through
		// verbatim; anything exotic (hex, inf) is validated by re-decoding.
		if _, err := value.DecodeJSON([]byte(n.Value)); err != nil {
			return value.Value{}, errors.Newf("YAML number %q at line %d has no JSON representation", n.Value, n.Line)
		}
		return value.NewNumber(json.Number(n.Value)), nil
	default:
		return value.NewString(n.Value), nil
	}
}
