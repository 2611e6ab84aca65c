package scenariofile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/types"
)

// Load reads and parses the scenario file at path. The configuration's base
// directory is the file's directory.
func Load(path string) (*types.Configuration, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.IOReadError(path, err)
	}

	format, err := FormatOf(abs)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.IOFileNotFound(abs)
		}
		return nil, errors.IOReadError(abs, err)
	}

	return Parse(data, format, abs)
}

// Parse decodes data in the given format. path is used for the
// configuration's location and in error messages.
func Parse(data []byte, format Format, path string) (*types.Configuration, error) {
	var (
		tree map[string]any
		err  error
	)
	switch format {
	case FormatYAML:
		tree, err = decodeYAML(data)
	case FormatTOML:
		tree, err = decodeTOML(data)
	case FormatHCL:
		tree, err = decodeHCL(data, path)
	default:
		return nil, errors.ConfigUnsupportedFormat(path)
	}
	if err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	cfg, err := parseTree(tree, path)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// decodeYAML walks the document node tree rather than unmarshalling into
// map[string]any so that scalars under an env mapping keep their source text:
// VERSION: 1.10 stays "1.10" and MODE: 0755 stays "0755".
func decodeYAML(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	v, err := yamlValue(doc.Content[0], false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	tree, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("line %d: top level must be a mapping", doc.Content[0].Line)
	}
	return tree, nil
}

// yamlValue converts n to plain Go values. When text is set, a non-null
// scalar is returned verbatim as a string.
func yamlValue(n *yaml.Node, text bool) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias, text)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		if text {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := yamlValue(item, false)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		if err := yamlMapping(n, false, out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// yamlMapping fills out from the key/value pairs of n. Merge keys (<<) are
// applied first so explicit keys win. inEnv marks n as an env mapping, whose
// scalar values are kept as text.
func yamlMapping(n *yaml.Node, inEnv bool, out map[string]any) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.ShortTag() != "!!merge" {
			continue
		}
		val = resolveAlias(val)
		sources := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			sources = val.Content
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
			}
			if err := yamlMapping(src, inEnv, out); err != nil {
				return err
			}
		}
	}
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.ShortTag() == "!!merge" {
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		if seen[key.Value] {
			return fmt.Errorf("line %d: mapping key %q already defined", key.Line, key.Value)
		}
		seen[key.Value] = true
		var (
			v   any
			err error
		)
		switch m := resolveAlias(val); {
		case inEnv && m.Kind == yaml.ScalarNode:
			v, err = yamlValue(m, true)
		case !inEnv && key.Value == "env" && m.Kind == yaml.MappingNode:
			env := make(map[string]any, len(m.Content)/2)
			err = yamlMapping(m, true, env)
			v = env
		default:
			v, err = yamlValue(m, false)
		}
		if err != nil {
			return err
		}
		out[key.Value] = v
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func decodeTOML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
