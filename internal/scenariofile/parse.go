package scenariofile

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/types"
)

var (
	topLevelKeys = keySet("global", "scenarios")
	globalKeys   = keySet("env", "compose_files")
	scenarioKeys = keySet("description", "env", "compose_files", "actions")
	specKeys     = keySet("cmd", "args", "env", "stdout_file", "stderr_file", "exitcode", "compose_files")
)

// parseTree builds a Configuration from a decoded file. Every type error
// names the offending field by its dotted path.
func parseTree(tree map[string]any, path string) (*types.Configuration, error) {
	if err := checkKeys("", tree, topLevelKeys); err != nil {
		return nil, err
	}

	cfg := &types.Configuration{Scenarios: make(map[string]*types.Scenario)}

	if raw, ok := tree["global"]; ok && raw != nil {
		node, err := asMap("global", raw)
		if err != nil {
			return nil, err
		}
		if err := checkKeys("global", node, globalKeys); err != nil {
			return nil, err
		}
		if cfg.Global.Env, err = parseEnv("global.env", node["env"]); err != nil {
			return nil, err
		}
		if cfg.Global.ComposeFiles, err = parseStrings("global.compose_files", node["compose_files"]); err != nil {
			return nil, err
		}
	}

	raw, ok := tree["scenarios"]
	if !ok || raw == nil {
		return nil, errors.ConfigNoScenarios(path)
	}
	scenarios, err := asMap("scenarios", raw)
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, errors.ConfigNoScenarios(path)
	}

	for _, name := range sortedKeys(scenarios) {
		if err := checkScenarioName(name); err != nil {
			return nil, err
		}
		sc, err := parseScenario(name, scenarios[name])
		if err != nil {
			return nil, err
		}
		cfg.Scenarios[name] = sc
	}
	return cfg, nil
}

// checkScenarioName rejects names that cannot be typed as a single
// command-line word.
func checkScenarioName(name string) error {
	switch {
	case name == "":
		return errors.ConfigInvalidValue("scenarios", name, "scenario names must not be empty")
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return errors.ConfigInvalidValue("scenarios", name, "scenario names must not contain whitespace")
	case strings.HasPrefix(name, "-"):
		return errors.ConfigInvalidValue("scenarios", name, "scenario names must not start with '-'")
	}
	return nil
}

func parseScenario(name string, raw any) (*types.Scenario, error) {
	field := "scenarios." + name
	sc := &types.Scenario{Name: name}
	if raw == nil {
		return sc, nil
	}

	node, err := asMap(field, raw)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(field, node, scenarioKeys); err != nil {
		return nil, err
	}

	if sc.Description, err = parseString(field+".description", node["description"]); err != nil {
		return nil, err
	}
	if sc.Env, err = parseEnv(field+".env", node["env"]); err != nil {
		return nil, err
	}
	if sc.ComposeFiles, err = parseStrings(field+".compose_files", node["compose_files"]); err != nil {
		return nil, err
	}

	if node["actions"] == nil {
		return sc, nil
	}
	list, err := asList(field+".actions", node["actions"])
	if err != nil {
		return nil, err
	}
	for i, item := range list {
		action, err := parseAction(fmt.Sprintf("%s.actions[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		sc.Actions = append(sc.Actions, action)
	}
	return sc, nil
}

// parseAction resolves the action kind from its single key.
func parseAction(field string, raw any) (types.Action, error) {
	node, err := asMap(field, raw)
	if err != nil {
		return types.Action{}, err
	}
	if len(node) != 1 {
		return types.Action{}, errors.ConfigInvalidValue(field, sortedKeys(node),
			fmt.Sprintf("an action must have exactly one of %v", types.ActionKinds))
	}

	var (
		key  string
		body any
	)
	for k, v := range node {
		key, body = k, v
	}
	kind := types.ActionKind(key)
	if !kind.Valid() {
		return types.Action{}, errors.ConfigInvalidValue(field, key,
			fmt.Sprintf("unknown action type, expected one of %v", types.ActionKinds))
	}

	spec, err := parseSpec(field+"."+key, body)
	if err != nil {
		return types.Action{}, err
	}
	return types.Action{Kind: kind, Spec: spec}, nil
}

func parseSpec(field string, raw any) (types.ActionSpec, error) {
	var spec types.ActionSpec
	if raw == nil {
		return spec, nil
	}

	node, err := asMap(field, raw)
	if err != nil {
		return spec, err
	}
	if err := checkKeys(field, node, specKeys); err != nil {
		return spec, err
	}

	if spec.Cmd, err = parseStringOrList(field+".cmd", node["cmd"]); err != nil {
		return spec, err
	}
	if spec.Args, err = parseStringOrList(field+".args", node["args"]); err != nil {
		return spec, err
	}
	if spec.Env, err = parseEnv(field+".env", node["env"]); err != nil {
		return spec, err
	}
	if spec.StdoutFile, err = parseString(field+".stdout_file", node["stdout_file"]); err != nil {
		return spec, err
	}
	if spec.StderrFile, err = parseString(field+".stderr_file", node["stderr_file"]); err != nil {
		return spec, err
	}
	if spec.ComposeFiles, err = parseStrings(field+".compose_files", node["compose_files"]); err != nil {
		return spec, err
	}
	if v, ok := node["exitcode"]; ok && v != nil {
		code, err := parseInt(field+".exitcode", v)
		if err != nil {
			return spec, err
		}
		spec.ExitCode = &code
	}
	return spec, nil
}

// parseStringOrList accepts a string, a list of strings, or nothing.
func parseStringOrList(field string, raw any) (types.StringOrList, error) {
	switch v := raw.(type) {
	case nil:
		return types.StringOrList{}, nil
	case string:
		return types.Single(v), nil
	}

	list, err := asList(field, raw)
	if err != nil {
		return types.StringOrList{}, errors.ConfigInvalidValue(field, raw, "must be either string or list")
	}
	items := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return types.StringOrList{}, errors.ConfigInvalidValue(fmt.Sprintf("%s[%d]", field, i), item, "must be a string")
		}
		items[i] = s
	}
	return types.Multiple(items...), nil
}

func parseString(field string, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	return "", errors.ConfigInvalidValue(field, raw, "must be a string")
}

func parseStrings(field string, raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, err := asList(field, raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.ConfigInvalidValue(fmt.Sprintf("%s[%d]", field, i), item, "must be a string")
		}
		out[i] = s
	}
	return out, nil
}

// parseEnv accepts a mapping of names to scalar values. YAML env scalars
// arrive as their source text. Integers and booleans from TOML and HCL are
// formatted; fractional numbers are rejected because the decoders have
// already lost their spelling.
func parseEnv(field string, raw any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	node, err := asMap(field, raw)
	if err != nil {
		return nil, err
	}
	env := make(map[string]string, len(node))
	for k, v := range node {
		switch s := v.(type) {
		case string:
			env[k] = s
		case bool, int, int64, uint64:
			env[k] = fmt.Sprint(s)
		case float64:
			return nil, errors.ConfigInvalidValue(field+"."+k, v, "must be a string; quote fractional numbers")
		case nil:
			env[k] = ""
		default:
			return nil, errors.ConfigInvalidValue(field+"."+k, v, "must be a scalar value")
		}
	}
	return env, nil
}

// parseInt accepts the integer representations of every decoder: int from
// YAML, int64 from TOML and HCL, and whole float64 values.
func parseInt(field string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v), nil
		}
	case uint64:
		if v <= math.MaxInt32 {
			return int(v), nil
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v), nil
		}
	}
	return 0, errors.ConfigInvalidValue(field, raw, "must be an integer exit code")
}

func asMap(field string, raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, errors.ConfigInvalidValue(field, k, "keys must be strings")
			}
			out[ks] = val
		}
		return out, nil
	}
	return nil, errors.ConfigInvalidValue(field, raw, "must be a mapping")
}

func asList(field string, raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	}
	return nil, errors.ConfigInvalidValue(field, raw, "must be a list")
}

func checkKeys(field string, node map[string]any, allowed map[string]bool) error {
	for _, k := range sortedKeys(node) {
		if !allowed[k] {
			name := k
			if field != "" {
				name = field + "." + k
			}
			return errors.ConfigInvalidValue(name, nil, "unknown field")
		}
	}
	return nil
}

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
