package scenariofile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclFile is the top-level structure of an HCL scenario file.
type hclFile struct {
	Global    *hclGlobal     `hcl:"global,block"`
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclGlobal struct {
	Remain hcl.Body `hcl:",remain"`
}

type hclScenario struct {
	Name    string       `hcl:"name,label"`
	Actions []*hclAction `hcl:"action,block"`
	Remain  hcl.Body     `hcl:",remain"`
}

// hclAction is an `action "<kind>" { ... }` block. Its attributes are left
// to the shared parser.
type hclAction struct {
	Kind   string   `hcl:"kind,label"`
	Remain hcl.Body `hcl:",remain"`
}

// decodeHCL turns an HCL scenario file into the same tree shape the YAML and
// TOML decoders produce.
func decodeHCL(data []byte, path string) (map[string]any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	tree := make(map[string]any)
	if parsed.Global != nil {
		global, err := attributesToMap(parsed.Global.Remain)
		if err != nil {
			return nil, fmt.Errorf("global: %w", err)
		}
		tree["global"] = global
	}

	scenarios := make(map[string]any, len(parsed.Scenarios))
	for _, sc := range parsed.Scenarios {
		if _, dup := scenarios[sc.Name]; dup {
			return nil, fmt.Errorf("scenario %q defined more than once", sc.Name)
		}
		node, err := attributesToMap(sc.Remain)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		actions := make([]any, 0, len(sc.Actions))
		for i, a := range sc.Actions {
			spec, err := attributesToMap(a.Remain)
			if err != nil {
				return nil, fmt.Errorf("scenario %q action %d: %w", sc.Name, i+1, err)
			}
			actions = append(actions, map[string]any{a.Kind: spec})
		}
		if len(actions) > 0 {
			node["actions"] = actions
		}
		scenarios[sc.Name] = node
	}
	if len(scenarios) > 0 {
		tree["scenarios"] = scenarios
	}

	return tree, nil
}

// attributesToMap evaluates every attribute in body without variables.
func attributesToMap(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = native
	}
	return out, nil
}

// ctyToNative converts v to the plain Go values the shared parser expects.
// Whole numbers become int64, other numbers float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			var n int64
			if err := gocty.FromCtyValue(v, &n); err == nil {
				return n, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
