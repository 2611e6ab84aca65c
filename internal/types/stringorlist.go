package types

// ValueKind tells which form a StringOrList holds.
type ValueKind int

const (
	ValueAbsent   ValueKind = iota // field not provided
	ValueSingle                    // one string
	ValueMultiple                  // list of strings
)

// String returns the kind name used in messages.
func (k ValueKind) String() string {
	switch k {
	case ValueSingle:
		return "string"
	case ValueMultiple:
		return "list"
	default:
		return "absent"
	}
}

// StringOrList is a configuration value that may be omitted, a single
// string, or a list of strings. The zero value is absent.
type StringOrList struct {
	kind   ValueKind
	single string
	items  []string
}

// Single returns a StringOrList holding one string.
func Single(s string) StringOrList {
	return StringOrList{kind: ValueSingle, single: s}
}

// Multiple returns a StringOrList holding a list of strings. A nil or empty
// list is still a list, not absent.
func Multiple(items ...string) StringOrList {
	cp := make([]string, len(items))
	copy(cp, items)
	return StringOrList{kind: ValueMultiple, items: cp}
}

// Kind returns which form the value holds.
func (v StringOrList) Kind() ValueKind {
	return v.kind
}

// IsAbsent reports whether the value was not provided.
func (v StringOrList) IsAbsent() bool {
	return v.kind == ValueAbsent
}

// Values returns the strings held, in order: one element for a single
// string, the list for a list, nil when absent.
func (v StringOrList) Values() []string {
	switch v.kind {
	case ValueSingle:
		return []string{v.single}
	case ValueMultiple:
		cp := make([]string, len(v.items))
		copy(cp, v.items)
		return cp
	default:
		return nil
	}
}
