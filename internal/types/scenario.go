package types

import "sort"

// GlobalScope holds settings inherited by every scenario.
type GlobalScope struct {
	Env          map[string]string
	ComposeFiles []string
}

// Scenario is a named, ordered list of actions run as a unit.
type Scenario struct {
	Name         string
	Description  string
	Env          map[string]string
	ComposeFiles []string
	Actions      []Action
}

// Configuration is a loaded scenario file.
type Configuration struct {
	// Path is the scenario file the configuration was read from.
	Path string

	// BaseDir is the directory containing Path. Child processes run there
	// and relative capture paths resolve against it.
	BaseDir string

	Global    GlobalScope
	Scenarios map[string]*Scenario
}

// Names returns the scenario names sorted alphabetically.
func (c *Configuration) Names() []string {
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario returns the named scenario, or nil.
func (c *Configuration) Scenario(name string) *Scenario {
	return c.Scenarios[name]
}
