package types

// ActionKind identifies which executor runs an action.
type ActionKind string

const (
	ActionShell         ActionKind = "shell"
	ActionDockerCompose ActionKind = "docker-compose"
)

// ActionKinds lists the recognized action kinds in lookup order.
var ActionKinds = []ActionKind{ActionShell, ActionDockerCompose}

// Valid returns true if this is a recognized action kind.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionShell, ActionDockerCompose:
		return true
	}
	return false
}

// ActionSpec holds the fields shared by every action kind.
type ActionSpec struct {
	Cmd        StringOrList      // Required; tokenized shell-style
	Args       StringOrList      // Optional; appended after Cmd
	Env        map[string]string // Overrides scenario and global env
	StdoutFile string            // Capture stdout into this file
	StderrFile string            // Capture stderr into this file
	ExitCode   *int              // Expected exit code; nil means 0

	// ComposeFiles is appended after the global and scenario lists.
	// Only docker-compose actions use it.
	ComposeFiles []string
}

// ExpectedExitCode returns the exit code the action must finish with.
func (s *ActionSpec) ExpectedExitCode() int {
	if s.ExitCode == nil {
		return 0
	}
	return *s.ExitCode
}

// Captures reports whether any output stream is redirected to a file.
func (s *ActionSpec) Captures() bool {
	return s.StdoutFile != "" || s.StderrFile != ""
}

// Action is one step of a scenario. Kind is resolved when the scenario file
// is loaded and never changes afterwards.
type Action struct {
	Kind ActionKind
	Spec ActionSpec
}

// NewShellAction returns a shell action for spec.
func NewShellAction(spec ActionSpec) Action {
	return Action{Kind: ActionShell, Spec: spec}
}

// NewComposeAction returns a docker-compose action for spec.
func NewComposeAction(spec ActionSpec) Action {
	return Action{Kind: ActionDockerCompose, Spec: spec}
}
