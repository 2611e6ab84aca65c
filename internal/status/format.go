package status

import (
	"fmt"
	"strings"
	"time"
)

// FormatOptions controls output formatting.
type FormatOptions struct {
	NoColor bool
	Quiet   bool // One line only
}

// FormatReport formats a finished or in-flight run for the terminal.
func FormatReport(r *Report, opts FormatOptions) string {
	if opts.Quiet {
		return formatHeadline(r, opts) + "\n"
	}

	var b strings.Builder

	b.WriteString(formatHeadline(r, opts))
	b.WriteString("\n")
	b.WriteString(formatProgress(r, opts))
	b.WriteString("\n")

	if len(r.Actions) > 0 {
		b.WriteString("\n")
		b.WriteString(formatActions(r, opts))
	}

	if errs := r.Errors(); len(errs) > 0 {
		b.WriteString("\n")
		b.WriteString(formatErrors(errs, opts))
	}

	return b.String()
}

func formatHeadline(r *Report, opts FormatOptions) string {
	icon := getOutcomeIcon(r.Outcome)
	color := getOutcomeColor(r.Outcome, opts.NoColor)

	line := fmt.Sprintf("%s%s %s%s %s (exit %d)",
		color, icon, r.Scenario, resetColor(opts.NoColor), r.Outcome, r.ExitCode)
	if r.DoneAt != nil {
		line += fmt.Sprintf(" in %s", formatDuration(r.DoneAt.Sub(r.StartedAt)))
	}
	return line
}

func formatProgress(r *Report, opts FormatOptions) string {
	stats := r.Stats()

	parts := []string{fmt.Sprintf("%d/%d actions run", r.ActionsRun(), stats.Total)}
	if stats.Done > 0 {
		parts = append(parts, fmt.Sprintf("%s✓ %d done%s",
			getColor("green", opts.NoColor), stats.Done, resetColor(opts.NoColor)))
	}
	if stats.Running > 0 {
		parts = append(parts, fmt.Sprintf("%s● %d running%s",
			getColor("yellow", opts.NoColor), stats.Running, resetColor(opts.NoColor)))
	}
	if stats.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%s✗ %d failed%s",
			getColor("red", opts.NoColor), stats.Failed, resetColor(opts.NoColor)))
	}
	if stats.Aborted > 0 {
		parts = append(parts, fmt.Sprintf("%s■ %d aborted%s",
			getColor("gray", opts.NoColor), stats.Aborted, resetColor(opts.NoColor)))
	}
	if stats.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%s⊘ %d skipped%s",
			getColor("gray", opts.NoColor), stats.Skipped, resetColor(opts.NoColor)))
	}

	return "Actions:  " + strings.Join(parts, ", ")
}

func formatActions(r *Report, opts FormatOptions) string {
	var b strings.Builder

	for _, a := range r.Actions {
		color := getActionColor(a.Status, opts.NoColor)
		b.WriteString(fmt.Sprintf("  %s%s %d %s%s",
			color, getActionIcon(a.Status), a.Index+1, a.Kind, resetColor(opts.NoColor)))

		if a.Command != "" {
			b.WriteString(": " + a.Command)
		}
		switch a.Status {
		case ActionDone, ActionFailed:
			b.WriteString(fmt.Sprintf(" (exit %d, %s)", a.ExitCode, formatDuration(a.Duration)))
		case ActionSkipped:
			b.WriteString(" (skipped)")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatErrors(errs []string, opts FormatOptions) string {
	var b strings.Builder

	errColor := getColor("red", opts.NoColor)
	reset := resetColor(opts.NoColor)

	b.WriteString(fmt.Sprintf("%sErrors:%s\n", errColor, reset))
	for _, err := range errs {
		b.WriteString(fmt.Sprintf("  %s✗%s %s\n", errColor, reset, err))
	}

	return b.String()
}

// Formatting helpers

func getOutcomeIcon(o Outcome) string {
	switch o {
	case OutcomeRunning:
		return "●"
	case OutcomeCompleted:
		return "✓"
	case OutcomeHalted, OutcomeFailed:
		return "✗"
	case OutcomeAborted:
		return "■"
	case OutcomePending:
		return "○"
	default:
		return "?"
	}
}

func getOutcomeColor(o Outcome, noColor bool) string {
	switch o {
	case OutcomeRunning:
		return getColor("yellow", noColor)
	case OutcomeCompleted:
		return getColor("green", noColor)
	case OutcomeHalted, OutcomeFailed:
		return getColor("red", noColor)
	case OutcomeAborted, OutcomePending:
		return getColor("gray", noColor)
	default:
		return ""
	}
}

func getActionIcon(s ActionStatus) string {
	switch s {
	case ActionRunning:
		return "●"
	case ActionDone:
		return "✓"
	case ActionFailed:
		return "✗"
	case ActionAborted:
		return "■"
	case ActionSkipped:
		return "⊘"
	default:
		return "○"
	}
}

func getActionColor(s ActionStatus, noColor bool) string {
	switch s {
	case ActionRunning:
		return getColor("yellow", noColor)
	case ActionDone:
		return getColor("green", noColor)
	case ActionFailed:
		return getColor("red", noColor)
	default:
		return getColor("gray", noColor)
	}
}

func getColor(name string, noColor bool) string {
	if noColor {
		return ""
	}

	switch name {
	case "red":
		return "\033[31m"
	case "green":
		return "\033[32m"
	case "yellow":
		return "\033[33m"
	case "gray":
		return "\033[90m"
	default:
		return ""
	}
}

func resetColor(noColor bool) string {
	if noColor {
		return ""
	}
	return "\033[0m"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
