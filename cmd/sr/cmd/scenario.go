package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenario-runner/sr/internal/config"
	"github.com/scenario-runner/sr/internal/executor"
	"github.com/scenario-runner/sr/internal/logging"
	"github.com/scenario-runner/sr/internal/runner"
	"github.com/scenario-runner/sr/internal/scenariofile"
	"github.com/scenario-runner/sr/internal/status"
	"github.com/scenario-runner/sr/internal/types"
)

// loadScenarioFile finds and parses the scenario file for file and cwd.
func loadScenarioFile(file, cwd string) (*types.Configuration, error) {
	path, err := scenariofile.Resolve(file, cwd)
	if err != nil {
		return nil, err
	}
	return scenariofile.Load(path)
}

// newScenarioCmd creates the subcommand that runs sc.
func (c *cli) newScenarioCmd(sc *types.Scenario) *cobra.Command {
	return &cobra.Command{
		Use:   sc.Name,
		Short: sc.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.exitCode = c.runScenario(cmd.Context(), sc.Name)
			return nil
		},
	}
}

// runScenario runs the named scenario and returns its exit code.
func (c *cli) runScenario(ctx context.Context, name string) int {
	baseDir := c.cfg.BaseDir

	settings, err := config.LoadFromDir(baseDir)
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: loading runner settings: %v\n", err)
		return exitFailed
	}
	if c.opts.verbose {
		settings.Logging.Level = config.LogLevelDebug
	}

	logger, closer, err := logging.NewWithWriter(settings, baseDir, c.stderr)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: opening log: %v\n", err)
		return exitFailed
	}
	if closer != nil {
		defer closer.Close()
	}

	var invoker executor.Invoker
	if c.opts.dryRun {
		invoker = &executor.DryRunInvoker{Out: c.stdout}
	} else {
		pi := executor.NewProcessInvoker(logger)
		pi.StopGracePeriod = settings.Process.StopGracePeriod
		pi.Stdout = c.stdout
		pi.Stderr = c.stderr
		invoker = pi
	}

	engine := runner.NewEngine(runner.Options{
		Invoker:        invoker,
		ComposeProgram: settings.Compose.Program,
		BaseDir:        baseDir,
		Logger:         logger,
	})

	logger.Debug("scenario file loaded", "path", c.cfg.Path, "scenarios", len(c.cfg.Scenarios))
	report, err := runner.NewDispatch(c.cfg).RunNamed(ctx, engine, name)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailed
	}

	if !c.opts.quiet {
		fmt.Fprint(c.stderr, status.FormatReport(report, status.FormatOptions{
			NoColor: c.opts.noColor || !logging.IsTerminal(c.stderr),
		}))
	}
	return report.ExitCode
}
