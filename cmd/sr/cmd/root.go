package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scenario-runner/sr/internal/types"
)

// Version is set at build time via ldflags
var Version = "dev"

// Process exit codes that do not come from a scenario.
const (
	exitUsage  = 1
	exitFailed = -1
)

// options holds the global flags.
type options struct {
	file    string
	verbose bool
	dryRun  bool
	quiet   bool
	noColor bool
}

// cli is one invocation of sr.
type cli struct {
	opts   options
	cwd    string
	stdout io.Writer
	stderr io.Writer

	// cfg is nil when loadErr is set.
	cfg     *types.Configuration
	loadErr error

	exitCode int
}

// Execute runs sr with the process arguments and returns the exit code.
// SIGINT and SIGTERM abandon the running scenario.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: getting working directory: %v\n", err)
		return exitFailed
	}
	return run(ctx, os.Args[1:], cwd, os.Stdout, os.Stderr)
}

// run executes the command line args as if started in cwd.
func run(ctx context.Context, args []string, cwd string, stdout, stderr io.Writer) int {
	c := &cli{cwd: cwd, stdout: stdout, stderr: stderr}

	// Scenario subcommands depend on --file, so it is read before cobra
	// parses the full command line.
	c.opts.file = preScanFile(args)
	c.cfg, c.loadErr = loadScenarioFile(c.opts.file, cwd)

	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, root.UsageString())
		return exitUsage
	}
	return c.exitCode
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sr [flags] <scenario>",
		Short: "sr - run named scenarios of shell and docker-compose actions",
		Long: `sr runs named scenarios from a scenario file (sr.yml, sr.yaml, sr.toml or sr.hcl).

Each scenario is an ordered list of shell and docker-compose actions. Actions
run one at a time from the scenario file's directory, and the run stops at the
first action that fails. The exit code is the scenario's result: 0 on success,
the failing action's exit code, or -1 when an action could not be run.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runRoot,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.file, "file", "f", c.opts.file, "scenario file (default: sr.yml in the current directory)")
	flags.BoolVarP(&c.opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&c.opts.dryRun, "dry-run", false, "print the command lines without running them")
	flags.BoolVarP(&c.opts.quiet, "quiet", "q", false, "do not print the run summary")
	flags.BoolVar(&c.opts.noColor, "no-color", false, "disable colored output")

	root.Version = Version
	root.SetVersionTemplate("sr {{.Version}}\n")

	if c.cfg != nil {
		for _, name := range c.cfg.Names() {
			root.AddCommand(c.newScenarioCmd(c.cfg.Scenario(name)))
		}
	}
	return root
}

// runRoot handles a command line that selected no scenario.
func (c *cli) runRoot(cmd *cobra.Command, args []string) error {
	if c.loadErr != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", c.loadErr)
		c.exitCode = exitFailed
		return nil
	}

	if len(args) > 0 {
		fmt.Fprintf(c.stderr, "Error: unknown scenario %q\n", args[0])
	}
	fmt.Fprint(c.stderr, cmd.UsageString())
	c.exitCode = exitUsage
	return nil
}

// preScanFile returns the --file value in args, ignoring every other flag.
func preScanFile(args []string) string {
	fs := pflag.NewFlagSet("prescan", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	file := fs.StringP("file", "f", "", "")
	// Known boolean flags must not swallow the argument that follows them.
	fs.BoolP("verbose", "v", false, "")
	fs.BoolP("quiet", "q", false, "")
	fs.BoolP("help", "h", false, "")
	fs.Bool("dry-run", false, "")
	fs.Bool("no-color", false, "")
	fs.Bool("version", false, "")
	_ = fs.Parse(args)
	return *file
}
