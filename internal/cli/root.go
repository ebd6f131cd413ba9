package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/borrowdev/borrow/internal/config"
	"github.com/borrowdev/borrow/internal/logging"
)

// Global output state, set by the root command before any subcommand runs.
var (
	globalNoColor bool
	globalQuiet   bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootState is shared by every subcommand of one root command.
type rootState struct {
	dataDir    string
	configPath string
	debug      bool
	verbose    bool
	noColor    bool
	quiet      bool

	// cfg is the merged configuration, available from PersistentPreRunE on.
	cfg *config.Config
}

// NewRootCmd creates the borrow root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	rootCmd := &cobra.Command{
		Use:   "borrow",
		Short: "Project template scaffolding tool",
		Long: `borrow creates projects from templates.

Templates live either in a local directory ("local:<path>") or in a
subdirectory of the borrow registry ("<name>[@<branch>]"). A template holds a
placeholders.borrow file and a content/ tree; files ending in .template have
their %%(KEY)%% tokens substituted.

Use "borrow start new --template <ref> --target-dir <dir>" to:
  1. Fetch the template into the local cache
  2. Prompt for placeholder values
  3. Write the project to <dir>/<template-name>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&st.dataDir, FlagDataDir, "", DescDataDir)
	flags.StringVar(&st.configPath, FlagConfig, "", DescConfig)
	flags.BoolVar(&st.debug, FlagDebug, false, DescDebug)
	flags.BoolVarP(&st.verbose, FlagVerbose, "v", false, DescVerbose)
	flags.BoolVar(&st.noColor, FlagNoColor, false, DescNoColor)
	flags.BoolVarP(&st.quiet, FlagQuiet, "q", false, DescQuiet)

	rootCmd.AddCommand(newStartCmd(st))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and configures output
// and logging.
func (st *rootState) setup(cmd *cobra.Command) error {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()
	globalQuiet = st.quiet
	globalNoColor = st.noColor

	cfg, err := st.loadConfig(cmd)
	if err != nil {
		return err
	}
	st.cfg = cfg

	globalQuiet = cfg.Output.Quiet
	globalNoColor = !cfg.Output.Color
	if globalNoColor {
		color.NoColor = true
	}

	logging.Setup(logging.Options{
		Debug:   st.debug,
		Verbose: cfg.Output.Verbose,
		Quiet:   cfg.Output.Quiet,
		NoColor: globalNoColor,
		Out:     stderr,
	})
	logger := logging.Logger("cli")
	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("data_dir", cfg.DataDir).
		Msg("command started")

	return nil
}

func (st *rootState) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()

	var (
		cfg *config.Config
		err error
	)
	if st.configPath != "" {
		path, expandErr := config.ExpandPath(st.configPath)
		if expandErr != nil {
			return nil, fmt.Errorf("invalid config path: %w", expandErr)
		}
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(FlagDataDir) {
		dir, err := config.ExpandPath(st.dataDir)
		if err != nil {
			return nil, fmt.Errorf("invalid data directory: %w", err)
		}
		cfg.DataDir = dir
	}
	if flags.Changed(FlagNoColor) && st.noColor {
		cfg.Output.Color = false
	}
	if flags.Changed(FlagQuiet) {
		cfg.Output.Quiet = st.quiet
	}
	if flags.Changed(FlagVerbose) {
		cfg.Output.Verbose = st.verbose
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
