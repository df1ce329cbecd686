package portset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CLIConfig struct {
	Port         int
	ConfigPath   string
	Check        bool
	Diff         bool
	JSON         bool
	AllowMissing bool
	Undo         bool
	Redo         bool
	CopyDiff     bool
	ReloadNvim   bool
	SettingsPath string
	Verbose      bool
	Completion   string
}

func NewRootCmd() *cobra.Command {
	cfg := &CLIConfig{}

	cmd := &cobra.Command{
		Use:   "portset",
		Short: "Set the port of the first listen directive in an nginx config.",
		Long: `Rewrite the first "listen <port>;" directive of a config file to the given port.
The file is only written when the port actually differs.

Example: portset -p 8443 -c /etc/nginx/conf.d/web.conf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Completion != "" {
				return handleCompletion(cmd, cfg.Completion)
			}
			err := runCLI(cmd, cfg)
			if err != nil && cfg.JSON {
				_ = writeJSON(cmd.OutOrStdout(), failure{Failed: true, Msg: err.Error()})
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVarP(&cfg.Port, "port", "p", 0, "Desired listen port")
	f.StringVarP(&cfg.ConfigPath, "config", "c", "", "Config file to rewrite (default "+DefaultConfigPath+")")
	f.BoolVarP(&cfg.Check, "check", "n", false, "Report what would change without writing")
	f.BoolVarP(&cfg.Diff, "diff", "d", false, "Print a unified diff of the change")
	f.BoolVar(&cfg.JSON, "json", false, "Print the result as JSON")
	f.BoolVar(&cfg.AllowMissing, "allow-missing", false, "Succeed without change when no listen directive exists")
	f.BoolVarP(&cfg.Undo, "undo", "u", false, "Restore the content before the last rewrite")
	f.BoolVarP(&cfg.Redo, "redo", "r", false, "Re-apply the last undone rewrite")
	f.BoolVar(&cfg.CopyDiff, "copy-diff", false, "Copy the diff to the clipboard")
	f.BoolVar(&cfg.ReloadNvim, "reload-nvim", false, "Reload buffers in the Neovim at NVIM_LISTEN_ADDRESS")
	f.StringVar(&cfg.SettingsPath, "settings", "", "YAML settings file")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Debug logging")
	f.StringVar(&cfg.Completion, "completion", "", "Generate completion script")

	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	return cmd
}

func runCLI(cmd *cobra.Command, cfg *CLIConfig) error {
	history := cfg.Undo || cfg.Redo
	switch {
	case cfg.Undo && cfg.Redo:
		return errors.New("--undo and --redo are mutually exclusive")
	case history && cfg.Check:
		return errors.New("--undo/--redo and --check are mutually exclusive")
	case history && cmd.Flags().Changed("port"):
		return errors.New("--port cannot be combined with --undo/--redo")
	case !history && !cmd.Flags().Changed("port"):
		return errors.New(`required flag "port" not set`)
	}

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("config") {
		settings.ConfigPath = cfg.ConfigPath
	}
	if cmd.Flags().Changed("allow-missing") {
		settings.AllowMissing = cfg.AllowMissing
	}

	logger, err := newLogger(settings.LogLevel, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	appCfg := &Config{
		StateDir: settings.StateDir,
		WithDiff: cfg.Diff || cfg.CopyDiff,
		Logger:   logger,
	}
	if cfg.ReloadNvim {
		appCfg.Reloader = NewNvimReloader()
	}

	app, err := NewApp(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	out := cmd.OutOrStdout()
	if history {
		step := app.Undo
		if cfg.Redo {
			step = app.Redo
		}
		s, err := step(settings.ConfigPath)
		if err != nil {
			return err
		}
		if cfg.JSON {
			return writeJSON(out, s)
		}
		fmt.Fprint(out, FormatSummary(s))
		return nil
	}

	res, err := app.Run(Request{
		Port:         cfg.Port,
		ConfigPath:   settings.ConfigPath,
		Check:        cfg.Check,
		AllowMissing: settings.AllowMissing,
	})
	if err != nil {
		return err
	}

	if cfg.CopyDiff {
		if err := CopyToClipboard(res.Diff); err != nil {
			logger.Warn("clipboard copy failed", zap.Error(err))
		}
		if !cfg.Diff {
			res.Diff = ""
		}
	}

	if cfg.JSON {
		return writeJSON(out, res)
	}
	fmt.Fprint(out, FormatOutcome(res, cfg.Check))
	return nil
}

type failure struct {
	Failed bool   `json:"failed"`
	Msg    string `json:"msg"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		zc.Level = lvl
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func handleCompletion(cmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
	case "zsh":
		return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported shell for completion: %s", shell)
	}
}

func Execute() error {
	return NewRootCmd().Execute()
}
