package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-popup-files/internal/app"
	"github.com/atomicstack/tmux-popup-files/internal/pathparse"
	"github.com/atomicstack/tmux-popup-files/internal/tree"
)

// ErrUnknownMode is returned when the start mode is neither browse nor path.
var ErrUnknownMode = errors.New("unknown mode")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig mirrors the optional YAML file. Empty values leave the
// built-in default in place.
type fileConfig struct {
	Root      string   `yaml:"root"`
	Mode      string   `yaml:"mode"`
	Hidden    bool     `yaml:"hidden"`
	Ignore    []string `yaml:"ignore"`
	MaxDepth  int      `yaml:"max_depth"`
	Editor    string   `yaml:"editor"`
	Print     bool     `yaml:"print"`
	NewPath   bool     `yaml:"new_path"`
	PathStyle string   `yaml:"path_style"`
	Width     int      `yaml:"width"`
	Height    int      `yaml:"height"`
	Footer    bool     `yaml:"footer"`
	Watch     bool     `yaml:"watch"`
	Verbose   bool     `yaml:"verbose"`
	LogFile   string   `yaml:"log_file"`
	Trace     bool     `yaml:"trace"`
}

const (
	envPrefix     = "TMUX_POPUP_FILES_"
	envConfig     = envPrefix + "CONFIG"
	envRoot       = envPrefix + "ROOT"
	envMode       = envPrefix + "MODE"
	envPathHint   = envPrefix + "PATH_HINT"
	envHidden     = envPrefix + "HIDDEN"
	envIgnore     = envPrefix + "IGNORE"
	envMaxDepth   = envPrefix + "MAX_DEPTH"
	envEditor     = envPrefix + "EDITOR"
	envPrint      = envPrefix + "PRINT"
	envNewPath    = envPrefix + "NEW_PATH"
	envPathStyle  = envPrefix + "PATH_STYLE"
	envSocketPath = envPrefix + "SOCKET"
	envWidth      = envPrefix + "WIDTH"
	envHeight     = envPrefix + "HEIGHT"
	envShowFooter = envPrefix + "FOOTER"
	envWatch      = envPrefix + "WATCH"
	envVerbose    = envPrefix + "VERBOSE"
	envTrace      = envPrefix + "TRACE"
	envLogFile    = envPrefix + "LOG_FILE"
)

var modes = []string{app.ModeBrowse, app.ModePath}

var pathStyles = []string{"local", "posix", "windows"}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags win over
// environment variables, which win over the YAML file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := envOrDefault(env, envConfig, "")
	if p, ok := scanConfigFlag(args); ok {
		configPath = p
	}
	file, err := readFile(configPath)
	if err != nil {
		return Config{}, err
	}

	fs := pflag.NewFlagSet("tmux-popup-files", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	var (
		cfg     Config
		appCfg  = &cfg.App
		logCfg  = &cfg.Logging
		cfgFile string
		editors = []string{env["VISUAL"], env["EDITOR"], "vi"}
	)
	fs.StringVar(&cfgFile, "config", configPath, "path to a YAML configuration file")
	fs.StringVarP(&appCfg.Root, "root", "r", envOrDefault(env, envRoot, file.Root), "directory to browse (defaults to the working directory)")
	fs.StringVarP(&appCfg.Mode, "mode", "m", envOrDefault(env, envMode, orString(file.Mode, app.ModeBrowse)), "start mode: browse or path")
	fs.StringVarP(&appCfg.PathHint, "path", "p", envOrDefault(env, envPathHint, ""), "file or directory to reveal on start")
	fs.BoolVarP(&appCfg.ShowHidden, "hidden", "a", envOrBool(env, envHidden, file.Hidden), "show dotfiles")
	fs.StringSliceVar(&appCfg.Ignore, "ignore", envOrList(env, envIgnore, file.Ignore), "glob of paths to skip while scanning (repeatable)")
	fs.IntVar(&appCfg.MaxDepth, "max-depth", envOrInt(env, envMaxDepth, file.MaxDepth), "maximum scan depth (0 is unlimited)")
	fs.StringVarP(&appCfg.Editor, "editor", "e", envOrDefault(env, envEditor, orString(file.Editor, firstNonEmpty(editors...))), "command used to open files")
	fs.BoolVar(&appCfg.Print, "print", envOrBool(env, envPrint, file.Print), "print the chosen path instead of opening it")
	fs.BoolVar(&appCfg.CreatePaths, "new-path", envOrBool(env, envNewPath, file.NewPath), "offer paths that do not exist yet in path mode")
	fs.StringVar(&appCfg.PathStyle, "path-style", envOrDefault(env, envPathStyle, orString(file.PathStyle, "local")), "path convention: local, posix or windows")
	fs.StringVar(&appCfg.SocketPath, "socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	fs.IntVar(&appCfg.Width, "width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&appCfg.Height, "height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&appCfg.ShowFooter, "footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row (disabled by default)")
	fs.BoolVarP(&appCfg.Watch, "watch", "w", envOrBool(env, envWatch, file.Watch), "rescan the tree when files change")
	fs.BoolVar(&appCfg.Verbose, "verbose", envOrBool(env, envVerbose, file.Verbose), "print success messages for actions")
	fs.BoolVar(&logCfg.Trace, "trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	fs.StringVar(&logCfg.FilePath, "log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, fmt.Errorf("%w\n%s", err, fs.FlagUsages())
		}
		return Config{}, err
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one path argument (got %d)", fs.NArg())
	}
	if fs.NArg() == 1 && !fs.Changed("path") {
		appCfg.PathHint = fs.Arg(0)
	}
	appCfg.Mode = strings.ToLower(strings.TrimSpace(appCfg.Mode))

	cfg.Flags = make(map[string]string)
	fs.VisitAll(func(f *pflag.Flag) {
		cfg.Flags[f.Name] = f.Value.String()
	})
	cfg.Args = append([]string(nil), args...)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func scanConfigFlag(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, true
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrList(env map[string]string, key string, fallback []string) []string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(os.Stdout, "Usage: tmux-popup-files [flags] [path]\n%s", strings.TrimPrefix(err.Error(), pflag.ErrHelp.Error()+"\n"))
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.MaxDepth < 0 {
		return fmt.Errorf("max-depth must be >= 0 (got %d)", a.MaxDepth)
	}
	if !contains(modes, a.Mode) {
		return fmt.Errorf("%w %q%s", ErrUnknownMode, a.Mode, suggest(a.Mode, modes))
	}
	if _, err := pathparse.ParseStyle(a.PathStyle); err != nil {
		return fmt.Errorf("%w%s", err, suggest(a.PathStyle, pathStyles))
	}
	if _, err := tree.CompileIgnore(a.Ignore); err != nil {
		return err
	}
	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// suggest ranks options against an unknown value and formats the closest
// one as a hint.
func suggest(value string, options []string) string {
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(value), options)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
		}
	}
	return fmt.Sprintf(" (did you mean %q?)", best.Target)
}
