package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding flags, e.g.
// PNGCHUNKS_OUTPUT_DIRECTORY.
const EnvPrefix = "PNGCHUNKS"

const (
	flagVerbose   = "verbose"
	flagExtract   = "extract-chunks"
	flagDump      = "dump-chunks"
	flagOutputDir = "output-directory"
	flagNoSummary = "no-summary"
	flagSilent    = "silent"
	flagKeepGoing = "keep-going"
	flagJobs      = "jobs"
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagNoColor   = "no-color"
	flagVersion   = "version"
)

// Config is everything a run needs, resolved from flags, environment and
// the optional config file, in that order of precedence.
type Config struct {
	Files     []string
	Verbose   bool
	Extract   []string
	Dump      []string
	OutputDir string
	NoSummary bool
	Silent    bool
	KeepGoing bool
	Jobs      int
	LogLevel  string
	NoColor   bool
	Version   bool
}

func bindFlags(cmd *cobra.Command) {
	ff := cmd.Flags()
	ff.BoolP(flagVerbose, "v", false, "describe every chunk")
	ff.StringSliceP(flagExtract, "e", nil, "write the payload of chunks with these tags to files")
	ff.StringSliceP(flagDump, "d", nil, "hex dump the payload of chunks with these tags")
	ff.StringP(flagOutputDir, "o", ".", "directory for extracted chunks")
	ff.Bool(flagNoSummary, false, "do not print the chunk table")
	ff.BoolP(flagSilent, "s", false, "print nothing on stdout")
	ff.Bool(flagKeepGoing, false, "continue with the next file after a failure")
	ff.IntP(flagJobs, "j", runtime.NumCPU(), "number of files parsed in parallel")
	ff.String(flagConfig, "", "YAML config file")
	ff.String(flagLogLevel, "info", "log level (debug, info, warn, error)")
	ff.Bool(flagNoColor, false, "disable colored output")
	ff.Bool(flagVersion, false, "print version and exit")
}

func loadConfig(cmd *cobra.Command, args []string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if name := v.GetString(flagConfig); name != "" {
		path, err := homedir.Expand(name)
		if err != nil {
			return Config{}, fmt.Errorf("config path: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	outDir, err := homedir.Expand(v.GetString(flagOutputDir))
	if err != nil {
		return Config{}, fmt.Errorf("output directory: %w", err)
	}

	cfg := Config{
		Files:     splitList(args),
		Verbose:   v.GetBool(flagVerbose),
		Extract:   splitList(v.GetStringSlice(flagExtract)),
		Dump:      splitList(v.GetStringSlice(flagDump)),
		OutputDir: outDir,
		NoSummary: v.GetBool(flagNoSummary),
		Silent:    v.GetBool(flagSilent),
		KeepGoing: v.GetBool(flagKeepGoing),
		Jobs:      v.GetInt(flagJobs),
		LogLevel:  v.GetString(flagLogLevel),
		NoColor:   v.GetBool(flagNoColor),
		Version:   v.GetBool(flagVersion),
	}
	if cfg.Jobs < 1 {
		return Config{}, fmt.Errorf("--%s must be at least 1, got %d", flagJobs, cfg.Jobs)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}

// splitList flattens comma-separated values, dropping empty entries.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func tagSet(tags []string) map[string]bool {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}
