package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autobrr/go-pngchunks/internal/png"
	"github.com/autobrr/go-pngchunks/internal/report"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errFilesFailed is returned by the command when at least one file could not
// be parsed or reported. The failures themselves are already logged.
var errFilesFailed = errors.New("one or more files failed")

// Run executes the command line tool and returns the process exit code.
// args includes the program name, as os.Args does.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(stdout, stderr)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs([]string{})
	}

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFilesFailed):
		return exitFailure
	default:
		fmt.Fprintf(stderr, "pngchunks: %v\n", err)
		return exitUsage
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pngchunks [flags] FILE [FILE...]",
		Short:         "List and inspect the chunks of PNG files",
		Long:          `pngchunks walks the chunk chain of each PNG file, prints a table of the chunks found and optionally describes, dumps or extracts them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cfg.Version {
				Version(stdout)
				return nil
			}
			if len(cfg.Files) == 0 {
				return errors.New("no input files")
			}
			log, err := newLogger(stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return execute(cfg, stdout, log)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd)
	return cmd
}

func execute(cfg Config, stdout io.Writer, log *zap.Logger) error {
	results, err := parseFiles(cfg.Files, cfg.Jobs, log)
	if err != nil {
		return err
	}
	defer closeAll(results)

	st := report.NewStyle(colorEnabled(stdout, cfg.NoColor))
	extract := tagSet(cfg.Extract)
	dump := tagSet(cfg.Dump)

	failed := false
	for _, r := range results {
		err := r.err
		if err == nil {
			err = emit(cfg, stdout, st, r, dump, log)
		}
		if err == nil {
			err = extractChunks(cfg.OutputDir, r.name, r.carrier, extract, log)
		}
		if err != nil {
			failed = true
			log.Error("file failed",
				zap.String("file", r.name),
				zap.String("category", category(err)),
				zap.Error(err),
			)
			if !cfg.KeepGoing {
				break
			}
		}
	}
	if failed {
		return errFilesFailed
	}
	return nil
}

func emit(cfg Config, w io.Writer, st report.Style, r parsed, dump map[string]bool, log *zap.Logger) error {
	if cfg.Silent {
		return nil
	}
	if err := report.FileTitle(w, st, r.name); err != nil {
		return err
	}
	for _, ch := range r.carrier.Chunks() {
		if cfg.Verbose {
			if err := report.RenderChunk(w, st, ch); err != nil {
				return err
			}
		}
		if len(dump) == 0 {
			continue
		}
		tag, err := ch.Tag()
		if err != nil {
			return err
		}
		if dump[tag] {
			if err := report.RenderDump(w, st, ch); err != nil {
				return err
			}
		}
	}
	if cfg.NoSummary {
		return nil
	}
	log.Debug("rendering summary", zap.String("file", r.name))
	return report.RenderSummary(w, st, r.carrier)
}

func category(err error) string {
	switch {
	case errors.Is(err, png.ErrIO):
		return "io"
	case png.IsFormatError(err):
		return "format"
	default:
		return "internal"
	}
}
