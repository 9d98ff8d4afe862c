// The gfdtool command inspects, verifies, and bundles GFD files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/gfdtools/gfdfile/gfd"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app is the state shared by all commands.
type app struct {
	viper      *viper.Viper
	configFile string
	config     *Config
	logger     *log.Logger

	// Failures to bind flags, reported when a command runs.
	bindErr error
}

// bind binds the flag of fs with the given name to a configuration key.
func (a *app) bind(key string, fs *pflag.FlagSet, name string) {
	if err := a.viper.BindPFlag(key, fs.Lookup(name)); err != nil {
		a.bindErr = errors.Union(a.bindErr, fmt.Errorf("bind flag %q to %s: %w", name, key, err))
	}
}

func (a *app) decoder() gfd.Decoder {
	return a.config.Decoder(a.logger)
}

func (a *app) encoder() gfd.Encoder {
	return gfd.Encoder{Logger: a.logger}
}

func newRootCommand() *cobra.Command {
	return (&app{viper: newViper()}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gfdtool",
		Short: "Inspect, verify, and bundle GFD files",
		Long: `gfdtool reads and writes files in the GFD binary resource format.

Settings are read from gfdtool.toml in the working directory, from GFDTOOL_
environment variables (for example GFDTOOL_DECODE_STRICT=true), and from flags,
with flags taking precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.bindErr != nil {
				return a.bindErr
			}
			cfg, err := loadConfig(a.viper, a.configFile)
			if err != nil {
				return err
			}
			a.config = cfg
			a.logger = cfg.Logger()
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a configuration file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("strict", false, "treat decode warnings as errors")
	flags.Bool("skip-unknown", false, "keep chunks of unknown kinds instead of failing")
	flags.Int("max-depth", gfd.DefaultMaxDepth, "maximum nesting of resources")
	a.bind("log.level", flags, "log-level")
	a.bind("decode.strict", flags, "strict")
	a.bind("decode.skip_unknown", flags, "skip-unknown")
	a.bind("decode.max_depth", flags, "max-depth")

	cmd.AddCommand(
		newDumpCommand(a),
		newRecodeCommand(a),
		newVerifyCommand(a),
		newStatCommand(a),
		newPackCommand(a),
		newUnpackCommand(a),
		newWatchCommand(a),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// openInput opens the file at path for reading. If path is "-" or empty,
// stdin is used.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return in, nil
}

// output is a file opened for writing by createOutput.
type output struct {
	io.Writer
	file *os.File
}

// Close syncs and closes the file.
func (o output) Close() error {
	if o.file == nil {
		return nil
	}
	if err := o.file.Sync(); err != nil {
		o.file.Close()
		return fmt.Errorf("sync output: %w", err)
	}
	return o.file.Close()
}

// createOutput creates the file at path for writing. If path is "-" or
// empty, stdout is used.
func createOutput(path string) (output, error) {
	if path == "" || path == "-" {
		return output{Writer: os.Stdout}, nil
	}
	out, err := os.Create(path)
	if err != nil {
		return output{}, fmt.Errorf("create output: %w", err)
	}
	return output{Writer: out, file: out}, nil
}

// argAt returns the argument at i, or "-" if there is none.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "-"
}
