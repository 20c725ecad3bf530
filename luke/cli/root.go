// Package cli implements the luke-commits CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/balzaczyy/goluke/core/store"
	"github.com/balzaczyy/goluke/luke/app"
	"github.com/balzaczyy/goluke/luke/config"
	"github.com/balzaczyy/goluke/luke/models/commits"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("cli")

var (
	indexPath  string
	configPath string
	formatFlag string
	logLevel   string

	conf *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "luke-commits",
	Short: "Inspect the commit history of a Lucene index",
	Long: "Lists the commit points of a Lucene index directory and shows, for each commit, " +
		"its files, its segments and the codec of every segment. The index is never modified.\n\n" +
		"Commits written by Lucene 4.6 to 5.x are decoded. Codecs up to Lucene99 are known by name, " +
		"but a commit written by Lucene 6.2 or later is reported as corrupt.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&indexPath, "index", "i", "", "Index directory (default: current directory)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $"+config.ENV_CONFIG+" or ~/"+config.DEFAULT_FILENAME+")")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text or json")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, NOTICE, WARNING, ERROR or CRITICAL")
}

// Loads the configuration, lets flags override it and sets up logging.
func setup(cmd *cobra.Command, args []string) (err error) {
	if conf, err = config.Load(configPath); err != nil {
		return err
	}
	if formatFlag != "" {
		conf.Format = formatFlag
	}
	if logLevel != "" {
		conf.LogLevel = logLevel
	}
	if err = conf.Validate(); err != nil {
		return err
	}
	level, _ := conf.Level()
	setupLogging(cmd.ErrOrStderr(), level)
	if conf.Source != "" {
		log.Debugf("Loaded config from %v", conf.Source)
	}
	return nil
}

func setupLogging(w io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		"%{time:15:04:05.000} %{module} %{level:.4s} %{message}"))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}

// An index directory and the commits model built over it.
type session struct {
	dir     store.Directory
	commits commits.Commits
}

func (s *session) Close() error {
	return s.dir.Close()
}

func openSession() (*session, error) {
	path := indexPath
	if path == "" {
		path = "."
	}
	dir, err := store.OpenFSDirectory(path)
	if err != nil {
		return nil, err
	}
	holder := app.NewCommitsHolder(commits.WithDeletionPolicy(conf.Policy()))
	if err = holder.OnDirectoryOpened(dir, path); err != nil {
		dir.Close()
		return nil, err
	}
	for _, w := range holder.Current().Warnings() {
		log.Warningf("%v", w)
	}
	return &session{dir, holder.Current()}, nil
}

func parseGeneration(arg string) (int64, error) {
	gen, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || gen < 0 {
		return 0, fmt.Errorf("invalid generation %q", arg)
	}
	return gen, nil
}

// Fails unless the generation was listed.
func checkGeneration(m commits.Commits, gen int64) error {
	if _, ok := m.GetCommit(gen); !ok {
		return &commits.UnknownGenerationError{Generation: gen}
	}
	return nil
}

func isJSON() bool {
	return conf.Format == config.FORMAT_JSON
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// Exit code for err: 2 for usage problems, 1 otherwise.
func ExitCode(err error) int {
	var uge *commits.UnknownGenerationError
	if errors.As(err, &uge) {
		return 2
	}
	return 1
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitCode(err))
	}
}
