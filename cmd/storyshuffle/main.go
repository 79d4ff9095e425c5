package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storyshuffle/internal/adapters/clipboard"
	"storyshuffle/internal/adapters/editor"
	"storyshuffle/internal/adapters/filesystem"
	"storyshuffle/internal/adapters/sqlite"
	"storyshuffle/internal/adapters/tui"
	"storyshuffle/internal/adapters/watcher"
	"storyshuffle/internal/application"
	"storyshuffle/internal/application/commands"
	"storyshuffle/internal/buildinfo"
	"storyshuffle/internal/config"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/logging"
	"storyshuffle/internal/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := flag.String("config", "", "config file (default .storyshuffle.toml)")
	projectFlag := flag.String("project", "", "project name (default: the manuscript file name)")
	outFlag := flag.String("out", "", "default output file for the shuffled manuscript")
	dataDirFlag := flag.String("data-dir", "", "directory holding the project database")
	versionFlag := flag.Bool("version", false, "print build information and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: storyshuffle [flags] [manuscript]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *versionFlag {
		fmt.Println(buildinfo.String())
		return nil
	}
	if flag.NArg() > 1 {
		flag.Usage()
		return errors.New("at most one manuscript file")
	}
	manuscriptPath := flag.Arg(0)

	if err := config.Init(*cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dataDirFlag != "" {
		cfg.DataDir = config.ExpandHome(*dataDirFlag)
	}

	logger := logging.Discard()
	if cfg.LogFile != "" {
		l, closer, err := logging.OpenFile(cfg.LogFile, logging.Level(cfg.Verbose))
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l
	}
	ctx := logging.WithLogger(context.Background(), logger)

	store, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	source := filesystem.NewManuscripts()
	name := projectName(*projectFlag, manuscriptPath)
	s, err := openSession(ctx, store, source, cfg, name, manuscriptPath)
	if err != nil {
		return err
	}
	logger.Info("session opened", "project", s.Name(), "sections", s.Len(), "file", manuscriptPath)

	deps := tui.Deps{
		Store:          store,
		Source:         source,
		Editor:         editor.NewOpener(),
		ManuscriptPath: manuscriptPath,
		OutputPath:     *outFlag,
	}
	if sys := clipboard.NewSystem(); sys.Available() {
		deps.Clipboard = sys
	}
	if manuscriptPath != "" {
		w, err := watcher.New(manuscriptPath, watcher.DefaultDebounce)
		if err != nil {
			logger.Warn("manuscript changes will not be picked up", "err", err)
		} else {
			defer w.Close()
			deps.Watcher = w
		}
	}

	app := tui.NewApp(ctx, s, deps)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return app.Err()
}

// projectName picks the project a session is saved under: the flag, or the
// manuscript's base name when that makes a valid name.
func projectName(flagValue, manuscriptPath string) string {
	if flagValue != "" {
		return flagValue
	}
	if manuscriptPath == "" {
		return ""
	}
	base := filepath.Base(manuscriptPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if !domain.ValidProjectName(name) {
		return ""
	}
	return name
}

// openSession restores the named project when it exists and loads the
// manuscript file over it when the file's text differs.
func openSession(ctx context.Context, store ports.ProjectStore, source ports.ManuscriptSource, cfg config.Config, name, manuscriptPath string) (*application.Session, error) {
	opts := []application.SessionOption{
		application.WithLogger(logging.FromContext(ctx)),
		application.WithDelimiter(cfg.DefaultDelimiter()),
	}
	if cfg.Seed != 0 {
		opts = append(opts, application.WithRand(domain.NewSeededRand(cfg.Seed)))
	}

	var s *application.Session
	if name != "" {
		loaded, err := commands.NewLoadSessionCommand(store, name, opts...).Execute(ctx)
		switch {
		case err == nil:
			s = loaded
		case errors.Is(err, application.ErrNotFound):
		default:
			return nil, err
		}
	}
	if s == nil {
		if manuscriptPath == "" {
			if name != "" {
				return nil, fmt.Errorf("project %s not found; pass a manuscript file to create it", name)
			}
			return nil, errors.New("no manuscript: pass a file or --project")
		}
		s = application.NewSession(opts...)
		s.SetName(name)
	}

	if manuscriptPath == "" {
		return s, nil
	}
	text, err := source.Read(manuscriptPath)
	if err != nil {
		return nil, err
	}
	if text != s.Manuscript() {
		// A delimiter error is shown in the editor, not fatal
		_ = s.SetManuscript(text)
	}
	return s, nil
}
