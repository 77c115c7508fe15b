package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/piwi3910/ShelfSort/internal/api"
	"github.com/piwi3910/ShelfSort/internal/config"
	"github.com/piwi3910/ShelfSort/internal/engine"
	"github.com/piwi3910/ShelfSort/internal/export"
	"github.com/piwi3910/ShelfSort/internal/importer"
	"github.com/piwi3910/ShelfSort/internal/model"
	"github.com/piwi3910/ShelfSort/internal/project"
	"github.com/piwi3910/ShelfSort/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageText = `Usage: shelfsort <command> [flags]

Commands:
  sort <file>      place the games from a CSV, Excel or collection file
  compare <file>   sort the same games under every placement and rotation
  presets          list the shelf presets in the inventory
  serve            run the HTTP API

Run "shelfsort <command> --help" for the flags of a command.
`

// env carries what every command needs once flags and config are resolved.
type env struct {
	cfg       *config.Config
	log       *logger.Logger
	inventory model.Inventory
	args      []string
	stdout    io.Writer
	stderr    io.Writer
}

type sortFlags struct {
	pdf    string
	labels string
	save   string
	chart  string
	format string
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return exitOK
	case "version", "--version":
		fmt.Fprintln(stdout, version)
		return exitOK
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)

	var sf sortFlags
	switch name {
	case "sort":
		fs.StringVar(&sf.pdf, "pdf", "", "write a shelf plan PDF to this path")
		fs.StringVar(&sf.labels, "labels", "", "write a QR label sheet PDF to this path")
		fs.StringVar(&sf.save, "save", "", "save the collection and result as JSON to this path")
		fs.StringVar(&sf.format, "format", "text", "output format: text or json")
	case "compare":
		fs.StringVar(&sf.chart, "chart", "", "write an HTML comparison chart to this path")
		fs.StringVar(&sf.format, "format", "text", "output format: text or json")
	case "presets", "serve":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usageText)
		return exitUsage
	}

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	e, err := setup(fs, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer e.log.Sync()

	switch name {
	case "sort":
		err = runSort(e, sf)
	case "compare":
		err = runCompare(e, sf)
	case "presets":
		err = runPresets(e)
	case "serve":
		err = runServe(e)
	}

	var usageErr usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func setup(fs *pflag.FlagSet, stdout, stderr io.Writer) (*env, error) {
	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
		Output:      stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	invPath := project.InventoryPath(cfg.App.DataDir)
	inv, err := project.LoadInventory(invPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory %s: %w", invPath, err)
	}

	return &env{
		cfg:       cfg,
		log:       log,
		inventory: inv,
		args:      fs.Args(),
		stdout:    stdout,
		stderr:    stderr,
	}, nil
}

// settings resolves the run settings, applying the preset named in the
// configuration if any.
func (e *env) settings() (model.SortSettings, error) {
	s, err := e.cfg.Sort.Settings()
	if err != nil {
		return model.SortSettings{}, err
	}
	if e.cfg.Sort.Preset == "" {
		return s, nil
	}
	preset := e.inventory.FindByName(e.cfg.Sort.Preset)
	if preset == nil {
		preset = e.inventory.FindByID(e.cfg.Sort.Preset)
	}
	if preset == nil {
		return model.SortSettings{}, fmt.Errorf("unknown shelf preset %q (have: %s)",
			e.cfg.Sort.Preset, strings.Join(e.inventory.Names(), ", "))
	}
	preset.ApplyTo(&s)
	return s, s.Validate()
}

// loadGames reads the single input file argument. Import warnings are
// logged; any row error fails the load.
func (e *env) loadGames() ([]model.Game, string, error) {
	if len(e.args) != 1 {
		return nil, "", usageError("expected exactly one input file")
	}
	path := e.args[0]
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), ".json") {
		c, err := project.LoadCollection(path)
		if err != nil {
			return nil, "", err
		}
		return c.Games, c.Name, nil
	}

	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		e.log.Warn("import warning", "file", path, "detail", w)
	}
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			e.log.Error("import error", "file", path, "detail", msg)
		}
		return nil, "", fmt.Errorf("%s: %d row(s) could not be imported", path, len(result.Errors))
	}
	e.log.Info("games imported", "file", path, "games", len(result.Games))
	return result.Games, name, nil
}

// checkFormat rejects an output format before any file is written.
func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return usageError(fmt.Sprintf("unknown format %q", format))
	}
	return nil
}

func runSort(e *env, sf sortFlags) error {
	if err := checkFormat(sf.format); err != nil {
		return err
	}
	settings, err := e.settings()
	if err != nil {
		return err
	}
	games, name, err := e.loadGames()
	if err != nil {
		return err
	}

	result, err := engine.New(settings, engine.WithLogger(e.log.ZapLogger())).Run(games)
	if err != nil {
		e.log.Warn("sort failed", "game", engine.GameName(err))
		return err
	}
	e.log.Info("sort completed",
		"games", result.GameCount(),
		"shelves_used", result.ShelvesUsed(),
		"placement", settings.Placement.String(),
		"rotation", settings.Rotation.String(),
	)

	if sf.pdf != "" {
		if err := export.ExportPDF(sf.pdf, result); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		e.log.Info("shelf plan written", "path", sf.pdf)
	}
	if sf.labels != "" {
		if err := export.ExportLabels(sf.labels, result); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		e.log.Info("labels written", "path", sf.labels)
	}
	if sf.save != "" {
		c := model.Collection{Name: name, Games: games, Settings: settings, Result: &result}
		if err := project.SaveCollection(sf.save, c); err != nil {
			return err
		}
		e.log.Info("collection saved", "path", sf.save)
	}

	switch sf.format {
	case "json":
		return writeJSON(e.stdout, result)
	case "text":
		return printResult(e.stdout, result)
	default:
		return usageError(fmt.Sprintf("unknown format %q", sf.format))
	}
}

func printResult(w io.Writer, result model.SortResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, shelf := range result.Shelves {
		fmt.Fprintf(tw, "Shelf %d (%.0f x %.0f mm, %.0f mm used)\n", i+1, shelf.Width, shelf.Height, shelf.UsedDepth())
		for j, g := range shelf.Games {
			fmt.Fprintf(tw, "  %s\t%.0fx%.0fx%.0f\t%s\n",
				g.Name, g.Width, g.Height, g.Depth, shelf.Orientation(j, result.Settings.Placement))
		}
	}
	fmt.Fprintf(tw, "%d of %d shelves used, %d games, %.1f%% full\n",
		result.ShelvesUsed(), len(result.Shelves), result.GameCount(), result.FillPercent())
	return tw.Flush()
}

func runCompare(e *env, sf sortFlags) error {
	if err := checkFormat(sf.format); err != nil {
		return err
	}
	settings, err := e.settings()
	if err != nil {
		return err
	}
	games, _, err := e.loadGames()
	if err != nil {
		return err
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), games,
		engine.WithLogger(e.log.ZapLogger()))

	if sf.chart != "" {
		if err := export.ExportComparisonChart(sf.chart, results); err != nil {
			return err
		}
		e.log.Info("wrote comparison chart", "path", sf.chart)
	}

	switch sf.format {
	case "json":
		type row struct {
			Name        string  `json:"name"`
			OK          bool    `json:"ok"`
			ShelvesUsed int     `json:"shelves_used"`
			FillPercent float64 `json:"fill_percent"`
			Error       string  `json:"error,omitempty"`
		}
		rows := make([]row, 0, len(results))
		for _, r := range results {
			rw := row{Name: r.Scenario.Name, OK: r.OK(), ShelvesUsed: r.ShelvesUsed, FillPercent: r.FillPercent}
			if r.Err != nil {
				rw.Error = r.Err.Error()
			}
			rows = append(rows, rw)
		}
		return writeJSON(e.stdout, rows)
	case "text":
		tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SCENARIO\tSHELVES\tFILL\tRESULT")
		for _, r := range results {
			status := "ok"
			if r.Err != nil {
				status = r.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%s\n", r.Scenario.Name, r.ShelvesUsed, r.FillPercent, status)
		}
		return tw.Flush()
	default:
		return usageError(fmt.Sprintf("unknown format %q", sf.format))
	}
}

func runPresets(e *env) error {
	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWIDTH\tHEIGHT")
	for _, p := range e.inventory.Shelves {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\n", p.ID, p.Name, p.Width, p.Height)
	}
	return tw.Flush()
}

func runServe(e *env) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := e.cfg.Server
	addr := fmt.Sprintf("%s:%d", srv.Host, srv.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(srv, e.log, api.WithInventory(e.inventory), api.WithVersion(version)),
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("HTTP server starting", "address", addr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	e.log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		e.log.Error("Server forced to shutdown", "error", err)
		return err
	}
	e.log.Info("Server shutdown complete")
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
