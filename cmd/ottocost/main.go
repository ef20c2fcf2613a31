// OttoCost prices recipes against supplier catalogs and totals their
// nutrients.
//
// Usage:
//
//	ottocost [-verbose] [-quiet] [-format text|yaml] [-recipe NAMES] [-cache]
//	ottocost -convert "1 1/2 cups" -to ml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottocost/internal/catalog"
	"github.com/hammamikhairi/ottocost/internal/display"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/engine"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/storage"
	"github.com/hammamikhairi/ottocost/internal/units"
)

// Environment variables that provide flag defaults.
const (
	EnvFormat   = "OTTOCOST_FORMAT"
	EnvCache    = "OTTOCOST_CACHE"
	EnvCatalog  = "OTTOCOST_CATALOG"
	EnvLogLevel = "OTTOCOST_LOG_LEVEL"
)

var errUsage = errors.New("usage")

type config struct {
	format  string
	recipes []string
	cache   bool
	catalog string
	convert string
	to      string
	banner  int // banner width, 0 for none
}

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logLevelName := flag.String("log-level", os.Getenv(EnvLogLevel), "log level: off, normal or verbose (-verbose and -quiet take precedence)")
	logFile := flag.String("log-file", "stderr", "file to write logs to (\"stderr\" logs to console)")
	format := flag.String("format", envOr(EnvFormat, "text"), "output format: text or yaml")
	recipes := flag.String("recipe", "", "comma-separated recipe names to summarize (default all)")
	cache := flag.Bool("cache", envBool(EnvCache), "cache conversion search trees per source unit")
	catalogPath := flag.String("catalog", os.Getenv(EnvCatalog), "YAML catalog file (default built-in catalog)")
	convert := flag.String("convert", "", "convert a quantity such as \"2 cups\" instead of summarizing")
	to := flag.String("to", "", "target unit for -convert")
	flag.Parse()

	logLevel, err := resolveLevel(*logLevelName, *verbose, *quiet)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		if dir := filepath.Dir(*logFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	log := logger.New(logLevel, logOut)
	log.Debug("log level %s", logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config{
		format:  *format,
		recipes: splitNames(*recipes),
		cache:   *cache,
		catalog: *catalogPath,
		convert: *convert,
		to:      *to,
	}
	if *format == "text" && *convert == "" {
		cfg.banner = display.TerminalWidth(os.Stdout.Fd())
	}

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
		} else {
			fmt.Fprint(os.Stderr, display.Error(err))
		}
		stop()
		os.Exit(1)
	}
}

// run wires the catalog, conversion graph and engine, then writes either a
// recipe summary or a single conversion to w.
func run(ctx context.Context, cfg config, log *logger.Logger, w io.Writer) error {
	if cfg.format != "text" && cfg.format != "yaml" {
		return fmt.Errorf("%w: unknown format %q", errUsage, cfg.format)
	}
	if (cfg.convert == "") != (cfg.to == "") {
		return fmt.Errorf("%w: -convert and -to go together", errUsage)
	}

	src, err := openCatalog(cfg.catalog, log)
	if err != nil {
		return err
	}

	var (
		opts  []units.Option
		trees *storage.MemoryStore[domain.UnitKey, *units.Tree]
	)
	if cfg.cache {
		trees = storage.NewMemoryStore[domain.UnitKey, *units.Tree]("conversion-trees", log)
		opts = append(opts, units.WithCache(trees))
	}
	g, err := units.FromSource(ctx, src, log, opts...)
	if err != nil {
		return err
	}
	log.Info("conversion graph ready: %d edges, cache=%t", g.Len(), cfg.cache)

	if cfg.convert != "" {
		return convertOne(src, g, cfg.convert, cfg.to, w)
	}

	eng := engine.New(src, src, g, src, log)
	summary, err := eng.Run(ctx, cfg.recipes...)
	if err != nil {
		return err
	}
	if trees != nil {
		log.Debug("%d conversion tree(s) cached", trees.Len())
	}

	if cfg.format == "yaml" {
		out, err := display.YAML(summary)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	if cfg.banner > 0 {
		fmt.Fprintln(w, display.Banner(cfg.banner))
	}
	_, err = io.WriteString(w, display.Text(summary))
	return err
}

func openCatalog(path string, log *logger.Logger) (*catalog.MemorySource, error) {
	if path == "" {
		return catalog.NewMemorySource(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	log.Info("loading catalog from %s", path)
	return catalog.Load(data, log)
}

func convertOne(src *catalog.MemorySource, g *units.Graph, input, target string, w io.Writer) error {
	from, err := src.Parser().Parse(input)
	if err != nil {
		return err
	}
	to, err := src.Parser().Unit(target)
	if err != nil {
		return err
	}

	out, err := g.Convert(from, to.Name, to.Type)
	if err != nil {
		return err
	}
	path, err := g.Path(from.Key(), to)
	if err != nil {
		return err
	}
	factor, err := g.Factor(from.Key(), to)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, display.Conversion(from, out, path, factor))
	return err
}

// resolveLevel picks the log level from -log-level, overridden by -verbose
// and then -quiet.
func resolveLevel(name string, verbose, quiet bool) (logger.Level, error) {
	level, err := logger.ParseLevel(name)
	if err != nil {
		return logger.LevelNormal, fmt.Errorf("%w: %v", errUsage, err)
	}
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}
	return level, nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
