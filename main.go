package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gookit/color"

	"dungeonlayout/pkg/game/config"
	"dungeonlayout/pkg/game/devtools"
	"dungeonlayout/pkg/game/generator"
	"dungeonlayout/pkg/game/history"
	"dungeonlayout/pkg/game/renderer"
	"dungeonlayout/pkg/game/renderer/tui"
	"dungeonlayout/pkg/game/text"
)

// options are the resolved command line settings. Flags override the
// DUNGEON_* environment, which overrides the built-in defaults.
type options struct {
	config.Settings
	dev          bool
	list         bool
	show         int64
	writeProfile string
}

func parseOptions() (options, error) {
	settings, err := config.ParseEnv()
	if err != nil {
		return options{}, err
	}

	var o options
	flag.StringVar(&o.Profile, "profile", settings.Profile, "YAML generation profile (built-in profile when empty)")
	flag.Int64Var(&o.Seed, "seed", settings.Seed, "seed override (0 keeps the profile's seed)")
	flag.BoolVar(&o.dev, "dev", false, "use the small developer profile")
	flag.StringVar(&o.HistoryDB, "history", settings.HistoryDB, "SQLite file to record runs in")
	flag.StringVar(&o.DumpPath, "dump", settings.DumpPath, "write a text dump of the layout to this file")
	flag.StringVar(&o.JSONPath, "json", settings.JSONPath, "write the layout as JSON to this file")
	flag.StringVar(&o.HTMLDir, "html", settings.HTMLDir, "write an HTML snapshot of the layout into this directory")
	flag.BoolVar(&o.Preview, "preview", settings.Preview, "draw a preview to the terminal")
	flag.BoolVar(&o.NoColor, "no-color", settings.NoColor, "disable colored output")
	flag.StringVar(&o.Lang, "lang", settings.Lang, "message catalog language")
	flag.StringVar(&o.LocaleDir, "locales", settings.LocaleDir, "directory holding <lang>.po catalogs")
	flag.BoolVar(&o.list, "list", false, "list recent runs from the history database and exit")
	flag.Int64Var(&o.show, "show", 0, "re-render a stored run from the history database instead of generating")
	flag.StringVar(&o.writeProfile, "write-profile", "", "write the effective profile as YAML to this file and exit")
	flag.Parse()
	return o, nil
}

// loadProfile picks the developer profile, the file named by -profile, or
// the built-in default, then applies the seed override.
func loadProfile(o options) (config.Config, string, error) {
	var (
		cfg  config.Config
		name string
		err  error
	)
	switch {
	case o.dev:
		cfg, name = devtools.DevProfile(), "dev"
	case o.Profile != "":
		cfg, err = config.Load(o.Profile)
		name = o.Profile
	default:
		cfg, name = config.Default(), "default"
	}
	if err != nil {
		return config.Config{}, "", err
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	return cfg, name, nil
}

func writeJSON(path string, layout *generator.LevelLayout) error {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// emit sends the layout to every output the options ask for. A nil store
// skips the history row.
func emit(ctx context.Context, o options, logger *log.Logger, store *history.Store, profile string, layout *generator.LevelLayout) error {
	if o.Preview {
		if err := renderer.RenderLayout(os.Stdout, layout); err != nil {
			logger.Printf("preview: %v", err)
		}
	}
	if o.DumpPath != "" {
		path, err := devtools.DumpLayoutToFile(layout, o.DumpPath)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		fmt.Println(renderer.FormatText("GT{WROTE_FILE} %s", path))
	}
	if o.JSONPath != "" {
		if err := writeJSON(o.JSONPath, layout); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		fmt.Println(renderer.FormatText("GT{WROTE_FILE} %s", o.JSONPath))
	}
	if o.HTMLDir != "" {
		path, err := devtools.SaveScreenshotHTML(layout, o.HTMLDir, time.Now())
		if err != nil {
			return fmt.Errorf("html: %w", err)
		}
		fmt.Println(renderer.FormatText("GT{WROTE_FILE} %s", path))
	}
	if store != nil {
		saved, err := store.Save(ctx, profile, layout, time.Now())
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		fmt.Println(renderer.FormatText("GT{SAVED_HISTORY} ACTION{%d}", saved.ID))
	}
	return nil
}

func listRuns(ctx context.Context, store *history.Store) error {
	runs, err := store.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	for _, r := range runs {
		problems := renderer.StyleNormal
		if r.Dropped > 0 || r.Unreachable > 0 {
			problems = renderer.StyleDenied
		}
		fmt.Printf("%s  %s  seed=%d  profile=%s  grid=%d  rooms=%d  corridors=%d  %s\n",
			renderer.StyleText(fmt.Sprintf("%4d", r.ID), renderer.StyleAction),
			renderer.StyleText(r.CreatedAt.Format(time.RFC3339), renderer.StyleSubtle),
			r.Seed, r.Profile, r.GridSize, r.Rooms, r.Corridors,
			renderer.StyleText(fmt.Sprintf("dropped=%d unreachable=%d", r.Dropped, r.Unreachable), problems))
	}
	return nil
}

func run(ctx context.Context, logger *log.Logger) error {
	o, err := parseOptions()
	if err != nil {
		return err
	}

	if err := text.Use(o.Lang, o.LocaleDir); err != nil {
		logger.Printf("%v; using English messages", err)
	}
	if o.NoColor {
		color.Disable()
	}
	renderer.SetRenderer(tui.New(os.Stdout))
	renderer.Init()

	var store *history.Store
	if o.HistoryDB != "" {
		if store, err = history.Open(ctx, o.HistoryDB); err != nil {
			return fmt.Errorf("history: %w", err)
		}
		defer store.Close()
	}

	if o.list || o.show != 0 {
		if store == nil {
			return errors.New("-list and -show need -history or DUNGEON_HISTORY_DB")
		}
		if o.list {
			return listRuns(ctx, store)
		}
		_, layout, err := store.Get(ctx, o.show)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		// already recorded; no second save
		return emit(ctx, o, logger, nil, "", layout)
	}

	cfg, name, err := loadProfile(o)
	if err != nil {
		return err
	}
	if o.writeProfile != "" {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		return os.WriteFile(o.writeProfile, data, 0644)
	}

	layout, err := generator.New(generator.WithLogger(logger)).Generate(cfg)
	if err != nil {
		return err
	}
	return emit(ctx, o, logger, store, name, layout)
}

func main() {
	logger := log.New(os.Stderr, "dungeonlayout: ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, logger)
	stop()
	if err != nil {
		logger.Fatal(err)
	}
}
