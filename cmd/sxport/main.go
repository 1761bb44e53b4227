package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matheus3301/sxport/internal/app"
	"github.com/matheus3301/sxport/internal/chatdb"
	"github.com/matheus3301/sxport/internal/config"
	"github.com/matheus3301/sxport/internal/exporter"
	"github.com/matheus3301/sxport/internal/history"
	"github.com/matheus3301/sxport/internal/paths"
	"github.com/matheus3301/sxport/internal/render"
	"github.com/matheus3301/sxport/internal/tui"
	"go.uber.org/fx"
)

func main() {
	// .env is optional; SXPORT_PASSPHRASE may come from the real environment.
	_ = godotenv.Load()

	dbFlag := flag.String("db", "", "chat database path (default: config, then autodetect)")
	chatFlag := flag.String("chat", "", "contact name to export (skips interactive selection)")
	groupFlag := flag.String("group", "", "group name to export (skips interactive selection)")
	formatFlag := flag.String("format", "", "output format: txt, json, html or all")
	outFlag := flag.String("out", "", "output directory (default: config, then current directory)")
	limitFlag := flag.Int("limit", 20, "number of records shown by 'sxport history'")
	flag.Parse()

	if flag.Arg(0) == "history" {
		if err := cmdHistory(*limitFlag); err != nil {
			fail(err)
		}
		return
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", flag.Arg(0))
		printUsage()
		os.Exit(1)
	}
	if *chatFlag != "" && *groupFlag != "" {
		fail(errors.New("--chat and --group are mutually exclusive"))
	}

	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		cfg = &config.Config{}
	}

	dbPath := resolveDBPath(*dbFlag, cfg)
	if dbPath == "" {
		fail(errors.New("no chat database found; pass --db or set db_path in " + paths.ConfigPath()))
	}

	passphrase := os.Getenv("SXPORT_PASSPHRASE")
	if passphrase == "" {
		passphrase, err = tui.PromptPassphrase()
		if err != nil {
			fail(err)
		}
	}

	var deps struct {
		fx.In
		ChatDB   *chatdb.DB
		Exporter *exporter.Exporter
	}
	fxApp := fx.New(
		app.Module(app.Params{DBPath: dbPath, Passphrase: passphrase}),
		fx.Populate(&deps),
		fx.NopLogger, // fx event output would garble the picker screen
	)
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		fail(err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}()

	req, err := buildRequest(deps.ChatDB, cfg, *chatFlag, *groupFlag, *formatFlag, *outFlag)
	if err != nil {
		fail(err)
	}

	artifacts, err := deps.Exporter.Export(*req)
	for _, art := range artifacts {
		fmt.Printf("Saved: %s (%d events, %d bytes)\n", art.Path, art.EventCount, art.SizeBytes)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	if errors.Is(err, tui.ErrCancelled) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: sxport [flags] [history]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Without --chat/--group, an interactive picker is shown.")
	fmt.Fprintln(os.Stderr, "The database passphrase is read from SXPORT_PASSPHRASE (or .env),")
	fmt.Fprintln(os.Stderr, "with a prompt as fallback.")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}

func resolveDBPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return paths.FindChatDB()
}

// buildRequest resolves the conversation and formats, interactively when no
// --chat/--group flag was given.
func buildRequest(db *chatdb.DB, cfg *config.Config, chatName, groupName, formatName, outDir string) (*exporter.Request, error) {
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}

	var (
		conv    *chatdb.Conversation
		formats []render.Format
		err     error
	)
	switch {
	case chatName != "":
		conv, err = findConversation(db.Contacts, chatName, "contact")
	case groupName != "":
		conv, err = findConversation(db.Groups, groupName, "group")
	default:
		conv, formats, err = pickInteractive(db)
	}
	if err != nil {
		return nil, err
	}

	if formatName != "" {
		formats, err = parseFormats(formatName)
		if err != nil {
			return nil, err
		}
	}
	if len(formats) == 0 {
		name := cfg.DefaultFormat
		if name == "" {
			name = "txt"
		}
		formats, err = parseFormats(name)
		if err != nil {
			return nil, err
		}
	}

	return &exporter.Request{
		Conversation: *conv,
		Formats:      formats,
		OutputDir:    outDir,
	}, nil
}

func findConversation(list func() ([]chatdb.Conversation, error), name, kind string) (*chatdb.Conversation, error) {
	convs, err := list()
	if err != nil {
		return nil, err
	}
	for i := range convs {
		if strings.EqualFold(convs[i].Name, name) {
			return &convs[i], nil
		}
	}
	return nil, fmt.Errorf("%s not found: %s", kind, name)
}

func pickInteractive(db *chatdb.DB) (*chatdb.Conversation, []render.Format, error) {
	contacts, err := db.Contacts()
	if err != nil {
		return nil, nil, err
	}
	groups, err := db.Groups()
	if err != nil {
		return nil, nil, err
	}
	if len(contacts)+len(groups) == 0 {
		return nil, nil, errors.New("database has no conversations")
	}
	stats, err := db.GetStats()
	if err != nil {
		return nil, nil, err
	}

	sel, err := tui.NewPicker().Run(contacts, groups, stats)
	if err != nil {
		return nil, nil, err
	}
	return &sel.Conversation, sel.Formats, nil
}

func parseFormats(name string) ([]render.Format, error) {
	if strings.EqualFold(name, "all") {
		return []render.Format{render.FormatTXT, render.FormatJSON, render.FormatHTML}, nil
	}
	f, err := render.ParseFormat(strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	return []render.Format{f}, nil
}

func cmdHistory(limit int) error {
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	db, err := history.Open(paths.HistoryDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Migrate(); err != nil {
		return err
	}

	exports, err := db.List(limit)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		fmt.Println("No exports recorded yet.")
		return nil
	}
	for _, e := range exports {
		kind := "contact"
		if e.IsGroup {
			kind = "group"
		}
		fmt.Printf("%s  %-7s %-5s %6d events  %s\n",
			time.UnixMilli(e.ExportedAt).Format("2006-01-02 15:04"),
			kind, e.Format, e.EventCount, e.Path)
	}
	return nil
}
