package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"marketcrew/internal/catalog"
	"marketcrew/internal/config"
	"marketcrew/internal/events"
	"marketcrew/internal/logging"
	"marketcrew/internal/negotiation"
	"marketcrew/internal/reasoning"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// app bundles everything a command needs to run negotiations.
type app struct {
	cfg          *config.Config
	store        catalog.Store
	orchestrator *negotiation.Orchestrator
	recorder     *events.KafkaRecorder
}

// buildApp assembles store, capability, recorder and orchestrator from the
// config plus flag overrides.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	store, err := openStore(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	capability, err := reasoning.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &app{cfg: cfg, store: store}

	var opts []negotiation.Option
	if cfg.Events.Enabled && cfg.Events.Broker != "" {
		a.recorder = events.NewKafkaRecorder(cfg.Events.Broker, cfg.Events.Topic)
		opts = append(opts, negotiation.WithRecorder(a.recorder))
		logging.Boot("run audit enabled: broker=%s topic=%s", cfg.Events.Broker, cfg.Events.Topic)
	}

	a.orchestrator = negotiation.New(capability, store, opts...)
	logging.Boot("marketcrew ready: catalog=%s backend=%s provider=%s",
		cfg.Catalog.Path, cfg.Catalog.Backend, cfg.LLM.Provider)
	return a, nil
}

func (a *app) close() {
	if a.recorder != nil {
		_ = a.recorder.Close()
	}
	_ = a.store.Close()
}

// openStore picks the catalog backend.
func openStore(cfg config.CatalogConfig) (catalog.Store, error) {
	switch cfg.Backend {
	case "", "json":
		return catalog.OpenJSON(cfg.Path)
	case "sqlite":
		return catalog.OpenSQLite(cfg.Path)
	case "redis":
		return catalog.OpenRedis(cfg.RedisAddr), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
	}
}

// parseInput decides whether the raw text is a structured mapping or free
// text. Anything that parses as a JSON object goes in structured.
func parseInput(text string) interface{} {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
			return m
		}
	}
	return trimmed
}

// renderResult pretty-prints the final report. Stage output is usually
// markdown-ish; fall back to plain text when rendering fails.
func renderResult(result string) string {
	out, err := glamour.Render(result, "dark")
	if err != nil {
		return result
	}
	return strings.TrimSpace(out)
}

func renderError(err error) string {
	return errStyle.Render(err.Error())
}
