package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sciados/campaign-engine/internal/cost"
	"github.com/sciados/campaign-engine/internal/model"
	"github.com/sciados/campaign-engine/internal/provider"
	"github.com/sciados/campaign-engine/internal/selector"
	"github.com/sciados/campaign-engine/internal/store"
	"github.com/sciados/campaign-engine/pkg/anthropic"
	"github.com/sciados/campaign-engine/pkg/groq"
	"github.com/sciados/campaign-engine/pkg/openai"
)

// selectorState is shared across all selectors built in this process so a
// provider marked dead by one command invocation stays excluded for the
// process lifetime (relevant under serve, where many requests share it).
var selectorState = selector.NewState()

// initStore opens the configured database backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return store.NewSQLite(cfg.Store.DatabaseURL)
	}
}

// openStore opens the store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadRegistry builds the provider registry from the configured catalog
// path, falling back to the built-in catalog.
func loadRegistry() (*provider.Registry, error) {
	descriptors := provider.DefaultCatalog()
	if cfg.Providers.CatalogPath != "" {
		loaded, err := provider.LoadCatalog(cfg.Providers.CatalogPath)
		if err != nil {
			return nil, err
		}
		descriptors = loaded
	}
	return provider.NewRegistry(descriptors)
}

// vendorAdapters builds chat adapters for every vendor with a configured
// key. Providers whose vendor has no adapter fail loudly at invocation, so
// the catalog should only list vendors that are configured.
func vendorAdapters() map[string]provider.ChatCompleter {
	vendors := make(map[string]provider.ChatCompleter)
	if cfg.Anthropic.Key != "" {
		vendors[provider.VendorAnthropic] = provider.AnthropicCompleter{Client: anthropic.NewClient(cfg.Anthropic.Key)}
	}
	if cfg.OpenAI.Key != "" {
		var opts []openai.Option
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		vendors[provider.VendorOpenAI] = provider.OpenAICompleter{Client: openai.NewClient(cfg.OpenAI.Key, opts...)}
	}
	if cfg.Groq.Key != "" {
		var opts []groq.Option
		if cfg.Groq.BaseURL != "" {
			opts = append(opts, groq.WithBaseURL(cfg.Groq.BaseURL))
		}
		vendors[provider.VendorGroq] = provider.GroqCompleter{Client: groq.NewClient(cfg.Groq.Key, opts...)}
	}
	return vendors
}

// initSelector wires the full provider stack: catalog, vendor clients,
// cost calculator, and the shared dead-provider state.
func initSelector() (*selector.Selector, error) {
	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	vendors := vendorAdapters()
	if len(vendors) == 0 {
		return nil, eris.New("no provider keys configured")
	}

	client := provider.NewClient(
		registry,
		vendors,
		cost.NewCalculator(cost.DefaultRates()),
		provider.WithTimeout(time.Duration(cfg.Providers.TimeoutSecs)*time.Second),
	)
	return selector.New(registry, client, selectorState), nil
}

// readRecord loads an intelligence record from a JSON file, or from stdin
// when path is "-".
func readRecord(path string) (model.IntelligenceRecord, error) {
	var record model.IntelligenceRecord

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return record, eris.Wrapf(err, "read record %s", path)
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, eris.Wrapf(err, "parse record %s", path)
	}
	if record.ProductName == "" && record.SourceURL == "" {
		return record, eris.New("record has neither product_name nor source_url")
	}
	return record, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
