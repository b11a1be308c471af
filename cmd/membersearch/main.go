// membersearch lists memberships enriched with their users, optionally
// filtered by name or email, or copies a provider's data into a SQL store.
//
//	membersearch search [-name N] [-email E]
//	membersearch import -from source.json
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kubex/rubix-membersearch/internal/config"
	"github.com/kubex/rubix-membersearch/internal/logger"
	"github.com/kubex/rubix-membersearch/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: membersearch <search|import> [flags]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, "membersearch")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	switch os.Args[1] {
	case "search":
		err = runSearch(ctx, cfg, log, os.Args[2:], os.Stdout)
	case "import":
		err = runImport(ctx, cfg, log, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		cancel()
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		cancel()
		os.Exit(1)
	}
}

// openProvider loads the provider described by the JSON file at path and connects it.
func openProvider(path string) (storage.Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storage config: %w", err)
	}

	p, err := storage.Load(data)
	if err != nil {
		return nil, err
	}

	if err = connectProvider(p); err != nil {
		return nil, err
	}
	return p, nil
}

// connectProvider initializes or connects p. A provider that fails part way is
// closed so it does not hold connections or temporary files.
func connectProvider(p storage.Provider) error {
	var err error
	if initer, ok := p.(initializer); ok {
		err = initer.Initialize()
	} else {
		err = p.Connect()
	}
	if err != nil {
		return errors.Join(fmt.Errorf("connect storage: %w", err), p.Close())
	}
	return nil
}

type initializer interface {
	Initialize() error
}

func closeProvider(log zerolog.Logger, p storage.Provider) {
	if err := p.Close(); err != nil {
		log.Warn().Err(err).Msg("close storage")
	}
}
