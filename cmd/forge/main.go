package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/apocrypha/forge/internal/assistant"
	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/forge"
	"github.com/apocrypha/forge/internal/notify"
	"github.com/apocrypha/forge/internal/providers"
	"github.com/apocrypha/forge/internal/search"
	"github.com/apocrypha/forge/internal/server"
	"github.com/apocrypha/forge/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := config.LoadEnv()
	cfg := config.Load(env.ConfigPath())

	st, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := forge.NewService(st, cfg)

	client, err := providers.NewFromEnv()
	if err != nil {
		// The app stays useful without an assistant: chat answers with a
		// fixed notice, direct edits and the marketplace still work.
		log.Printf("assistant disabled: %v", err)
	}
	asst := assistant.New(client, cfg)

	index, err := search.Open(filepath.Join(env.DataDir, "ideas.bleve"))
	if err != nil {
		log.Printf("marketplace search disabled: %v", err)
		index = nil
	} else {
		defer index.Close()
	}

	notifier := notify.NewSlack(env.SlackToken, env.SlackChannel)

	srv, err := server.New(svc, asst, index, notifierOrNil(notifier))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if err := srv.Listen(env.Addr); err != nil {
		return err
	}
	return srv.Serve(ctx)
}

func openStore(env *config.Env) (store.Store, func(), error) {
	if env.StoreBackend == "sqlite" {
		if err := os.MkdirAll(env.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := store.OpenSQLite(filepath.Join(env.DataDir, "forge.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}

	s, err := store.NewFileStore(env.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {}, nil
}

// notifierOrNil keeps a nil *SlackNotifier from becoming a non-nil
// interface value.
func notifierOrNil(n *notify.SlackNotifier) notify.Notifier {
	if n == nil {
		return nil
	}
	return n
}
