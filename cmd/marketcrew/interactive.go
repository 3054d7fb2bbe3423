package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"marketcrew/internal/catalog"
	"marketcrew/internal/logging"
)

// runInteractive reads one buyer request per line and negotiates it. When
// the catalog is a watched JSON file, edits to it are picked up between
// requests without a restart.
func runInteractive(cmd *cobra.Command) error {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	g, ctx := errgroup.WithContext(ctx)

	if js, ok := a.store.(*catalog.JSONStore); ok && a.cfg.Catalog.Watch {
		w, err := catalog.NewWatcher(js)
		if err != nil {
			return fmt.Errorf("failed to watch catalog: %w", err)
		}
		g.Go(func() error { return w.Run(ctx) })
		logging.Boot("watching catalog file %s", js.Path())
	}

	g.Go(func() error {
		defer cancel()

		fmt.Println("marketcrew ready. Enter a request (free text or JSON), or 'exit' to quit.")
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print("buyer> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
				return nil
			}

			result, err := a.orchestrator.Run(ctx, parseInput(line))
			if err != nil {
				fmt.Println(renderError(err))
				continue
			}
			fmt.Println(okStyle.Render("final offer:"))
			fmt.Println(renderResult(result))
		}
	})

	return g.Wait()
}
