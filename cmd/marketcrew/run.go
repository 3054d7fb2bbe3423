package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// runCmd executes a single negotiation.
var runCmd = &cobra.Command{
	Use:   "run [request...]",
	Short: "Run one negotiation for a buyer request",
	Long: `Runs the four-stage negotiation for a single buyer request.

The request is taken from the arguments, or from stdin when no arguments
are given. It may be free text:

  marketcrew run "I need 3 units of product p2 under \$10 each"

or a structured JSON object:

  marketcrew run '{"ProductID": "p5", "Quantity": 2, "Budget": 19.99, "Instruction": "fast shipping"}'`,
	RunE: runOnce,
}

func runOnce(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read request from stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no request given")
	}

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithTimeout(baseCtx, timeout)
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.orchestrator.Run(ctx, parseInput(text))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, renderResult(result))
	return nil
}
