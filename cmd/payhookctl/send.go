package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/AlenaMolokova/payhook/internal/constants"
	"github.com/AlenaMolokova/payhook/internal/logger"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/webhookclient"
	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	var (
		addr     string
		attempts int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Deliver a signed webhook body to a running payhook",
		Long: `Read a body produced by "payhookctl sign" from a file or stdin and POST it,
retrying server failures like a payment provider would.

Examples:
  payhookctl sign --account-id 1 --user-id 1 --amount 10 | payhookctl send --addr http://localhost:8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ev, err := readEvent(in)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client := webhookclient.NewClient(addr, logger.New(constants.EnvLocal, cmd.ErrOrStderr()))
			client.SetRetryInterval(interval)

			receipt, err := client.DeliverWithRetry(ctx, ev, attempts)
			if err != nil {
				return err
			}

			if receipt.Duplicate {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already applied\n", ev.TransactionID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s delivered: %s\n", ev.TransactionID, receipt.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "http://localhost:8080", "payhook base URL")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "maximum delivery attempts")
	cmd.Flags().DurationVar(&interval, "retry-interval", time.Second, "pause between attempts")

	return cmd
}

func readEvent(r io.Reader) (models.PaymentEvent, error) {
	var ev models.PaymentEvent
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return models.PaymentEvent{}, fmt.Errorf("failed to read event: %w", err)
	}
	return ev, nil
}

