package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlenaMolokova/payhook/internal/credentials"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func signCmd() *cobra.Command {
	var (
		secret        string
		accountID     int64
		userID        int64
		amount        string
		transactionID string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print a signed payment webhook body",
		Long: `Build the JSON body a payment provider would POST to /webhook/payment.

Examples:
  payhookctl sign --account-id 1 --user-id 1 --amount 100.5
  WEBHOOK_SECRET=s3cr3t payhookctl sign --account-id 999 --user-id 1 --amount 500 --transaction-id tx-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("WEBHOOK_SECRET")
			}
			if secret == "" {
				return errors.New("webhook secret is required: pass --secret or set WEBHOOK_SECRET")
			}
			if transactionID == "" {
				transactionID = uuid.NewString()
			}

			ev := models.PaymentEvent{
				AccountID:     accountID,
				Amount:        json.Number(amount),
				TransactionID: transactionID,
				UserID:        userID,
				Signature:     credentials.SignPayment(secret, accountID, amount, transactionID, userID),
			}
			body, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("amount %q is not a JSON number: %w", amount, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "webhook secret (defaults to $WEBHOOK_SECRET)")
	cmd.Flags().Int64Var(&accountID, "account-id", 0, "target account id")
	cmd.Flags().Int64Var(&userID, "user-id", 0, "owning user id")
	cmd.Flags().StringVar(&amount, "amount", "", "amount exactly as it should appear in the body")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "provider transaction id (random UUID when empty)")
	_ = cmd.MarkFlagRequired("account-id")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
