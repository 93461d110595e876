// Package worker mirrors accepted transactions to Google Sheets.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanze/internal/amqp"
	"finanze/internal/sheets"
)

// MirrorWorker appends every consumed transaction message to the spreadsheet.
type MirrorWorker struct {
	sheets  *sheets.Client
	retries int
}

func NewMirrorWorker(sheetsClient *sheets.Client) *MirrorWorker {
	return &MirrorWorker{
		sheets:  sheetsClient,
		retries: 3,
	}
}

// HandleMessage processes one mirror message. Errors after all retries are
// returned so the consumer can requeue the delivery.
func (w *MirrorWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	slog.InfoContext(ctx, "Mirroring transaction",
		"ref", msg.Ref,
		"description", msg.Description,
		"amount_cents", msg.AmountCents)

	var lastErr error
	for attempt := 1; attempt <= w.retries; attempt++ {
		cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		lastErr = w.sheets.AppendTransaction(cctx, msg)
		cancel()
		if lastErr == nil {
			slog.InfoContext(ctx, "Transaction mirrored to sheet", "ref", msg.Ref, "attempt", attempt)
			return nil
		}
		slog.WarnContext(ctx, "Mirror attempt failed",
			"ref", msg.Ref, "attempt", attempt, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return fmt.Errorf("mirror transaction %s: %w", msg.Ref, lastErr)
}
