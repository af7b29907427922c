package sheetsync

import (
	"context"
	"fmt"

	"github.com/turtlefin/turtle-finance/internal/i18n"
	"github.com/turtlefin/turtle-finance/internal/logger"
)

// EnsureHeaders writes the nine localized column headers into the first row
// of the tab when that row is empty, then applies the header visual format.
// Calling it when headers already exist is a no-op beyond the initial read.
// The format step is cosmetic: its failure is logged and never fails the
// reconciliation.
func EnsureHeaders(ctx context.Context, svc SheetService, spreadsheetID, tabTitle string, region i18n.Region) error {
	headerRange := fmt.Sprintf("%s!A1:I1", tabTitle)

	rows, err := svc.ReadRange(ctx, spreadsheetID, headerRange)
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	if len(rows) > 0 {
		return nil
	}

	headers := i18n.SheetHeaders(region)
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := svc.UpdateRange(ctx, spreadsheetID, headerRange, [][]any{row}); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	formatHeaderRow(ctx, svc, spreadsheetID, tabTitle)
	return nil
}

func formatHeaderRow(ctx context.Context, svc SheetService, spreadsheetID, tabTitle string) {
	log := logger.FromContext(ctx)

	tabs, err := svc.Tabs(ctx, spreadsheetID)
	if err != nil {
		log.Warn().Err(err).Str("tab", tabTitle).Msg("Skipping header formatting, tab lookup failed")
		return
	}
	for _, tab := range tabs {
		if tab.Title != tabTitle {
			continue
		}
		if err := svc.FormatHeaderRow(ctx, spreadsheetID, tab.ID); err != nil {
			log.Warn().Err(err).Str("tab", tabTitle).Msg("Header formatting failed")
		}
		return
	}
	log.Warn().Str("tab", tabTitle).Msg("Skipping header formatting, tab not found")
}
