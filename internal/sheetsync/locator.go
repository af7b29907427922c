package sheetsync

import (
	"context"
	"fmt"

	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
	"github.com/turtlefin/turtle-finance/internal/logger"
)

// LocateTab determines which tab holds the records for kind. It returns the
// locale-expected title when a tab with that title exists, and otherwise
// falls back to the document's first tab, on the assumption that a fresh or
// foreign document keeps this kind in its default sheet.
func LocateTab(ctx context.Context, svc SheetService, spreadsheetID string, kind domain.Kind, region i18n.Region) (string, error) {
	tabs, err := svc.Tabs(ctx, spreadsheetID)
	if err != nil {
		return "", fmt.Errorf("locate tab: %w", err)
	}
	if len(tabs) == 0 {
		return "", ErrNoSheets
	}

	expected := i18n.SheetTitle(kind, region)
	for _, tab := range tabs {
		if tab.Title == expected {
			return expected, nil
		}
	}
	return tabs[0].Title, nil
}

// renameTab renames currentTitle to newTitle. The rename is skipped when a
// tab named newTitle already exists, to avoid clobbering it; the mismatch is
// logged and left unresolved.
func renameTab(ctx context.Context, svc SheetService, spreadsheetID, currentTitle, newTitle string) error {
	if currentTitle == newTitle {
		return nil
	}

	tabs, err := svc.Tabs(ctx, spreadsheetID)
	if err != nil {
		return fmt.Errorf("rename tab: %w", err)
	}

	var current *Tab
	for i, tab := range tabs {
		if tab.Title == newTitle {
			log := logger.FromContext(ctx)
			log.Info().
				Str("title", newTitle).
				Msg("Tab with target title already exists, skipping rename")
			return nil
		}
		if tab.Title == currentTitle {
			current = &tabs[i]
		}
	}
	if current == nil {
		return fmt.Errorf("rename tab: %w: %s", ErrSheetNotFound, currentTitle)
	}

	if err := svc.RenameTab(ctx, spreadsheetID, current.ID, newTitle); err != nil {
		return fmt.Errorf("rename tab %q to %q: %w", currentTitle, newTitle, err)
	}
	return nil
}
