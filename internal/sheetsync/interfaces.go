package sheetsync

import (
	"context"

	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
)

// Tab is one sheet inside a spreadsheet document. ID is the internal numeric
// identifier used by structural updates; Title is the display name used in
// A1 ranges.
type Tab struct {
	ID    int64
	Title string
}

// SheetService is the remote tabular store. The production implementation is
// GoogleClient; tests substitute an in-memory fake.
type SheetService interface {
	// CreateSpreadsheet creates a new document and returns its ID.
	CreateSpreadsheet(ctx context.Context, title string) (string, error)

	// Tabs returns the document's tabs in sheet order.
	Tabs(ctx context.Context, spreadsheetID string) ([]Tab, error)

	// ReadRange reads cell values from an A1 range. Cells are returned as
	// strings; trailing empty cells may be omitted.
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)

	// UpdateRange overwrites cell values in an A1 range.
	UpdateRange(ctx context.Context, spreadsheetID, updateRange string, values [][]any) error

	// AppendRow inserts one row past the last data row of the range's table.
	AppendRow(ctx context.Context, spreadsheetID, appendRange string, row []any) error

	// RenameTab changes a tab's title.
	RenameTab(ctx context.Context, spreadsheetID string, tabID int64, title string) error

	// AddTab creates a new tab with the given title.
	AddTab(ctx context.Context, spreadsheetID, title string) error

	// DeleteRow removes the zero-based row, shifting later rows up.
	DeleteRow(ctx context.Context, spreadsheetID string, tabID int64, rowIndex int64) error

	// FormatHeaderRow applies the header visual format (bold, centered,
	// shaded) to the first row of a tab. Cosmetic; failures are tolerated.
	FormatHeaderRow(ctx context.Context, spreadsheetID string, tabID int64) error
}

// Preferences is the slice of the preference store the synchronizer needs.
// Each operation reads one snapshot of these values at its start.
type Preferences interface {
	Region() i18n.Region
	SpreadsheetID(kind domain.Kind) string
	SetSpreadsheetID(kind domain.Kind, id string) error
}

// Session is the identity provider surface the synchronizer consumes.
type Session interface {
	SignedIn() bool
	SignOut()
}
