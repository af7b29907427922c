package auth

import (
	"context"

	"github.com/turtlefin/turtle-finance/internal/sheetsync"
)

// SheetService adapts a Manager into the synchronizer's SheetService. The
// underlying client is rebuilt from the stored credential on every call, so a
// sign-out followed by a fresh sign-in is picked up immediately.
type SheetService struct {
	manager *Manager
}

var _ sheetsync.SheetService = (*SheetService)(nil)

// NewSheetService wraps the manager.
func NewSheetService(manager *Manager) *SheetService {
	return &SheetService{manager: manager}
}

func (s *SheetService) client(ctx context.Context) (*sheetsync.GoogleClient, error) {
	httpClient, err := s.manager.Client(ctx)
	if err != nil {
		return nil, err
	}
	return sheetsync.NewGoogleClient(ctx, httpClient)
}

func (s *SheetService) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}
	return c.CreateSpreadsheet(ctx, title)
}

func (s *SheetService) Tabs(ctx context.Context, spreadsheetID string) ([]sheetsync.Tab, error) {
	c, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Tabs(ctx, spreadsheetID)
}

func (s *SheetService) ReadRange(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error) {
	c, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	return c.ReadRange(ctx, spreadsheetID, rangeA1)
}

func (s *SheetService) UpdateRange(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.UpdateRange(ctx, spreadsheetID, rangeA1, values)
}

func (s *SheetService) AppendRow(ctx context.Context, spreadsheetID, rangeA1 string, row []any) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.AppendRow(ctx, spreadsheetID, rangeA1, row)
}

func (s *SheetService) RenameTab(ctx context.Context, spreadsheetID string, tabID int64, title string) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.RenameTab(ctx, spreadsheetID, tabID, title)
}

func (s *SheetService) AddTab(ctx context.Context, spreadsheetID, title string) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.AddTab(ctx, spreadsheetID, title)
}

func (s *SheetService) DeleteRow(ctx context.Context, spreadsheetID string, tabID, rowIndex int64) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.DeleteRow(ctx, spreadsheetID, tabID, rowIndex)
}

func (s *SheetService) FormatHeaderRow(ctx context.Context, spreadsheetID string, tabID int64) error {
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return c.FormatHeaderRow(ctx, spreadsheetID, tabID)
}
