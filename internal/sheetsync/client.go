package sheetsync

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// headerBackground is the header fill color, #bdcf47.
var headerBackground = &sheets.Color{Red: 189.0 / 255, Green: 207.0 / 255, Blue: 71.0 / 255}

// GoogleClient implements SheetService against the Google Sheets v4 API.
type GoogleClient struct {
	svc *sheets.Service
}

var _ SheetService = (*GoogleClient)(nil)

// NewGoogleClient builds a client on top of an authenticated HTTP client,
// typically obtained from the session provider.
func NewGoogleClient(ctx context.Context, httpClient *http.Client) (*GoogleClient, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &GoogleClient{svc: svc}, nil
}

// CreateSpreadsheet implements SheetService.
func (c *GoogleClient) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	resp, err := c.svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	return resp.SpreadsheetId, nil
}

// Tabs implements SheetService.
func (c *GoogleClient) Tabs(ctx context.Context, spreadsheetID string) ([]Tab, error) {
	resp, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", spreadsheetID, err)
	}

	tabs := make([]Tab, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		tabs = append(tabs, Tab{ID: sh.Properties.SheetId, Title: sh.Properties.Title})
	}
	return tabs, nil
}

// ReadRange implements SheetService. Cell values come back as strings the
// way the API renders them.
func (c *GoogleClient) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strings.TrimRight(fmt.Sprint(v), "\n")
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// UpdateRange implements SheetService.
func (c *GoogleClient) UpdateRange(ctx context.Context, spreadsheetID, updateRange string, values [][]any) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, updateRange, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", updateRange, err)
	}
	return nil
}

// AppendRow implements SheetService.
func (c *GoogleClient) AppendRow(ctx context.Context, spreadsheetID, appendRange string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", appendRange, err)
	}
	return nil
}

// RenameTab implements SheetService.
func (c *GoogleClient) RenameTab(ctx context.Context, spreadsheetID string, tabID int64, title string) error {
	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{SheetId: tabID, Title: title},
			Fields:     "title",
		},
	}
	return c.batchUpdate(ctx, spreadsheetID, req)
}

// AddTab implements SheetService.
func (c *GoogleClient) AddTab(ctx context.Context, spreadsheetID, title string) error {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	}
	return c.batchUpdate(ctx, spreadsheetID, req)
}

// DeleteRow implements SheetService. The deletion removes the physical row
// and shifts all following rows up by one.
func (c *GoogleClient) DeleteRow(ctx context.Context, spreadsheetID string, tabID int64, rowIndex int64) error {
	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    tabID,
				Dimension:  "ROWS",
				StartIndex: rowIndex,
				EndIndex:   rowIndex + 1,
			},
		},
	}
	return c.batchUpdate(ctx, spreadsheetID, req)
}

// FormatHeaderRow implements SheetService: bold black text, centered, shaded
// background across the nine header columns.
func (c *GoogleClient) FormatHeaderRow(ctx context.Context, spreadsheetID string, tabID int64) error {
	req := &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          tabID,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   ColumnCount,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: headerBackground,
					TextFormat: &sheets.TextFormat{
						Bold:            true,
						ForegroundColor: &sheets.Color{},
					},
					HorizontalAlignment: "CENTER",
				},
			},
			Fields: "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment)",
		},
	}
	return c.batchUpdate(ctx, spreadsheetID, req)
}

func (c *GoogleClient) batchUpdate(ctx context.Context, spreadsheetID string, reqs ...*sheets.Request) error {
	_, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update %s: %w", spreadsheetID, err)
	}
	return nil
}
