// Package sheetsync keeps the in-memory record collections in sync with the
// remote spreadsheet. It owns the row codec, the tab locator, the header
// reconciler and the synchronizer that orchestrates them.
package sheetsync

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
	"github.com/turtlefin/turtle-finance/internal/logger"
)

// SpreadsheetTitle is the display title of documents created by
// CreateSpreadsheet.
const SpreadsheetTitle = "Turtle Finance"

// Synchronizer orchestrates fetch, append and delete operations against the
// remote store and owns the cached record collections. The cache is
// non-authoritative: it is fully replaced on fetch and invalidated only by
// re-fetching.
type Synchronizer struct {
	svc     SheetService
	session Session
	prefs   Preferences

	mu      sync.RWMutex
	records map[domain.Kind][]domain.Record
}

// New creates a synchronizer.
func New(svc SheetService, session Session, prefs Preferences) *Synchronizer {
	return &Synchronizer{
		svc:     svc,
		session: session,
		prefs:   prefs,
		records: make(map[domain.Kind][]domain.Record),
	}
}

// Records returns a snapshot copy of the cached collection for kind.
func (s *Synchronizer) Records(kind domain.Kind) []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records[kind])
}

// precheck returns the configured spreadsheet ID for kind, or a skip
// sentinel when the session or configuration is missing.
func (s *Synchronizer) precheck(kind domain.Kind) (string, error) {
	if !s.session.SignedIn() {
		return "", ErrNotSignedIn
	}
	id := s.prefs.SpreadsheetID(kind)
	if id == "" {
		return "", ErrNoSpreadsheet
	}
	return id, nil
}

// FetchAll replaces the cached collection for kind with the full contents of
// its tab. The tab is renamed to the locale-expected title first when it
// differs (best effort), headers are reconciled (best effort), and every data
// row from row 2 down is decoded. A 401/403 from the remote service
// terminates the session and discards all cached records.
func (s *Synchronizer) FetchAll(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	spreadsheetID, err := s.precheck(kind)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	region := s.prefs.Region()

	title, err := LocateTab(ctx, s.svc, spreadsheetID, kind, region)
	if err != nil {
		return nil, s.handleAuth(err)
	}

	expected := i18n.SheetTitle(kind, region)
	if title != expected {
		if err := renameTab(ctx, s.svc, spreadsheetID, title, expected); err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).Msg("Tab rename failed")
		}
		title, err = LocateTab(ctx, s.svc, spreadsheetID, kind, region)
		if err != nil {
			return nil, s.handleAuth(err)
		}
	}

	if err := EnsureHeaders(ctx, s.svc, spreadsheetID, title, region); err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("Header reconciliation failed")
	}

	rows, err := s.svc.ReadRange(ctx, spreadsheetID, fmt.Sprintf("%s!A2:I", title))
	if err != nil {
		return nil, s.handleAuth(err)
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, DecodeRow(row))
	}

	s.mu.Lock()
	s.records[kind] = records
	s.mu.Unlock()

	log.Debug().Str("kind", string(kind)).Int("count", len(records)).Msg("Fetched records")
	return slices.Clone(records), nil
}

// Append assigns a fresh ID to the record, appends it past the last row of
// the tab, and on success adds it to the cached collection without
// re-fetching. A remote failure surfaces as ErrAddFailed and leaves the
// cache unchanged.
func (s *Synchronizer) Append(ctx context.Context, kind domain.Kind, record domain.Record) (domain.Record, error) {
	spreadsheetID, err := s.precheck(kind)
	if err != nil {
		return domain.Record{}, err
	}
	region := s.prefs.Region()

	title, err := LocateTab(ctx, s.svc, spreadsheetID, kind, region)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", ErrAddFailed, err)
	}

	record.ID = domain.NewRecordID()
	if record.Method == "" {
		record.Method = domain.MethodCash
	}

	appendRange := fmt.Sprintf("%s!A:I", title)
	if err := s.svc.AppendRow(ctx, spreadsheetID, appendRange, EncodeRow(record)); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %v", ErrAddFailed, err)
	}

	s.mu.Lock()
	s.records[kind] = append(s.records[kind], record)
	s.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Info().
		Str("kind", string(kind)).
		Str("record_id", record.ID).
		Msg("Appended record")
	return record, nil
}

// DeleteByID locates the row whose first cell equals recordID, deletes that
// physical row, and re-fetches the whole collection to resynchronize.
//
// The locate-then-delete sequence is not transactional: the row's ID cell is
// re-read just before the structural delete and ErrRowMoved is returned if it
// changed, but a concurrent editor can still slip in between that check and
// the delete. Last writer wins.
func (s *Synchronizer) DeleteByID(ctx context.Context, kind domain.Kind, recordID string) error {
	spreadsheetID, err := s.precheck(kind)
	if err != nil {
		return err
	}
	region := s.prefs.Region()

	title, err := LocateTab(ctx, s.svc, spreadsheetID, kind, region)
	if err != nil {
		return err
	}

	rows, err := s.svc.ReadRange(ctx, spreadsheetID, fmt.Sprintf("%s!A:A", title))
	if err != nil {
		return fmt.Errorf("read id column: %w", err)
	}
	rowIndex := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == recordID {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return fmt.Errorf("%w: %s", ErrNotFound, recordID)
	}

	tabs, err := s.svc.Tabs(ctx, spreadsheetID)
	if err != nil {
		return fmt.Errorf("resolve tab id: %w", err)
	}
	tabID := int64(-1)
	for _, tab := range tabs {
		if tab.Title == title {
			tabID = tab.ID
			break
		}
	}
	if tabID == -1 {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, title)
	}

	check, err := s.svc.ReadRange(ctx, spreadsheetID, fmt.Sprintf("%s!A%d", title, rowIndex+1))
	if err != nil {
		return fmt.Errorf("verify row: %w", err)
	}
	if len(check) == 0 || len(check[0]) == 0 || check[0][0] != recordID {
		return fmt.Errorf("%w: %s", ErrRowMoved, recordID)
	}

	if err := s.svc.DeleteRow(ctx, spreadsheetID, tabID, int64(rowIndex)); err != nil {
		return fmt.Errorf("delete row %d: %w", rowIndex, err)
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("kind", string(kind)).
		Str("record_id", recordID).
		Int("row", rowIndex).
		Msg("Deleted record")

	// Row indices shift after every deletion; a full re-read is the only
	// safe way to resynchronize.
	_, err = s.FetchAll(ctx, kind)
	return err
}

// CreateSpreadsheet creates a new document, shapes its tabs for expenses and
// (unless shareOneTab) incomes, writes headers, and records the new document
// ID as the active configuration for both kinds. Failures after the create
// itself are logged, not raised.
func (s *Synchronizer) CreateSpreadsheet(ctx context.Context, shareOneTab bool) (string, error) {
	if !s.session.SignedIn() {
		return "", ErrNotSignedIn
	}
	log := logger.FromContext(ctx)
	region := s.prefs.Region()
	expensesTitle := i18n.SheetTitle(domain.KindExpenses, region)
	incomesTitle := i18n.SheetTitle(domain.KindIncomes, region)

	spreadsheetID, err := s.svc.CreateSpreadsheet(ctx, SpreadsheetTitle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	tabs, err := s.svc.Tabs(ctx, spreadsheetID)
	if err != nil || len(tabs) == 0 {
		log.Warn().Err(err).Msg("Could not inspect new spreadsheet tabs")
	} else if err := s.svc.RenameTab(ctx, spreadsheetID, tabs[0].ID, expensesTitle); err != nil {
		log.Warn().Err(err).Msg("Could not rename default tab")
	}

	if !shareOneTab {
		if err := s.svc.AddTab(ctx, spreadsheetID, incomesTitle); err != nil {
			log.Warn().Err(err).Msg("Could not add incomes tab")
		}
	}

	if err := EnsureHeaders(ctx, s.svc, spreadsheetID, expensesTitle, region); err != nil {
		log.Warn().Err(err).Msg("Could not write expense headers")
	}
	if !shareOneTab {
		if err := EnsureHeaders(ctx, s.svc, spreadsheetID, incomesTitle, region); err != nil {
			log.Warn().Err(err).Msg("Could not write income headers")
		}
	}

	for _, kind := range domain.Kinds {
		if err := s.prefs.SetSpreadsheetID(kind, spreadsheetID); err != nil {
			return "", fmt.Errorf("store spreadsheet id: %w", err)
		}
	}

	log.Info().Str("spreadsheet_id", spreadsheetID).Bool("shared_tab", shareOneTab).Msg("Created spreadsheet")
	return spreadsheetID, nil
}

// RepairStructure re-locates the tab and re-runs header reconciliation for
// every configured kind. Exposed as a manual recovery action for documents
// whose structure has drifted.
func (s *Synchronizer) RepairStructure(ctx context.Context) error {
	if !s.session.SignedIn() {
		return ErrNotSignedIn
	}
	region := s.prefs.Region()

	for _, kind := range domain.Kinds {
		spreadsheetID := s.prefs.SpreadsheetID(kind)
		if spreadsheetID == "" {
			continue
		}
		title, err := LocateTab(ctx, s.svc, spreadsheetID, kind, region)
		if err != nil {
			return fmt.Errorf("repair %s: %w", kind, err)
		}
		if err := EnsureHeaders(ctx, s.svc, spreadsheetID, title, region); err != nil {
			return fmt.Errorf("repair %s: %w", kind, err)
		}
	}
	return nil
}

// handleAuth converts a 401/403 into a forced sign-out: the session is
// terminated and every cached record is discarded.
func (s *Synchronizer) handleAuth(err error) error {
	if !isAuthError(err) {
		return err
	}
	s.session.SignOut()
	s.mu.Lock()
	s.records = make(map[domain.Kind][]domain.Record)
	s.mu.Unlock()
	return fmt.Errorf("%w: %v", ErrAuthExpired, err)
}
