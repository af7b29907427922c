package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
)

// fakeSheet is an in-memory SheetService. Rows are stored as strings, the way
// the real API renders them back.
type fakeSheet struct {
	mu        sync.Mutex
	nextTabID int64
	docs      map[string]*fakeDoc

	tabsErr   error
	readErr   error
	appendErr error
	createErr error

	// readHook runs at the start of every ReadRange, before the lock is
	// taken. Tests use it to mutate rows mid-operation, standing in for a
	// concurrent editor.
	readHook func(readRange string)

	updateCalls int
	formatCalls int
	deleteCalls int
}

type fakeDoc struct {
	tabs []*fakeTab
}

type fakeTab struct {
	id    int64
	title string
	rows  [][]string
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{docs: make(map[string]*fakeDoc)}
}

// addDoc seeds a document with a single tab holding the given rows.
func (f *fakeSheet) addDoc(id, tabTitle string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[id] = &fakeDoc{tabs: []*fakeTab{{id: f.nextTabID, title: tabTitle, rows: rows}}}
	f.nextTabID++
}

func (f *fakeSheet) tabByTitle(docID, title string) (*fakeTab, error) {
	doc, ok := f.docs[docID]
	if !ok {
		return nil, fmt.Errorf("no document %s", docID)
	}
	for _, tab := range doc.tabs {
		if tab.title == title {
			return tab, nil
		}
	}
	return nil, fmt.Errorf("no tab %s", title)
}

func (f *fakeSheet) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("doc-%d", len(f.docs)+1)
	f.docs[id] = &fakeDoc{tabs: []*fakeTab{{id: f.nextTabID, title: "Sheet1"}}}
	f.nextTabID++
	return id, nil
}

func (f *fakeSheet) Tabs(ctx context.Context, spreadsheetID string) ([]Tab, error) {
	if f.tabsErr != nil {
		return nil, f.tabsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("no document %s", spreadsheetID)
	}
	tabs := make([]Tab, 0, len(doc.tabs))
	for _, tab := range doc.tabs {
		tabs = append(tabs, Tab{ID: tab.id, Title: tab.title})
	}
	return tabs, nil
}

func (f *fakeSheet) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.readHook != nil {
		f.readHook(readRange)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	title, ref, _ := strings.Cut(readRange, "!")
	tab, err := f.tabByTitle(spreadsheetID, title)
	if err != nil {
		return nil, err
	}

	switch {
	case ref == "A1:I1":
		if len(tab.rows) == 0 {
			return nil, nil
		}
		return [][]string{tab.rows[0]}, nil
	case ref == "A2:I":
		if len(tab.rows) <= 1 {
			return nil, nil
		}
		out := make([][]string, len(tab.rows)-1)
		copy(out, tab.rows[1:])
		return out, nil
	case ref == "A:A":
		out := make([][]string, 0, len(tab.rows))
		for _, row := range tab.rows {
			if len(row) == 0 {
				out = append(out, []string{})
				continue
			}
			out = append(out, []string{row[0]})
		}
		return out, nil
	default:
		// Single cell reference like A4.
		n, err := strconv.Atoi(strings.TrimPrefix(ref, "A"))
		if err != nil {
			return nil, fmt.Errorf("unsupported range %s", readRange)
		}
		if n > len(tab.rows) || len(tab.rows[n-1]) == 0 {
			return nil, nil
		}
		return [][]string{{tab.rows[n-1][0]}}, nil
	}
}

func (f *fakeSheet) UpdateRange(ctx context.Context, spreadsheetID, updateRange string, values [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	title, ref, _ := strings.Cut(updateRange, "!")
	tab, err := f.tabByTitle(spreadsheetID, title)
	if err != nil {
		return err
	}
	if ref != "A1:I1" || len(values) != 1 {
		return fmt.Errorf("unsupported update %s", updateRange)
	}
	if len(tab.rows) == 0 {
		tab.rows = append(tab.rows, nil)
	}
	tab.rows[0] = stringCells(values[0])
	return nil
}

func (f *fakeSheet) AppendRow(ctx context.Context, spreadsheetID, appendRange string, row []any) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	title, _, _ := strings.Cut(appendRange, "!")
	tab, err := f.tabByTitle(spreadsheetID, title)
	if err != nil {
		return err
	}
	tab.rows = append(tab.rows, stringCells(row))
	return nil
}

func (f *fakeSheet) RenameTab(ctx context.Context, spreadsheetID string, tabID int64, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[spreadsheetID]
	if !ok {
		return fmt.Errorf("no document %s", spreadsheetID)
	}
	for _, tab := range doc.tabs {
		if tab.id == tabID {
			tab.title = title
			return nil
		}
	}
	return fmt.Errorf("no tab %d", tabID)
}

func (f *fakeSheet) AddTab(ctx context.Context, spreadsheetID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[spreadsheetID]
	if !ok {
		return fmt.Errorf("no document %s", spreadsheetID)
	}
	doc.tabs = append(doc.tabs, &fakeTab{id: f.nextTabID, title: title})
	f.nextTabID++
	return nil
}

func (f *fakeSheet) DeleteRow(ctx context.Context, spreadsheetID string, tabID, rowIndex int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	doc, ok := f.docs[spreadsheetID]
	if !ok {
		return fmt.Errorf("no document %s", spreadsheetID)
	}
	for _, tab := range doc.tabs {
		if tab.id != tabID {
			continue
		}
		if rowIndex < 0 || rowIndex >= int64(len(tab.rows)) {
			return fmt.Errorf("row %d out of range", rowIndex)
		}
		tab.rows = append(tab.rows[:rowIndex], tab.rows[rowIndex+1:]...)
		return nil
	}
	return fmt.Errorf("no tab %d", tabID)
}

func (f *fakeSheet) FormatHeaderRow(ctx context.Context, spreadsheetID string, tabID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formatCalls++
	return nil
}

func stringCells(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch c := v.(type) {
		case string:
			out[i] = c
		case float64:
			out[i] = strconv.FormatFloat(c, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

type fakeSession struct {
	mu       sync.Mutex
	signedIn bool
}

func (s *fakeSession) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedIn
}

func (s *fakeSession) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedIn = false
}

type fakePrefs struct {
	mu     sync.Mutex
	region i18n.Region
	ids    map[domain.Kind]string
}

func newFakePrefs(region i18n.Region) *fakePrefs {
	return &fakePrefs{region: region, ids: make(map[domain.Kind]string)}
}

func (p *fakePrefs) Region() i18n.Region {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.region
}

func (p *fakePrefs) SpreadsheetID(kind domain.Kind) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ids[kind]
}

func (p *fakePrefs) SetSpreadsheetID(kind domain.Kind, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids[kind] = id
	return nil
}

func headerRow(region i18n.Region) []string {
	return i18n.SheetHeaders(region)
}

func expenseRow(id, description, amount string) []string {
	return []string{id, "2024-01-10", description, amount, "expense", "Food", "Cash", "", ""}
}

func newTestSync(region i18n.Region) (*Synchronizer, *fakeSheet, *fakeSession, *fakePrefs) {
	sheet := newFakeSheet()
	session := &fakeSession{signedIn: true}
	prefs := newFakePrefs(region)
	return New(sheet, session, prefs), sheet, session, prefs
}

func TestFetchAllSkipsWhenNotSignedIn(t *testing.T) {
	s, _, session, prefs := newTestSync(i18n.RegionBR)
	session.signedIn = false
	prefs.ids[domain.KindExpenses] = "doc-1"

	_, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if !IsSkipped(err) {
		t.Error("ErrNotSignedIn should count as skipped")
	}
}

func TestFetchAllSkipsWhenNoSpreadsheet(t *testing.T) {
	s, _, _, _ := newTestSync(i18n.RegionBR)

	_, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if !errors.Is(err, ErrNoSpreadsheet) {
		t.Fatalf("expected ErrNoSpreadsheet, got %v", err)
	}
	if !IsSkipped(err) {
		t.Error("ErrNoSpreadsheet should count as skipped")
	}
}

func TestFetchAllReplacesCache(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
		expenseRow("b", "Second", "20"),
	})

	records, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 2 || records[0].ID != "a" || records[1].ID != "b" {
		t.Fatalf("unexpected records: %+v", records)
	}

	// Remote content changes entirely; a re-fetch must not merge.
	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	tab.rows = [][]string{headerRow(i18n.RegionBR), expenseRow("c", "Third", "30")}

	records, err = s.FetchAll(context.Background(), domain.KindExpenses)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 1 || records[0].ID != "c" {
		t.Fatalf("cache was merged, not replaced: %+v", records)
	}
	if cached := s.Records(domain.KindExpenses); !reflect.DeepEqual(cached, records) {
		t.Errorf("Records() = %+v, want %+v", cached, records)
	}
}

func TestFetchAllHeaderOnlySheetIsEmpty(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{headerRow(i18n.RegionBR)})

	records, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestFetchAllRenamesMismatchedTab(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Sheet1", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
	})

	if _, err := s.FetchAll(context.Background(), domain.KindExpenses); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if _, err := sheet.tabByTitle("doc-1", "Despesas"); err != nil {
		t.Errorf("tab was not renamed to the expected title: %v", err)
	}
}

func TestRenameTabSkipsWhenTargetExists(t *testing.T) {
	sheet := newFakeSheet()
	sheet.addDoc("doc-1", "Old", nil)
	if err := sheet.AddTab(context.Background(), "doc-1", "Despesas"); err != nil {
		t.Fatal(err)
	}

	if err := renameTab(context.Background(), sheet, "doc-1", "Old", "Despesas"); err != nil {
		t.Fatalf("renameTab: %v", err)
	}

	// Neither tab should have changed.
	if _, err := sheet.tabByTitle("doc-1", "Old"); err != nil {
		t.Error("existing tab was renamed over")
	}
	if _, err := sheet.tabByTitle("doc-1", "Despesas"); err != nil {
		t.Error("target tab disappeared")
	}
}

func TestEnsureHeadersWritesOnceAndFormats(t *testing.T) {
	sheet := newFakeSheet()
	sheet.addDoc("doc-1", "Despesas", nil)
	ctx := context.Background()

	if err := EnsureHeaders(ctx, sheet, "doc-1", "Despesas", i18n.RegionBR); err != nil {
		t.Fatalf("EnsureHeaders: %v", err)
	}
	if err := EnsureHeaders(ctx, sheet, "doc-1", "Despesas", i18n.RegionBR); err != nil {
		t.Fatalf("EnsureHeaders (second call): %v", err)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if !reflect.DeepEqual(tab.rows[0], headerRow(i18n.RegionBR)) {
		t.Errorf("header row = %v", tab.rows[0])
	}
	if sheet.updateCalls != 1 {
		t.Errorf("headers written %d times, want 1", sheet.updateCalls)
	}
	if sheet.formatCalls != 1 {
		t.Errorf("header formatted %d times, want 1", sheet.formatCalls)
	}
}

func TestAppendAssignsFreshIDs(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{headerRow(i18n.RegionBR)})

	ctx := context.Background()
	first, err := s.Append(ctx, domain.KindExpenses, domain.Record{
		Date: "2024-01-10", Description: "Lunch", Amount: 25, Type: domain.TypeExpense,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := s.Append(ctx, domain.KindExpenses, domain.Record{
		Date: "2024-01-11", Description: "Dinner", Amount: 40, Type: domain.TypeExpense,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Errorf("IDs must be fresh and unique: %q, %q", first.ID, second.ID)
	}
	if first.Method != domain.MethodCash {
		t.Errorf("unset method should default to Cash, got %q", first.Method)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if len(tab.rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(tab.rows))
	}
	if cached := s.Records(domain.KindExpenses); len(cached) != 2 {
		t.Errorf("cache should grow on append, got %d records", len(cached))
	}
}

func TestAppendFailureLeavesCacheUnchanged(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{headerRow(i18n.RegionBR)})
	sheet.appendErr = errors.New("quota exceeded")

	_, err := s.Append(context.Background(), domain.KindExpenses, domain.Record{
		Date: "2024-01-10", Description: "Lunch", Amount: 25,
	})
	if !errors.Is(err, ErrAddFailed) {
		t.Fatalf("expected ErrAddFailed, got %v", err)
	}
	if cached := s.Records(domain.KindExpenses); len(cached) != 0 {
		t.Errorf("cache changed on failed append: %+v", cached)
	}
}

func TestDeleteByIDRemovesExactRow(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
		expenseRow("b", "Second", "20"),
		expenseRow("c", "Third", "30"),
	})

	if err := s.DeleteByID(context.Background(), domain.KindExpenses, "b"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if len(tab.rows) != 3 {
		t.Fatalf("expected header + 2 rows after delete, got %d", len(tab.rows))
	}
	if tab.rows[1][0] != "a" || tab.rows[2][0] != "c" {
		t.Errorf("wrong row deleted: %v", tab.rows)
	}

	// The delete re-fetches, so the cache reflects the remote state.
	cached := s.Records(domain.KindExpenses)
	if len(cached) != 2 || cached[0].ID != "a" || cached[1].ID != "c" {
		t.Errorf("cache out of sync after delete: %+v", cached)
	}
}

func TestDeleteByIDMissingRecord(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
	})

	err := s.DeleteByID(context.Background(), domain.KindExpenses, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if len(tab.rows) != 2 {
		t.Errorf("rows changed on failed delete: %v", tab.rows)
	}
}

func TestDeleteByIDDetectsMovedRow(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
		expenseRow("b", "Second", "20"),
		expenseRow("c", "Third", "30"),
	})

	// Between the column scan and the single-cell re-read another editor
	// removes row b, shifting c into its slot.
	moved := false
	sheet.readHook = func(readRange string) {
		if !moved && strings.HasSuffix(readRange, "!A3") {
			moved = true
			tab, _ := sheet.tabByTitle("doc-1", "Despesas")
			tab.rows = [][]string{
				headerRow(i18n.RegionBR),
				expenseRow("a", "First", "10"),
				expenseRow("c", "Third", "30"),
			}
		}
	}

	err := s.DeleteByID(context.Background(), domain.KindExpenses, "b")
	if !errors.Is(err, ErrRowMoved) {
		t.Fatalf("expected ErrRowMoved, got %v", err)
	}
	if sheet.deleteCalls != 0 {
		t.Errorf("structural delete ran %d times despite the moved row", sheet.deleteCalls)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if len(tab.rows) != 3 || tab.rows[2][0] != "c" {
		t.Errorf("rows changed after aborted delete: %v", tab.rows)
	}
}

func TestAuthErrorForcesSignOut(t *testing.T) {
	s, sheet, session, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", [][]string{
		headerRow(i18n.RegionBR),
		expenseRow("a", "First", "10"),
	})

	if _, err := s.FetchAll(context.Background(), domain.KindExpenses); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	sheet.tabsErr = &googleapi.Error{Code: 401, Message: "Invalid Credentials"}

	_, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired, got %v", err)
	}
	if session.SignedIn() {
		t.Error("session should be terminated after a 401")
	}
	if cached := s.Records(domain.KindExpenses); len(cached) != 0 {
		t.Errorf("cached records should be discarded, got %+v", cached)
	}
}

func TestNonAuthErrorKeepsSession(t *testing.T) {
	s, sheet, session, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", nil)
	sheet.tabsErr = &googleapi.Error{Code: 500, Message: "backend error"}

	_, err := s.FetchAll(context.Background(), domain.KindExpenses)
	if err == nil || errors.Is(err, ErrAuthExpired) {
		t.Fatalf("expected a plain error, got %v", err)
	}
	if !session.SignedIn() {
		t.Error("a non-auth error must not terminate the session")
	}
}

func TestCreateSpreadsheetSeparateTabs(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)

	id, err := s.CreateSpreadsheet(context.Background(), false)
	if err != nil {
		t.Fatalf("CreateSpreadsheet: %v", err)
	}

	expenses, err := sheet.tabByTitle(id, "Despesas")
	if err != nil {
		t.Fatalf("expenses tab: %v", err)
	}
	incomes, err := sheet.tabByTitle(id, "Receitas")
	if err != nil {
		t.Fatalf("incomes tab: %v", err)
	}

	if !reflect.DeepEqual(expenses.rows[0], headerRow(i18n.RegionBR)) {
		t.Errorf("expense headers = %v", expenses.rows[0])
	}
	if !reflect.DeepEqual(incomes.rows[0], headerRow(i18n.RegionBR)) {
		t.Errorf("income headers = %v", incomes.rows[0])
	}

	for _, kind := range domain.Kinds {
		if prefs.SpreadsheetID(kind) != id {
			t.Errorf("spreadsheet ID for %s not stored", kind)
		}
	}
}

func TestCreateSpreadsheetSharedTab(t *testing.T) {
	s, sheet, _, _ := newTestSync(i18n.RegionUS)

	id, err := s.CreateSpreadsheet(context.Background(), true)
	if err != nil {
		t.Fatalf("CreateSpreadsheet: %v", err)
	}

	tabs, _ := sheet.Tabs(context.Background(), id)
	if len(tabs) != 1 {
		t.Fatalf("expected a single shared tab, got %v", tabs)
	}
	if tabs[0].Title != "Expenses" {
		t.Errorf("tab title = %q, want Expenses", tabs[0].Title)
	}
}

func TestCreateSpreadsheetFailure(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	sheet.createErr = errors.New("rate limited")

	_, err := s.CreateSpreadsheet(context.Background(), false)
	if !errors.Is(err, ErrCreateFailed) {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
	if prefs.SpreadsheetID(domain.KindExpenses) != "" {
		t.Error("spreadsheet ID must not be stored on failure")
	}
}

func TestRepairStructureRestoresHeaders(t *testing.T) {
	s, sheet, _, prefs := newTestSync(i18n.RegionBR)
	prefs.ids[domain.KindExpenses] = "doc-1"
	sheet.addDoc("doc-1", "Despesas", nil)

	if err := s.RepairStructure(context.Background()); err != nil {
		t.Fatalf("RepairStructure: %v", err)
	}

	tab, _ := sheet.tabByTitle("doc-1", "Despesas")
	if len(tab.rows) == 0 || !reflect.DeepEqual(tab.rows[0], headerRow(i18n.RegionBR)) {
		t.Errorf("headers not restored: %v", tab.rows)
	}
}

func TestLocateTab(t *testing.T) {
	ctx := context.Background()

	t.Run("no tabs", func(t *testing.T) {
		sheet := newFakeSheet()
		sheet.docs["doc-1"] = &fakeDoc{}
		_, err := LocateTab(ctx, sheet, "doc-1", domain.KindExpenses, i18n.RegionBR)
		if !errors.Is(err, ErrNoSheets) {
			t.Fatalf("expected ErrNoSheets, got %v", err)
		}
	})

	t.Run("exact title wins over first tab", func(t *testing.T) {
		sheet := newFakeSheet()
		sheet.addDoc("doc-1", "Notes", nil)
		if err := sheet.AddTab(ctx, "doc-1", "Despesas"); err != nil {
			t.Fatal(err)
		}
		title, err := LocateTab(ctx, sheet, "doc-1", domain.KindExpenses, i18n.RegionBR)
		if err != nil {
			t.Fatal(err)
		}
		if title != "Despesas" {
			t.Errorf("title = %q, want Despesas", title)
		}
	})

	t.Run("falls back to first tab", func(t *testing.T) {
		sheet := newFakeSheet()
		sheet.addDoc("doc-1", "Sheet1", nil)
		title, err := LocateTab(ctx, sheet, "doc-1", domain.KindIncomes, i18n.RegionUS)
		if err != nil {
			t.Fatal(err)
		}
		if title != "Sheet1" {
			t.Errorf("title = %q, want Sheet1", title)
		}
	})
}
