// Package handlers exposes the synchronizer and the preference store over
// HTTP. This is the entire surface the web client consumes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/turtlefin/turtle-finance/internal/api/middleware"
	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/report"
	"github.com/turtlefin/turtle-finance/internal/sheetsync"
)

// Syncer is the synchronizer surface the handlers consume.
type Syncer interface {
	FetchAll(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
	Append(ctx context.Context, kind domain.Kind, record domain.Record) (domain.Record, error)
	DeleteByID(ctx context.Context, kind domain.Kind, recordID string) error
	CreateSpreadsheet(ctx context.Context, shareOneTab bool) (string, error)
	RepairStructure(ctx context.Context) error
	Records(kind domain.Kind) []domain.Record
}

// AccountDirectory is the slice of the preference store the summary needs to
// attribute records to accounts.
type AccountDirectory interface {
	BankAccounts() []domain.BankAccount
	CreditCards() []domain.CreditCard
}

// RecordsHandler handles record and spreadsheet endpoints.
type RecordsHandler struct {
	sync     Syncer
	accounts AccountDirectory
	log      zerolog.Logger
}

// NewRecordsHandler creates a records handler.
func NewRecordsHandler(sync Syncer, accounts AccountDirectory, log zerolog.Logger) *RecordsHandler {
	return &RecordsHandler{sync: sync, accounts: accounts, log: log}
}

// List handles GET /api/records/{kind}: a full re-fetch from the remote
// store.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	records, err := h.sync.FetchAll(r.Context(), kind)
	if err != nil {
		h.writeSyncError(w, r, err, "Failed to fetch records")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// Create handles POST /api/records/{kind}.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	var record domain.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if record.Date == "" || record.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Date and description are required")
		return
	}

	created, err := h.sync.Append(r.Context(), kind, record)
	if err != nil {
		h.writeSyncError(w, r, err, "Failed to append record")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/records/{kind}/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	if err := h.sync.DeleteByID(r.Context(), kind, r.PathValue("id")); err != nil {
		h.writeSyncError(w, r, err, "Failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/records/{kind}/summary over the cached
// collection. An optional ?month=YYYY-MM query narrows totals and the
// category breakdown to one calendar month; account balances always cover the
// full history, since a balance is cumulative.
func (h *RecordsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	records := h.sync.Records(kind)
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		m, err := time.Parse("2006-01", monthParam)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Month must be formatted as YYYY-MM")
			return
		}
		records = report.ForMonth(records, m.Year(), m.Month())
	}

	recordType := domain.TypeExpense
	if kind == domain.KindIncomes {
		recordType = domain.TypeIncome
	}

	allRecords := append(h.sync.Records(domain.KindExpenses), h.sync.Records(domain.KindIncomes)...)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"totals":          report.Summarize(records),
		"byCategory":      report.ByCategory(records, recordType),
		"accountBalances": report.AccountBalances(h.accounts.BankAccounts(), h.accounts.CreditCards(), allRecords),
	})
}

// CreateSpreadsheet handles POST /api/spreadsheets.
func (h *RecordsHandler) CreateSpreadsheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShareOneTab bool `json:"shareOneTab"`
	}
	if r.Body != nil {
		// An empty body means separate tabs.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	spreadsheetID, err := h.sync.CreateSpreadsheet(r.Context(), req.ShareOneTab)
	if err != nil {
		h.writeSyncError(w, r, err, "Failed to create spreadsheet")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"spreadsheetId": spreadsheetID})
}

// Repair handles POST /api/repair: header and tab reconciliation for every
// configured document.
func (h *RecordsHandler) Repair(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.RepairStructure(r.Context()); err != nil {
		h.writeSyncError(w, r, err, "Failed to repair spreadsheet structure")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "repaired"})
}

func (h *RecordsHandler) writeSyncError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, sheetsync.ErrNotSignedIn), errors.Is(err, sheetsync.ErrAuthExpired):
		middleware.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, sheetsync.ErrNoSpreadsheet):
		middleware.WriteError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, sheetsync.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sheetsync.ErrRowMoved):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sheetsync.ErrAddFailed), errors.Is(err, sheetsync.ErrCreateFailed):
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg(message)
		middleware.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg(message)
		middleware.WriteError(w, http.StatusInternalServerError, message)
	}
}

func parseKind(s string) (domain.Kind, bool) {
	switch domain.Kind(s) {
	case domain.KindExpenses:
		return domain.KindExpenses, true
	case domain.KindIncomes:
		return domain.KindIncomes, true
	}
	return "", false
}
