package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/turtlefin/turtle-finance/internal/api/middleware"
	"github.com/turtlefin/turtle-finance/internal/auth"
	"github.com/turtlefin/turtle-finance/internal/banks"
	"github.com/turtlefin/turtle-finance/internal/domain"
	"github.com/turtlefin/turtle-finance/internal/i18n"
	"github.com/turtlefin/turtle-finance/internal/prefs"
)

// SessionInfo is the auth surface the settings handler consumes.
type SessionInfo interface {
	SignedIn() bool
	SignOut()
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) error
	Profile(ctx context.Context) (auth.Profile, error)
}

// SettingsHandler handles preference, account and session endpoints.
type SettingsHandler struct {
	store   *prefs.Store
	session SessionInfo
	log     zerolog.Logger
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(store *prefs.Store, session SessionInfo, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, session: session, log: log}
}

// GetPreferences handles GET /api/preferences.
func (h *SettingsHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	region := h.store.Region()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"region":            region,
		"currency":          h.store.Currency(),
		"currencySymbol":    i18n.CurrencySymbol(h.store.Currency(), region),
		"incomeCategories":  h.store.IncomeCategories(),
		"expenseCategories": h.store.ExpenseCategories(),
		"spreadsheetIds": map[string]string{
			string(domain.KindExpenses): h.store.SpreadsheetID(domain.KindExpenses),
			string(domain.KindIncomes):  h.store.SpreadsheetID(domain.KindIncomes),
		},
		"configured": h.store.Configured(),
	})
}

// UpdatePreferences handles PUT /api/preferences: region and currency, each
// optional.
func (h *SettingsHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Region   string `json:"region"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Region != "" {
		if err := h.store.SetRegion(i18n.ParseRegion(req.Region)); err != nil {
			h.writeStoreError(w, err, "Failed to update region")
			return
		}
	}
	if req.Currency != "" {
		currency := i18n.CurrencyBRL
		if strings.EqualFold(req.Currency, string(i18n.CurrencyUSD)) {
			currency = i18n.CurrencyUSD
		}
		if err := h.store.SetCurrency(currency); err != nil {
			h.writeStoreError(w, err, "Failed to update currency")
			return
		}
	}
	if err := h.store.MarkConfigured(); err != nil {
		h.writeStoreError(w, err, "Failed to update preferences")
		return
	}

	h.GetPreferences(w, r)
}

// ListCategories handles GET /api/categories/{kind}.
func (h *SettingsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": h.categories(kind)})
}

// AddCategory handles POST /api/categories/{kind}.
func (h *SettingsHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	add := h.store.AddExpenseCategory
	if kind == domain.KindIncomes {
		add = h.store.AddIncomeCategory
	}
	if err := add(strings.TrimSpace(req.Name)); err != nil {
		h.writeStoreError(w, err, "Failed to add category")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{"categories": h.categories(kind)})
}

// RemoveCategory handles DELETE /api/categories/{kind}/{name}.
func (h *SettingsHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.PathValue("kind"))
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown record kind")
		return
	}

	remove := h.store.RemoveExpenseCategory
	if kind == domain.KindIncomes {
		remove = h.store.RemoveIncomeCategory
	}
	if err := remove(r.PathValue("name")); err != nil {
		h.writeStoreError(w, err, "Failed to remove category")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": h.categories(kind)})
}

func (h *SettingsHandler) categories(kind domain.Kind) []string {
	if kind == domain.KindIncomes {
		return h.store.IncomeCategories()
	}
	return h.store.ExpenseCategories()
}

// ListAccounts handles GET /api/accounts.
func (h *SettingsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": h.store.BankAccounts()})
}

// AddAccount handles POST /api/accounts.
func (h *SettingsHandler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if account.BankName == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Bank name is required")
		return
	}

	created, err := h.store.AddBankAccount(account)
	if err != nil {
		h.writeStoreError(w, err, "Failed to add bank account")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, created)
}

// UpdateAccount handles PUT /api/accounts/{id}.
func (h *SettingsHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account.ID = r.PathValue("id")

	if err := h.store.UpdateBankAccount(account); err != nil {
		if errors.Is(err, prefs.ErrAccountNotFound) {
			middleware.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeStoreError(w, err, "Failed to update bank account")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, account)
}

// RemoveAccount handles DELETE /api/accounts/{id}. Credit cards billed to the
// account are removed with it.
func (h *SettingsHandler) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveBankAccount(r.PathValue("id")); err != nil {
		h.writeStoreError(w, err, "Failed to remove bank account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCards handles GET /api/cards.
func (h *SettingsHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"cards": h.store.CreditCards()})
}

// AddCard handles POST /api/cards.
func (h *SettingsHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var card domain.CreditCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if card.Name == "" || card.BankAccountID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Card name and bank account are required")
		return
	}

	created, err := h.store.AddCreditCard(card)
	if err != nil {
		h.writeStoreError(w, err, "Failed to add credit card")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, created)
}

// RemoveCard handles DELETE /api/cards/{id}.
func (h *SettingsHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveCreditCard(r.PathValue("id")); err != nil {
		h.writeStoreError(w, err, "Failed to remove credit card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBanks handles GET /api/banks with an optional ?country= filter.
func (h *SettingsHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	directory := banks.Directory
	if country := r.URL.Query().Get("country"); country != "" {
		directory = banks.ByCountry(strings.ToUpper(country))
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"banks": directory})
}

// GetSession handles GET /api/session: sign-in state and, when signed in, the
// Google profile.
func (h *SettingsHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if !h.session.SignedIn() {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"signedIn": false})
		return
	}

	profile, err := h.session.Profile(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to load Google profile")
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"signedIn": true})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"signedIn": true,
		"profile":  profile,
	})
}

// SignOut handles POST /api/session/signout.
func (h *SettingsHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.session.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

// AuthURL handles GET /api/session/auth-url: the Google consent URL the
// client redirects the user to.
func (h *SettingsHandler) AuthURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = "turtle"
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"url": h.session.AuthURL(state)})
}

// AuthCallback handles GET /api/session/callback: the OAuth redirect target
// that trades the authorization code for a stored credential.
func (h *SettingsHandler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}
	if err := h.session.Exchange(r.Context(), code); err != nil {
		h.log.Error().Err(err).Msg("OAuth code exchange failed")
		middleware.WriteError(w, http.StatusBadGateway, "Authorization failed")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"signedIn": true})
}

func (h *SettingsHandler) writeStoreError(w http.ResponseWriter, err error, message string) {
	h.log.Error().Err(err).Msg(message)
	middleware.WriteError(w, http.StatusInternalServerError, message)
}
