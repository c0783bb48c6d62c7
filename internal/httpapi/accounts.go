package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/taskdeck/internal/logger"
	"github.com/dmitrymomot/taskdeck/internal/storage"
)

type createAccountRequest struct {
	Report       string `json:"report"`
	AccountClass string `json:"accountClass"`
	Caption      string `json:"caption"`
	FSLine       string `json:"fsLine"`
	Currency     string `json:"currency"`
}

// ListAccounts returns every account. Accounts are shared data, so the list
// is not scoped to the caller.
func (a *API) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := a.accounts.List(r.Context())
	if err != nil {
		a.log.ErrorContext(r.Context(), "failed to list accounts", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if accounts == nil {
		accounts = []storage.Account{}
	}
	a.writeJSON(w, http.StatusOK, accounts)
}

// CreateAccount creates an account attributed to the caller.
func (a *API) CreateAccount(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req createAccountRequest
	if !a.decodeJSON(w, r, &req) {
		return
	}

	account := storage.Account{
		ID:           uuid.New(),
		UserID:       principal.ID,
		UserName:     principal.Username,
		Report:       req.Report,
		AccountClass: req.AccountClass,
		Caption:      req.Caption,
		FSLine:       req.FSLine,
		Currency:     req.Currency,
	}

	if err := a.accounts.Create(r.Context(), account); err != nil {
		a.log.ErrorContext(r.Context(), "failed to create account", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	a.writeJSON(w, http.StatusCreated, account)
}

// DeleteAccount removes an account by id.
func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		a.writeError(w, http.StatusNotFound, msgAccountNotFound)
		return
	}

	if err := a.accounts.Delete(r.Context(), accountID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, msgAccountNotFound)
			return
		}
		a.log.ErrorContext(r.Context(), "failed to delete account", logger.Error(err))
		a.writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	a.writeMessage(w, http.StatusOK, "Account deleted")
}
