package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rwamarket/auctiond/internal/core/domain"
	assetregistry "github.com/rwamarket/auctiond/internal/infrastructure/asset-registry"
	"github.com/rwamarket/auctiond/internal/infrastructure/payments"
)

type mintAssetRequest struct {
	AssetRef       string `json:"assetRef"`
	Owner          string `json:"owner"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	URI            string `json:"uri"`
	AppraisedValue uint64 `json:"appraisedValue"`
	Condition      string `json:"condition"`
}

type appraiseAssetRequest struct {
	AppraisedValue uint64 `json:"appraisedValue"`
}

type creditFundsRequest struct {
	Identity string `json:"identity"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// adminHandler exposes the embedded registry and payment ledger for
// development deployments: minting assets, re-appraising them and funding
// accounts. Calls are restricted to the configured registry authority.
type adminHandler struct {
	registry *assetregistry.Service
	payments *payments.Service
}

func (h adminHandler) mintAsset(w http.ResponseWriter, r *http.Request) {
	var req mintAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.registry.Mint(
		identityFromContext(r.Context()), req.AssetRef, req.Owner,
		assetregistry.Metadata{
			Name:           req.Name,
			Category:       req.Category,
			URI:            req.URI,
			AppraisedValue: req.AppraisedValue,
			Condition:      req.Condition,
		},
	)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h adminHandler) appraiseAsset(w http.ResponseWriter, r *http.Request) {
	assetRef := mux.Vars(r)["ref"]

	var req appraiseAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.UpdateAppraisal(
		identityFromContext(r.Context()), assetRef, req.AppraisedValue,
	); err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h adminHandler) creditFunds(w http.ResponseWriter, r *http.Request) {
	var req creditFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	baseUnits, err := currency.ToBaseUnits(amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	h.payments.Credit(req.Identity, baseUnits, currency)
	w.WriteHeader(http.StatusNoContent)
}

func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assetregistry.ErrUnauthorizedMinter):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, assetregistry.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, assetregistry.ErrAssetAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
