package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/rwamarket/auctiond/internal/core/application"
	"github.com/rwamarket/auctiond/internal/core/domain"
)

type auctionHandler struct {
	svc application.AuctionService
}

func (h auctionHandler) createAuction(w http.ResponseWriter, r *http.Request) {
	var req createAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	startingPrice, err := parseAmount(req.StartingPrice, currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid starting price")
		return
	}
	reservePrice, err := parseAmount(req.ReservePrice, currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reserve price")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end time")
		return
	}

	auction, err := h.svc.CreateAuction(r.Context(), application.CreateAuctionArgs{
		AssetRef:      req.AssetRef,
		Seller:        identityFromContext(r.Context()),
		StartingPrice: startingPrice,
		ReservePrice:  reservePrice,
		Currency:      currency,
		EndTime:       endTime,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuctionResponse(auction))
}

func (h auctionHandler) placeBid(w http.ResponseWriter, r *http.Request) {
	auctionId := mux.Vars(r)["id"]

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	auction, err := h.svc.GetAuction(r.Context(), auctionId)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount, auction.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	updated, err := h.svc.PlaceBid(
		r.Context(), auctionId, identityFromContext(r.Context()), amount,
	)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuctionResponse(updated))
}

func (h auctionHandler) settleAuction(w http.ResponseWriter, r *http.Request) {
	auctionId := mux.Vars(r)["id"]

	auction, outcome, err := h.svc.SettleAuction(r.Context(), auctionId)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettlementResponse(auction, outcome))
}

func (h auctionHandler) cancelAuction(w http.ResponseWriter, r *http.Request) {
	auctionId := mux.Vars(r)["id"]

	auction, err := h.svc.CancelAuction(
		r.Context(), auctionId, identityFromContext(r.Context()),
	)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuctionResponse(auction))
}

func (h auctionHandler) getAuction(w http.ResponseWriter, r *http.Request) {
	auction, err := h.svc.GetAuction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuctionResponse(auction))
}

func (h auctionHandler) listAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.svc.ListAuctions(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := make([]auctionResponse, 0, len(auctions))
	for i := range auctions {
		resp = append(resp, toAuctionResponse(&auctions[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeDomainError maps a typed engine error to its HTTP status. An escrow
// inconsistency is a defect, never a client error: it is logged loudly and
// surfaced as a 500.
func (h auctionHandler) writeDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrEscrowInconsistency) {
		log.WithError(err).Error("escrow invariant violated, operation aborted")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for target, code := range statusCodes {
		if errors.Is(err, target) {
			writeError(w, code, err.Error())
			return
		}
	}

	log.WithError(err).Error("unexpected error serving request")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// nolint:errcheck
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}
