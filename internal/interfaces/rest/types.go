package rest

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	assetregistry "github.com/rwamarket/auctiond/internal/infrastructure/asset-registry"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

type createAuctionRequest struct {
	AssetRef      string `json:"assetRef"`
	StartingPrice string `json:"startingPrice"`
	ReservePrice  string `json:"reservePrice"`
	Currency      string `json:"currency"`
	EndTime       string `json:"endTime"`
}

type placeBidRequest struct {
	Amount string `json:"amount"`
}

type bidResponse struct {
	Bidder string `json:"bidder"`
	Amount string `json:"amount"`
}

type auctionResponse struct {
	Id            string       `json:"id"`
	AssetRef      string       `json:"assetRef"`
	Seller        string       `json:"seller"`
	StartingPrice string       `json:"startingPrice"`
	ReservePrice  string       `json:"reservePrice"`
	Currency      string       `json:"currency"`
	EndTime       time.Time    `json:"endTime"`
	Status        string       `json:"status"`
	CurrentBid    *bidResponse `json:"currentBid,omitempty"`
	FeeBps        uint32       `json:"feeBps"`
	BidCount      uint32       `json:"bidCount"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type settlementResponse struct {
	Auction        auctionResponse `json:"auction"`
	Sold           bool            `json:"sold"`
	Winner         string          `json:"winner,omitempty"`
	Price          string          `json:"price,omitempty"`
	Fee            string          `json:"fee,omitempty"`
	SellerProceeds string          `json:"sellerProceeds,omitempty"`
	RefundedBidder string          `json:"refundedBidder,omitempty"`
	RefundedAmount string          `json:"refundedAmount,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toAuctionResponse(a *domain.Auction) auctionResponse {
	resp := auctionResponse{
		Id:            a.Id,
		AssetRef:      a.AssetRef,
		Seller:        a.Seller,
		StartingPrice: a.Currency.FromBaseUnits(a.StartingPrice).String(),
		ReservePrice:  a.Currency.FromBaseUnits(a.ReservePrice).String(),
		Currency:      string(a.Currency),
		EndTime:       a.EndTime,
		Status:        statusString(a.Status),
		FeeBps:        a.FeeBasisPoints,
		BidCount:      a.BidCount,
		CreatedAt:     a.CreatedAt,
	}
	if a.CurrentBid != nil {
		resp.CurrentBid = &bidResponse{
			Bidder: a.CurrentBid.Bidder,
			Amount: a.Currency.FromBaseUnits(a.CurrentBid.Amount).String(),
		}
	}
	return resp
}

func toSettlementResponse(
	a *domain.Auction, outcome *domain.SettlementOutcome,
) settlementResponse {
	resp := settlementResponse{
		Auction: toAuctionResponse(a),
		Sold:    outcome.Sold,
	}
	if outcome.Sold {
		resp.Winner = outcome.Winner
		resp.Price = a.Currency.FromBaseUnits(outcome.Price).String()
		resp.Fee = a.Currency.FromBaseUnits(outcome.Fee).String()
		resp.SellerProceeds = a.Currency.FromBaseUnits(outcome.SellerProceeds).String()
	} else if outcome.Refund != nil {
		resp.RefundedBidder = outcome.Refund.Bidder
		resp.RefundedAmount = a.Currency.FromBaseUnits(outcome.Refund.Amount).String()
	}
	return resp
}

func statusString(status int) string {
	switch status {
	case domain.AuctionStatusActive:
		return "active"
	case domain.AuctionStatusSettled:
		return "settled"
	case domain.AuctionStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func parseAmount(raw string, currency domain.Currency) (uint64, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	return currency.ToBaseUnits(amount)
}

// statusCodes maps every typed engine error to a stable HTTP status.
var statusCodes = map[error]int{
	domain.ErrInvalidPricing:        http.StatusBadRequest,
	domain.ErrInvalidCurrency:       http.StatusBadRequest,
	domain.ErrInvalidEndTime:        http.StatusBadRequest,
	domain.ErrInvalidFeeBasisPoints: http.StatusBadRequest,
	domain.ErrBidTooLow:             http.StatusBadRequest,
	domain.ErrNotOwner:              http.StatusForbidden,
	domain.ErrNotSeller:             http.StatusForbidden,
	domain.ErrInsufficientFunds:     http.StatusPaymentRequired,
	domain.ErrAssetEncumbered:       http.StatusConflict,
	domain.ErrAuctionNotActive:      http.StatusConflict,
	domain.ErrNotYetEnded:           http.StatusConflict,
	domain.ErrAuctionHasBids:        http.StatusConflict,
	domain.ErrAuctionNotFound:       http.StatusNotFound,
	assetregistry.ErrAssetNotFound:  http.StatusNotFound,
}
