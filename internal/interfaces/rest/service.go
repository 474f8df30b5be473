package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/ratelimit"

	"github.com/rwamarket/auctiond/internal/core/application"
	"github.com/rwamarket/auctiond/internal/core/ports"
	assetregistry "github.com/rwamarket/auctiond/internal/infrastructure/asset-registry"
	"github.com/rwamarket/auctiond/internal/infrastructure/payments"
)

// ServiceOpts configures the HTTP interface.
type ServiceOpts struct {
	AuctionService application.AuctionService
	PubSub         ports.PubSub
	JWTSecret      []byte
	// BidRateLimit is the per-second pacing of the bid endpoint.
	BidRateLimit int
	// Registry and Payments, when set, enable the admin endpoints of the
	// embedded development adapters.
	Registry *assetregistry.Service
	Payments *payments.Service
}

// NewHandler returns the HTTP interface of the engine: the four auction
// operations plus read endpoints, the live event feed and the metrics
// endpoint. Every operation endpoint requires a bearer token carrying the
// caller identity.
func NewHandler(opts ServiceOpts) http.Handler {
	handler := auctionHandler{svc: opts.AuctionService}
	events := eventsHandler{pubsub: opts.PubSub}
	auth := authMiddleware(opts.JWTSecret)
	bidLimiter := ratelimit.New(opts.BidRateLimit)

	router := mux.NewRouter()
	router.Use(loggerMiddleware)

	v1 := router.PathPrefix("/v1").Subrouter()

	v1.Handle(
		"/auctions",
		metricsMiddleware("create_auction", auth(http.HandlerFunc(handler.createAuction))),
	).Methods(http.MethodPost)
	v1.Handle(
		"/auctions/{id}/bids",
		metricsMiddleware("place_bid", auth(rateLimitMiddleware(
			bidLimiter, http.HandlerFunc(handler.placeBid),
		))),
	).Methods(http.MethodPost)
	v1.Handle(
		"/auctions/{id}/settle",
		metricsMiddleware("settle_auction", auth(http.HandlerFunc(handler.settleAuction))),
	).Methods(http.MethodPost)
	v1.Handle(
		"/auctions/{id}/cancel",
		metricsMiddleware("cancel_auction", auth(http.HandlerFunc(handler.cancelAuction))),
	).Methods(http.MethodPost)
	v1.Handle(
		"/auctions/{id}",
		metricsMiddleware("get_auction", http.HandlerFunc(handler.getAuction)),
	).Methods(http.MethodGet)
	v1.Handle(
		"/auctions",
		metricsMiddleware("list_auctions", http.HandlerFunc(handler.listAuctions)),
	).Methods(http.MethodGet)
	v1.HandleFunc("/ws", events.serveFeed).Methods(http.MethodGet)

	if opts.Registry != nil && opts.Payments != nil {
		admin := adminHandler{registry: opts.Registry, payments: opts.Payments}
		v1.Handle(
			"/assets", auth(http.HandlerFunc(admin.mintAsset)),
		).Methods(http.MethodPost)
		v1.Handle(
			"/assets/{ref}/appraisal", auth(http.HandlerFunc(admin.appraiseAsset)),
		).Methods(http.MethodPost)
		v1.Handle(
			"/accounts/credit", auth(http.HandlerFunc(admin.creditFunds)),
		).Methods(http.MethodPost)
	}

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
