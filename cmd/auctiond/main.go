package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rwamarket/auctiond/internal/config"
	"github.com/rwamarket/auctiond/internal/core/application"
	"github.com/rwamarket/auctiond/internal/core/ports"
	assetregistry "github.com/rwamarket/auctiond/internal/infrastructure/asset-registry"
	"github.com/rwamarket/auctiond/internal/infrastructure/payments"
	"github.com/rwamarket/auctiond/internal/infrastructure/pubsub"
	dbbadger "github.com/rwamarket/auctiond/internal/infrastructure/storage/db/badger"
	"github.com/rwamarket/auctiond/internal/infrastructure/storage/db/inmemory"
	"github.com/rwamarket/auctiond/internal/interfaces/rest"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	defer repoManager.Close()

	currencies, err := config.GetCurrencies()
	if err != nil {
		log.WithError(err).Fatal("invalid currency set")
	}

	registrySvc := assetregistry.NewService(config.GetString(config.RegistryAuthorityKey))
	paymentSvc := payments.NewService()
	pubsubSvc := pubsub.NewService()
	defer pubsubSvc.Close()

	auctionSvc, err := application.NewAuctionService(
		repoManager, registrySvc, paymentSvc, pubsubSvc,
		application.PlatformConfig{
			Treasury:        config.GetString(config.TreasuryKey),
			EscrowAccount:   config.GetString(config.EscrowAccountKey),
			FeeBasisPoints:  uint32(config.GetInt(config.FeeBasisPointsKey)),
			MinBidIncrement: uint64(config.GetInt(config.MinBidIncrementKey)),
			Currencies:      currencies,
		},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init auction service")
	}

	handler := rest.NewHandler(rest.ServiceOpts{
		AuctionService: auctionSvc,
		PubSub:         pubsubSvc,
		JWTSecret:      []byte(config.GetString(config.JWTSecretKey)),
		BidRateLimit:   config.GetInt(config.BidRateLimitKey),
		Registry:       registrySvc,
		Payments:       paymentSvc,
	})

	addr := fmt.Sprintf(":%d", config.GetInt(config.ListenPortKey))
	server := &http.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("auction interface is listening on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("daemon exited with error")
	}
	log.Info("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		return inmemory.NewRepoManager(), nil
	default:
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		return dbbadger.NewRepoManager(dbDir, nil)
	}
}
