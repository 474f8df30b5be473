package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var createauction = cli.Command{
	Name:  "create",
	Usage: "create a new auction for an owned asset",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "asset", Usage: "reference of the tokenized asset", Required: true},
		&cli.StringFlag{Name: "starting-price", Required: true},
		&cli.StringFlag{Name: "reserve-price", Required: true},
		&cli.StringFlag{Name: "currency", Value: "USDC"},
		&cli.StringFlag{Name: "end-time", Usage: "RFC3339 timestamp", Required: true},
	},
	Action: createAuctionAction,
}

var placebid = cli.Command{
	Name:  "bid",
	Usage: "place a bid on an active auction",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "auction", Required: true},
		&cli.StringFlag{Name: "amount", Required: true},
	},
	Action: placeBidAction,
}

var settleauction = cli.Command{
	Name:  "settle",
	Usage: "settle an auction after its end time",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "auction", Required: true},
	},
	Action: settleAuctionAction,
}

var cancelauction = cli.Command{
	Name:  "cancel",
	Usage: "cancel an auction that received no bids",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "auction", Required: true},
	},
	Action: cancelAuctionAction,
}

var getauction = cli.Command{
	Name:  "get",
	Usage: "show an auction",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "auction", Required: true},
	},
	Action: getAuctionAction,
}

var listauctions = cli.Command{
	Name:   "list",
	Usage:  "list all auctions",
	Action: listAuctionsAction,
}

var mintasset = cli.Command{
	Name:  "mint",
	Usage: "register a new tokenized asset (registry authority only)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "asset", Required: true},
		&cli.StringFlag{Name: "owner", Required: true},
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "category", Required: true},
		&cli.StringFlag{Name: "uri"},
		&cli.Uint64Flag{Name: "appraised-value"},
		&cli.StringFlag{Name: "condition"},
	},
	Action: mintAssetAction,
}

var creditfunds = cli.Command{
	Name:  "credit",
	Usage: "fund an account on the embedded payment ledger (registry authority only)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "identity", Required: true},
		&cli.StringFlag{Name: "amount", Required: true},
		&cli.StringFlag{Name: "currency", Value: "USDC"},
	},
	Action: creditFundsAction,
}

func createAuctionAction(ctx *cli.Context) error {
	return doRequest(ctx, http.MethodPost, "/v1/auctions", map[string]string{
		"assetRef":      ctx.String("asset"),
		"startingPrice": ctx.String("starting-price"),
		"reservePrice":  ctx.String("reserve-price"),
		"currency":      ctx.String("currency"),
		"endTime":       ctx.String("end-time"),
	})
}

func placeBidAction(ctx *cli.Context) error {
	path := fmt.Sprintf("/v1/auctions/%s/bids", ctx.String("auction"))
	return doRequest(ctx, http.MethodPost, path, map[string]string{
		"amount": ctx.String("amount"),
	})
}

func settleAuctionAction(ctx *cli.Context) error {
	path := fmt.Sprintf("/v1/auctions/%s/settle", ctx.String("auction"))
	return doRequest(ctx, http.MethodPost, path, nil)
}

func cancelAuctionAction(ctx *cli.Context) error {
	path := fmt.Sprintf("/v1/auctions/%s/cancel", ctx.String("auction"))
	return doRequest(ctx, http.MethodPost, path, nil)
}

func getAuctionAction(ctx *cli.Context) error {
	path := fmt.Sprintf("/v1/auctions/%s", ctx.String("auction"))
	return doRequest(ctx, http.MethodGet, path, nil)
}

func listAuctionsAction(ctx *cli.Context) error {
	return doRequest(ctx, http.MethodGet, "/v1/auctions", nil)
}

func mintAssetAction(ctx *cli.Context) error {
	return doRequest(ctx, http.MethodPost, "/v1/assets", map[string]interface{}{
		"assetRef":       ctx.String("asset"),
		"owner":          ctx.String("owner"),
		"name":           ctx.String("name"),
		"category":       ctx.String("category"),
		"uri":            ctx.String("uri"),
		"appraisedValue": ctx.Uint64("appraised-value"),
		"condition":      ctx.String("condition"),
	})
}

func creditFundsAction(ctx *cli.Context) error {
	return doRequest(ctx, http.MethodPost, "/v1/accounts/credit", map[string]string{
		"identity": ctx.String("identity"),
		"amount":   ctx.String("amount"),
		"currency": ctx.String("currency"),
	})
}
