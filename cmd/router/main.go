// Copyright (c) 2023 The Sunrise Stake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/lmittmann/tint"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sunrise-stake/router/accounts"
	"github.com/sunrise-stake/router/api"
	"github.com/sunrise-stake/router/cmd/router/solo"
	routerlog "github.com/sunrise-stake/router/log"
	"github.com/sunrise-stake/router/router"
	"github.com/sunrise-stake/router/router/venuetest"
	"github.com/sunrise-stake/router/state"
	"github.com/sunrise-stake/router/sunrise"
	"github.com/sunrise-stake/router/telemetry"
)

var version = "dev"

var logger = routerlog.WithContext("pkg", "main")

func main() {
	app := cli.App{
		Version: version,
		Name:    "sunrise-router",
		Usage:   "liquid-staking router",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			verbosityFlag,
		},
		Action: apiAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "run the engine against simulated venues",
				Flags: []cli.Flag{
					dataDirFlag,
					apiAddrFlag,
					verbosityFlag,
					epochLengthFlag,
					persistFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".sunrise-router")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	level := slog.LevelInfo
	switch ctx.Int(verbosityFlag.Name) {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 3, 4:
		level = slog.LevelDebug
	}
	routerlog.SetHandler(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

func openStore(ctx *cli.Context) (state.Store, error) {
	if !ctx.Bool(persistFlag.Name) {
		return state.NewMem(), nil
	}
	dir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return state.OpenLevelDB(filepath.Join(dir, "state"))
}

func serveAPI(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.CompressHandler(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //#nosec G104
	}()

	logger.Info("API started", "addr", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func soloAction(cliCtx *cli.Context) error {
	initLogger(cliCtx)
	telemetry.InitializePrometheusTelemetry()

	store, err := openStore(cliCtx)
	if err != nil {
		return err
	}
	defer store.Close()

	marinade := venuetest.NewDelegationPool(100_000 * sunrise.LamportsPerSol)
	blaze := venuetest.NewStakePool(100_000 * sunrise.LamportsPerSol)
	gsol := venuetest.NewReceiptMint()

	sctx := accounts.NewContext(sunrise.BytesToAddress([]byte("solo-deployment")), state.New(store))
	engine := router.New(sctx, marinade, blaze, gsol)

	dep, err := engine.Deployment()
	if err != nil {
		return err
	}
	if dep == nil {
		authority := sunrise.BytesToAddress([]byte("solo-authority"))
		if err := engine.RegisterState(&router.Deployment{
			UpdateAuthority:      authority,
			GsolMint:             sunrise.BytesToAddress([]byte("solo-gsol-mint")),
			Treasury:             sunrise.BytesToAddress([]byte("solo-treasury")),
			MarinadeState:        sunrise.BytesToAddress([]byte("solo-marinade")),
			BlazeState:           sunrise.BytesToAddress([]byte("solo-blaze")),
			LiqPoolProportion:    10,
			LiqPoolMinProportion: 5,
			MarinadeShareBps:     uint16(sunrise.MarinadeShareBps),
		}); err != nil {
			return err
		}
		if _, err := engine.InitEpochReport(0, 0); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		errCh <- serveAPI(ctx, cliCtx.String(apiAddrFlag.Name), api.New(engine))
	}()
	go func() {
		errCh <- solo.New(engine, marinade, blaze, gsol, solo.Options{
			EpochLength: cliCtx.Duration(epochLengthFlag.Name),
		}).Run(ctx)
	}()

	select {
	case err := <-errCh:
		stop()
		return err
	case <-ctx.Done():
		return nil
	}
}

func apiAction(cliCtx *cli.Context) error {
	initLogger(cliCtx)
	telemetry.InitializePrometheusTelemetry()

	dir := cliCtx.String(dataDirFlag.Name)
	store, err := state.OpenLevelDB(filepath.Join(dir, "state"))
	if err != nil {
		return err
	}
	defer store.Close()

	// the read-only surface never invokes the venues
	sctx := accounts.NewContext(sunrise.BytesToAddress([]byte("solo-deployment")), state.New(store))
	engine := router.New(sctx, venuetest.NewDelegationPool(0), venuetest.NewStakePool(0), venuetest.NewReceiptMint())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serveAPI(ctx, cliCtx.String(apiAddrFlag.Name), api.New(engine))
}
