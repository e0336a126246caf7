package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"

	"github.com/openalpha/piggy-vault/api"
	"github.com/openalpha/piggy-vault/bank"
	"github.com/openalpha/piggy-vault/config"
	"github.com/openalpha/piggy-vault/fx"
	"github.com/openalpha/piggy-vault/metrics"
	"github.com/openalpha/piggy-vault/recorder"
	"github.com/openalpha/piggy-vault/scheduler"
	"github.com/openalpha/piggy-vault/x/vault/keeper"
	"github.com/openalpha/piggy-vault/x/vault/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	host := flag.String("host", "", "Server host (overrides config)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	noDB := flag.Bool("no-db", false, "Disable the SQLite recorder")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		stdlog.Fatalf("invalid config: %v", err)
	}

	logger := log.NewLogger(os.Stderr)

	// Ledger collaborators: custody book, allocation oracle, swap desk.
	custody := bank.NewCustody()
	oracle := fx.NewOracle()
	desk := fx.NewSwapDesk(custody)

	params := types.DefaultParams()
	params.RewardFeeBps = cfg.Vault.RewardFeeBps
	params.ProfitFeeBps = cfg.Vault.ProfitFeeBps
	if err := params.Validate(); err != nil {
		stdlog.Fatalf("invalid params: %v", err)
	}

	k := keeper.NewKeeper(custody, oracle, desk, params,
		cfg.Vault.Authority, cfg.Vault.Developer, logger)

	// Recorder: SQLite unless disabled.
	var rec recorder.Recorder
	if *noDB {
		rec = recorder.NewNoopRecorder()
	} else {
		sqliteRec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			stdlog.Fatalf("open recorder: %v", err)
		}
		rec = sqliteRec
	}
	defer rec.Close()

	service := api.NewVaultService(k)
	server := api.NewServer(&api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, service, logger)

	// Fan ledger events out to the hub, the recorder and the metrics
	// collector.
	recEmitter := recorder.NewEmitter(rec, logger)
	defer recEmitter.Close()
	k.SetEventEmitter(api.NewFanoutEmitter(server.Hub(), recEmitter, metrics.NewEmitter()))

	// Periodic valuation snapshots.
	sched := scheduler.NewScheduler(k, rec, logger)
	if err := sched.RegisterAll(cfg.Schedule.ValuationCron); err != nil {
		stdlog.Fatalf("register scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err)
		}
	}()

	logger.Info("Vault service started",
		"addr", cfg.Server.Host,
		"port", cfg.Server.Port,
		"authority", cfg.Vault.Authority,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}
