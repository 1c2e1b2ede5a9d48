package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inventario-backend/internal/audit"
	"inventario-backend/internal/catalog"
	"inventario-backend/internal/config"
	"inventario-backend/internal/database"
	"inventario-backend/internal/ledger"
	"inventario-backend/internal/logger"
	"inventario-backend/internal/server"
	"inventario-backend/internal/sheets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Geçersiz yapılandırma: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.Logger)
	if err != nil {
		log.Fatalf("Logger oluşturulamadı: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Google istemcisi süreç boyunca yaşar, sinyal context'ine bağlanmaz
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		zl.Fatal("tablo deposu açılamadı", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}

	deps := server.Deps{
		Catalog:     catalog.NewService(store, zl),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOriginList(),
		Log:         zl,
	}

	var ledgerOpts []ledger.Option
	if cfg.AuditEnabled() {
		db, err := database.Open(cfg.DatabaseDSN, zl)
		if err != nil {
			zl.Fatal("audit veritabanı açılamadı", zap.Error(err))
		}
		defer func() { _ = database.Close(db) }()

		deps.Audit = audit.NewService(db, zl)
		ledgerOpts = append(ledgerOpts, ledger.WithRecorder(deps.Audit))
	}
	deps.Ledger = ledger.NewService(store, zl, ledgerOpts...)

	app := server.NewApp(deps, fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		zl.Info("kapatma sinyali alındı")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			zl.Error("sunucu düzgün kapatılamadı", zap.Error(err))
		}
	}()

	zl.Info("sunucu başlatılıyor",
		zap.String("port", cfg.HTTPPort),
		zap.String("backend", cfg.Store.Backend),
		zap.Bool("auth", cfg.AuthEnabled()),
		zap.Bool("audit", cfg.AuditEnabled()),
	)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		zl.Error("sunucu durdu", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	if cfg.Store.Backend == config.BackendWorkbook {
		return sheets.NewWorkbookStore(cfg.Store.WorkbookPath, cfg.Store.CatalogSheetName, cfg.Store.LedgerSheetName), nil
	}
	gs, err := sheets.NewGoogleStore(ctx, sheets.GoogleOptions{
		CredentialsFile:      cfg.Store.CredentialsFile,
		CatalogSpreadsheetID: cfg.Store.CatalogSpreadsheetID,
		CatalogSheetName:     cfg.Store.CatalogSheetName,
		LedgerSpreadsheetID:  cfg.Store.LedgerSpreadsheetID,
		LedgerSheetName:      cfg.Store.LedgerSheetName,
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
