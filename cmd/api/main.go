package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/alan-vieira/controle-familiar/internal/auth"
	authStore "github.com/alan-vieira/controle-familiar/internal/auth/store"
	"github.com/alan-vieira/controle-familiar/internal/categorize"
	categorizeStore "github.com/alan-vieira/controle-familiar/internal/categorize/store"
	"github.com/alan-vieira/controle-familiar/internal/config"
	"github.com/alan-vieira/controle-familiar/internal/database"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	expenseStore "github.com/alan-vieira/controle-familiar/internal/expense/store"
	apiHttp "github.com/alan-vieira/controle-familiar/internal/http"
	authHandler "github.com/alan-vieira/controle-familiar/internal/http/auth"
	categorizeHandler "github.com/alan-vieira/controle-familiar/internal/http/categorize"
	expenseHandler "github.com/alan-vieira/controle-familiar/internal/http/expense"
	importHandler "github.com/alan-vieira/controle-familiar/internal/http/importcsv"
	incomeHandler "github.com/alan-vieira/controle-familiar/internal/http/income"
	participantHandler "github.com/alan-vieira/controle-familiar/internal/http/participant"
	settlementHandler "github.com/alan-vieira/controle-familiar/internal/http/settlement"
	"github.com/alan-vieira/controle-familiar/internal/importer"
	"github.com/alan-vieira/controle-familiar/internal/income"
	incomeStore "github.com/alan-vieira/controle-familiar/internal/income/store"
	"github.com/alan-vieira/controle-familiar/internal/participant"
	participantStore "github.com/alan-vieira/controle-familiar/internal/participant/store"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
	settlementStore "github.com/alan-vieira/controle-familiar/internal/settlement/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		participantService = participant.NewService(participantStore.New(db))
		expenseService     = expense.NewService(expenseStore.New(db), participantService)
		incomeService      = income.NewService(incomeStore.New(db), participantService)
		settlementService  = settlement.NewService(settlementStore.New(db))
		categorizeService  = categorize.NewService(categorizeStore.New(db))
		importService      = importer.NewService(categorizeService)
		authenticator      = auth.NewAuthenticator(authStore.New(db))
		tokens             = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	var (
		authH        = authHandler.NewHandler(authenticator, tokens)
		participantH = participantHandler.NewHandler(participantService)
		expenseH     = expenseHandler.NewHandler(expenseService)
		incomeH      = incomeHandler.NewHandler(incomeService)
		settlementH  = settlementHandler.NewHandler(settlementService)
		importH      = importHandler.NewHandler(importService, expenseService)
		categorizeH  = categorizeHandler.NewHandler(categorizeService)
	)

	router := apiHttp.New(tokens, authH, participantH, expenseH, incomeH, settlementH, importH, categorizeH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
