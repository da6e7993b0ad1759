package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comptable/internal/config"
	"comptable/internal/db"
	"comptable/internal/handlers"
	"comptable/internal/ledger"
	"comptable/internal/services"
	"comptable/internal/store"
	"comptable/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	accounts := store.NewAccountStore(database)
	journals := store.NewJournalStore(database)
	transactions := store.NewTransactionStore(database)
	bankTxs := store.NewBankTxStore(database)
	invoices := store.NewInvoiceStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	aggregator := ledger.NewAggregator(journals)
	statements := ledger.NewStatementBuilder(accounts, aggregator)
	journalSvc := services.NewJournalService(txRunner, journals, hub)
	reconcileSvc := services.NewReconciliationService(txRunner, bankTxs, journals, hub)

	handler := handlers.New(txRunner, cfg, users, accounts, journals, transactions, bankTxs, invoices, aggregator, statements, journalSvc, reconcileSvc, users, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("accounting API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
