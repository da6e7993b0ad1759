package handlers

import (
	"net/http"

	"comptable/internal/config"
	"comptable/internal/db"
	"comptable/internal/middleware"
	"comptable/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner     db.TxRunner
	cfg          config.Config
	users        UserStore
	accounts     AccountStore
	journals     JournalStore
	transactions TransactionStore
	bankTxs      BankTxStore
	invoices     InvoiceStore
	balances     BalanceSource
	statements   StatementSource
	journalSvc   JournalService
	reconcileSvc ReconciliationService
	roles        middleware.RoleSource
	hub          *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, accounts AccountStore, journals JournalStore, transactions TransactionStore, bankTxs BankTxStore, invoices InvoiceStore, balances BalanceSource, statements StatementSource, journalSvc JournalService, reconcileSvc ReconciliationService, roles middleware.RoleSource, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:     txRunner,
		cfg:          cfg,
		users:        users,
		accounts:     accounts,
		journals:     journals,
		transactions: transactions,
		bankTxs:      bankTxs,
		invoices:     invoices,
		balances:     balances,
		statements:   statements,
		journalSvc:   journalSvc,
		reconcileSvc: reconcileSvc,
		roles:        roles,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})
	router.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Put("/profile", h.UpdateProfile)
		r.Put("/password", h.UpdatePassword)
	})
	router.Route("/accounts", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListAccounts)
		r.Post("/", h.UpsertAccount)
		r.Get("/search", h.SearchAccounts)
		r.Get("/{code}/balance", h.AccountBalance)
	})
	router.Route("/journals", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Post("/", h.CreateJournalEntry)
		r.Get("/entries/{id}", h.GetJournalEntry)
		r.Get("/{type}", h.ListJournalEntries)
	})
	router.Route("/statements", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/balance-sheet", h.BalanceSheet)
		r.Get("/income-statement", h.IncomeStatement)
	})
	router.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListTransactions)
		r.Post("/", h.CreateTransaction)
		r.Put("/{id}", h.UpdateTransaction)
		r.Delete("/{id}", h.DeleteTransaction)
	})
	router.Route("/reconciliation", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/transactions", h.ListBankTransactions)
		r.Post("/import", h.ImportBankTransactions)
		r.Post("/run", h.RunReconciliation)
		r.Get("/matches", h.ListMatches)
		r.Post("/confirm", h.ConfirmMatch)
		r.Post("/unmatch", h.UnmatchTransaction)
	})
	router.Route("/invoices", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListInvoices)
		r.Post("/", h.CreateInvoice)
		r.Get("/{id}", h.GetInvoice)
		r.Put("/{id}/status", h.UpdateInvoiceStatus)
		r.Delete("/{id}", h.DeleteInvoice)
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.With(middleware.RequireRole(h.roles, "ADMIN")).Get("/users", h.AdminListUsers)
	})
	router.Get("/ws/events", h.WSEvents)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
