package handler

import (
	"net/http"
	"time"

	"github.com/moreira/financas-casal-go/internal/domain"
	"github.com/moreira/financas-casal-go/internal/infra/observability"
	"github.com/moreira/financas-casal-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterConfig carries the router's cross-cutting settings.
type RouterConfig struct {
	CORSAllowedOrigins []string
	AuthRequired       bool
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the household dashboard frontend.
func NewRouter(svc *service.FinanceService, authSvc *service.AuthService, metrics *observability.Metrics, logger *zap.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			if authSvc == nil {
				r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, http.StatusServiceUnavailable, "auth service unavailable: JWT secret not configured")
				}))
				return
			}
			r.Post("/login", authLoginHandler(authSvc, logger))
			r.Post("/refresh", authRefreshHandler(authSvc, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(authSvc, logger))
				r.Post("/logout", authLogoutHandler(authSvc, logger))
			})
		})

		// Data routes, optionally behind auth.
		r.Group(func(r chi.Router) {
			if cfg.AuthRequired && authSvc != nil {
				r.Use(JWTAuthMiddleware(authSvc, logger))
			}

			// =============================================
			// Snapshot & household
			// =============================================
			r.Get("/financial-data", financialDataHandler(svc, logger))
			r.Get("/users", listUsersHandler(svc, logger))

			// =============================================
			// Transações
			// =============================================
			r.Get("/transactions", listTransactionsHandler(svc, logger))
			r.Post("/transactions", createTransactionHandler(svc, logger))
			r.Put("/transactions/{id}", updateTransactionHandler(svc, logger))
			r.Delete("/transactions/{id}", deleteTransactionHandler(svc, logger))

			// =============================================
			// Contas
			// =============================================
			r.Get("/bills", listBillsHandler(svc, logger))
			r.Post("/bills", createBillHandler(svc, logger))
			r.Put("/bills/{id}", updateBillHandler(svc, logger))
			r.Delete("/bills/{id}", deleteBillHandler(svc, logger))
			r.Post("/bills/{id}/pay", payBillHandler(svc, logger))

			// =============================================
			// Cartões de Crédito
			// =============================================
			r.Get("/credit-cards", listCreditCardsHandler(svc, logger))
			r.Post("/credit-cards", createCreditCardHandler(svc, logger))
			r.Put("/credit-cards/{id}", updateCreditCardHandler(svc, logger))
			r.Delete("/credit-cards/{id}", deleteCreditCardHandler(svc, logger))
			r.Put("/credit-cards/{id}/invoice-status", invoiceStatusHandler(svc, logger))

			// =============================================
			// Investimentos
			// =============================================
			r.Get("/investments", listInvestmentsHandler(svc, logger))
			r.Get("/investments/yields", yieldsHandler(svc, logger))
			r.Post("/investments", createInvestmentHandler(svc, logger))
			r.Put("/investments/{id}", updateInvestmentHandler(svc, logger))
			r.Delete("/investments/{id}", deleteInvestmentHandler(svc, logger))
			r.Post("/investments/{id}/apply-yield", applyYieldHandler(svc, logger))

			// =============================================
			// Rendas Recorrentes
			// =============================================
			r.Get("/recurring-incomes", listRecurringIncomesHandler(svc, logger))
			r.Post("/recurring-incomes", createRecurringIncomeHandler(svc, logger))
			r.Put("/recurring-incomes/{id}", updateRecurringIncomeHandler(svc, logger))
			r.Delete("/recurring-incomes/{id}", deleteRecurringIncomeHandler(svc, logger))

			// =============================================
			// Parcelamentos
			// =============================================
			r.Get("/installments/purchases", listPurchasesHandler(svc, logger))
			r.Post("/installments/purchases", createPurchaseHandler(svc, logger))
			r.Put("/installments/purchases/{id}", updatePurchaseHandler(svc, logger))
			r.Delete("/installments/purchases/{id}", deletePurchaseHandler(svc, logger))
			r.Get("/installments", listInstallmentsHandler(svc, logger))
			r.Put("/installments/{id}/paid", installmentPaidHandler(svc, logger))

			// =============================================
			// Vencimentos & Calendário
			// =============================================
			r.Get("/due-dates/calendar", calendarHandler(svc, logger))
			r.Get("/due-dates", listDueDatesHandler(svc, logger))
			r.Post("/due-dates", createDueDateHandler(svc, logger))
			r.Put("/due-dates/{id}", updateDueDateHandler(svc, logger))
			r.Delete("/due-dates/{id}", deleteDueDateHandler(svc, logger))

			// =============================================
			// Relatórios
			// =============================================
			r.Get("/reports/summary", reportSummaryHandler(svc, logger))
			r.Get("/reports/monthly-trend", monthlyTrendHandler(svc, logger))
			r.Get("/reports/weekly-trend", weeklyTrendHandler(svc, logger))
			r.Get("/reports/categories", categoriesHandler(svc, logger))
			r.Get("/reports/partners", partnersHandler(svc, logger))
			r.Get("/reports/cards", cardsOverviewHandler(svc, logger))

			// =============================================
			// Métricas
			// =============================================
			r.Get("/metrics/ops", opsMetricsHandler(metrics, logger))
		})
	})

	return r
}

// ============================================================
// Health
// ============================================================

func healthzHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "financas-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		start := time.Now()
		_, err := svc.ListUsers(ctx)
		latency := time.Since(start).Milliseconds()
		status := "healthy"
		if err != nil {
			status = "degraded"
		}
		services = append(services, domain.ServiceHealth{
			Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
		})

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func opsMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := metrics.GetOpsSnapshot()
		writeJSON(w, http.StatusOK, snapshot)
	}
}
