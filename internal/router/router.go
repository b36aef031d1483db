package router

import (
	"net/http"

	_ "vet-clinic-ops/docs"
	mem "vet-clinic-ops/internal/adapters/storage/memory"
	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"
	"vet-clinic-ops/internal/domain/dashboard"
	"vet-clinic-ops/internal/middleware"
	"vet-clinic-ops/internal/platform/logger"
	"vet-clinic-ops/internal/seed"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	// Analyzer puede ser nil: /analyze y complete con analyze=true devuelven
	// el assessment simulado.
	Analyzer *analysis.Analyzer

	// Colecciones iniciales del store en memoria.
	Seed seed.Data

	// Registry expuesto en /metrics. nil => uno nuevo.
	Registry *prometheus.Registry
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	httpMetrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		log.Warn("http metrics disabled", map[string]any{"err": err})
		httpMetrics = nil
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDHeader)
	r.Use(middleware.AccessLog(log, httpMetrics))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Un único store: cada escritura publica un snapshot nuevo.
	store := mem.NewStore(mem.Snapshot{
		Clients:      opts.Seed.Clients,
		Appointments: opts.Seed.Appointments,
		Logs:         opts.Seed.Logs,
	})

	// Services por módulo
	clientsSvc := clients.NewService(mem.NewClientRepo(store))
	auditSvc := audit.NewService(mem.NewAuditRepo(store))
	dashSvc := dashboard.NewService(mem.NewDashboardSource(store))

	var analyzer appointments.Analyzer
	if opts.Analyzer != nil {
		analyzer = opts.Analyzer
	}
	apptSvc := appointments.NewService(mem.NewAppointmentRepo(store), analyzer, clientsSvc)

	// Rutas por módulo
	clients.RegisterRoutes(r, clientsSvc, dashSvc)
	audit.RegisterRoutes(r, auditSvc)
	appointments.RegisterRoutes(r, apptSvc)
	dashboard.RegisterRoutes(r, dashSvc)

	log.Info("router ready", map[string]any{
		"clients":      len(opts.Seed.Clients),
		"appointments": len(opts.Seed.Appointments),
		"logs":         len(opts.Seed.Logs),
		"analysis":     opts.Analyzer != nil,
	})

	return r
}
