package dashboard

import (
	"encoding/json"
	"net/http"

	"vet-clinic-ops/internal/domain/clients"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/", overviewHandler(svc))
		dr.Get("/limbo", limboHandler(svc))
	})
}

type limboClientResponse struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Phone string       `json:"phone"`
	Plan  clients.Plan `json:"plan"`
	Pets  int          `json:"pets"`
}

type riskDistributionResponse struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type dayTrendResponse struct {
	Day       string `json:"day"`
	Improving int    `json:"improving"`
	Stable    int    `json:"stable"`
	Declining int    `json:"declining"`
}

// overviewResponse son los KPIs del tablero.
type overviewResponse struct {
	ActiveClients       int                      `json:"activeClients"`
	LimboCount          int                      `json:"limboCount"`
	LimboClients        []limboClientResponse    `json:"limboClients"`
	PendingAppointments int                      `json:"pendingAppointments"`
	AverageHealthScore  float64                  `json:"averageHealthScore"`
	RiskDistribution    riskDistributionResponse `json:"riskDistribution"`
	HealthTrend         []dayTrendResponse       `json:"healthTrend"`
}

// overviewHandler godoc
// @Summary KPIs del tablero
// @Description Clientes activos, clientes en limbo (activos sin citas futuras), citas pendientes, score de salud medio, distribución de riesgo y tendencia por día. Se recalcula en cada request.
// @Tags dashboard
// @Produce json
// @Success 200 {object} overviewResponse
// @Router /dashboard [get]
func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toOverviewResponse(ov))
	}
}

// limboHandler godoc
// @Summary Clientes en limbo
// @Description Clientes activos sin ninguna cita futura (requieren seguimiento).
// @Tags dashboard
// @Produce json
// @Success 200 {array} limboClientResponse
// @Router /dashboard/limbo [get]
func limboHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Limbo(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toLimboResponses(items))
	}
}

func toLimboResponses(cs []clients.Client) []limboClientResponse {
	out := make([]limboClientResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, limboClientResponse{
			ID:    c.ID,
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
			Plan:  c.Plan,
			Pets:  len(c.Pets),
		})
	}
	return out
}

func toOverviewResponse(ov Overview) overviewResponse {
	trend := make([]dayTrendResponse, 0, len(ov.HealthTrend))
	for _, d := range ov.HealthTrend {
		trend = append(trend, dayTrendResponse{
			Day:       d.Day.String()[:3],
			Improving: d.Improving,
			Stable:    d.Stable,
			Declining: d.Declining,
		})
	}

	return overviewResponse{
		ActiveClients:       ov.ActiveClients,
		LimboCount:          len(ov.LimboClients),
		LimboClients:        toLimboResponses(ov.LimboClients),
		PendingAppointments: ov.PendingAppointments,
		AverageHealthScore:  ov.AverageHealthScore,
		RiskDistribution: riskDistributionResponse{
			Low:    ov.RiskDistribution.Low,
			Medium: ov.RiskDistribution.Medium,
			High:   ov.RiskDistribution.High,
		},
		HealthTrend: trend,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
