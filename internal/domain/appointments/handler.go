package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/audit"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Post("/", scheduleAppointmentHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))

		// Ciclo de vida
		ar.Post("/{appointmentID}/start", startAppointmentHandler(svc))
		ar.Post("/{appointmentID}/analyze", analyzeAppointmentHandler(svc))
		ar.Post("/{appointmentID}/complete", completeAppointmentHandler(svc))
		ar.Post("/{appointmentID}/no-show", noShowAppointmentHandler(svc))
	})
}

type scheduleRequest struct {
	ClientID    string      `json:"clientId"`
	PetID       string      `json:"petId"`
	VetName     string      `json:"vetName"`
	Date        string      `json:"date"` // RFC3339
	ServiceType ServiceType `json:"serviceType" enums:"Welcome,Routine,Post-Vet"`
	Notes       string      `json:"notes"`
}

type analyzeRequest struct {
	Notes string `json:"notes"` // opcional: default = notas guardadas
}

type completeRequest struct {
	Notes      string               `json:"notes"`
	Assessment *analysis.Assessment `json:"assessment"` // opcional
	Analyze    bool                 `json:"analyze"`    // analizar si no viene assessment
	VetRating  *int                 `json:"vetRating"`  // opcional 1-5
}

// appointmentResponse representa una cita de la cola.
type appointmentResponse struct {
	ID              string                `json:"id"`
	ClientID        string                `json:"clientId"`
	PetID           string                `json:"petId"`
	PetName         string                `json:"petName"`
	VetName         string                `json:"vetName"`
	Date            time.Time             `json:"date"`
	Status          Status                `json:"status"`
	ServiceType     ServiceType           `json:"serviceType"`
	Notes           string                `json:"notes,omitempty"`
	VetRating       *int                  `json:"vetRating,omitempty"`
	RiskScore       *int                  `json:"riskScore,omitempty"`
	Sentiment       *analysis.Sentiment   `json:"sentiment,omitempty"`
	HealthEvolution *analysis.HealthTrend `json:"healthEvolution,omitempty"`
}

type completeResponse struct {
	Appointment appointmentResponse `json:"appointment"`
	Log         audit.LogResponse   `json:"log"`
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Description Cola de citas ordenada por fecha. Filtros opcionales por estado y cliente.
// @Tags appointments
// @Produce json
// @Param status query string false "Pending | In Progress | Completed | No Show"
// @Param client_id query string false "ID del cliente"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "status inválido"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			Status:   Status(strings.TrimSpace(q.Get("status"))),
			ClientID: strings.TrimSpace(q.Get("client_id")),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(r.Context(), svc, a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// scheduleAppointmentHandler godoc
// @Summary Agendar cita
// @Description Crea una cita Pending. La mascota debe pertenecer al cliente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Datos de la cita; date en RFC3339"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / date inválida / referencias inválidas"
// @Router /appointments [post]
func scheduleAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be RFC3339", http.StatusBadRequest)
			return
		}

		a, err := svc.Schedule(r.Context(), ScheduleInput{
			ClientID:    req.ClientID,
			PetID:       req.PetID,
			VetName:     req.VetName,
			Date:        date,
			ServiceType: req.ServiceType,
			Notes:       req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(r.Context(), svc, a))
	}
}

// getAppointmentHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(r.Context(), svc, a))
	}
}

// startAppointmentHandler godoc
// @Summary Iniciar consulta
// @Description Pending -> In Progress.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /appointments/{appointmentID}/start [post]
func startAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Start(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(r.Context(), svc, a))
	}
}

// analyzeAppointmentHandler godoc
// @Summary Analizar notas de la consulta
// @Description Devuelve riskScore, sentiment, summary y healthTrend. Nunca falla por el proveedor externo: usa valores de fallback y lo indica en source.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body analyzeRequest false "Notas a analizar"
// @Success 200 {object} analysis.Result
// @Failure 400 {string} string "notes required"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID}/analyze [post]
func analyzeAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Body opcional.
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Analyze(r.Context(), chi.URLParam(r, "appointmentID"), req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// completeAppointmentHandler godoc
// @Summary Completar consulta
// @Description In Progress -> Completed. Guarda notas y métricas y agrega una entrada Medical al timeline del cliente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Param payload body completeRequest true "Notas + assessment (o analyze=true)"
// @Success 200 {object} completeResponse
// @Failure 400 {string} string "invalid json / notes required / valores fuera de rango"
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /appointments/{appointmentID}/complete [post]
func completeAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, l, err := svc.Complete(r.Context(), chi.URLParam(r, "appointmentID"), CompleteInput{
			Notes:      req.Notes,
			Assessment: req.Assessment,
			Analyze:    req.Analyze,
			VetRating:  req.VetRating,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, completeResponse{
			Appointment: toAppointmentResponse(r.Context(), svc, a),
			Log:         audit.ToResponse(l),
		})
	}
}

// noShowAppointmentHandler godoc
// @Summary Marcar ausencia
// @Description Pending -> No Show.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "invalid status transition"
// @Router /appointments/{appointmentID}/no-show [post]
func noShowAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.MarkNoShow(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(r.Context(), svc, a))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(ctx context.Context, svc *Service, a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		PetID:           a.PetID,
		PetName:         svc.PetName(ctx, a),
		VetName:         a.VetName,
		Date:            a.Date,
		Status:          a.Status,
		ServiceType:     a.ServiceType,
		Notes:           a.Notes,
		VetRating:       a.VetRating,
		RiskScore:       a.RiskScore,
		Sentiment:       a.Sentiment,
		HealthEvolution: a.HealthEvolution,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
