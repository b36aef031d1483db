package audit

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/logs", appendLogHandler(svc))
	r.Get("/clients/{clientID}/logs", listClientLogsHandler(svc))
}

// appendLogRequest es el cuerpo para registrar una entrada externa en el timeline.
type appendLogRequest struct {
	ClientID  string `json:"clientId"`
	PetID     string `json:"petId"`
	Action    string `json:"action"`
	User      string `json:"user"`
	Details   string `json:"details"`
	Type      Type   `json:"type" enums:"Medical,Admin,Financial"`
	Timestamp string `json:"timestamp"` // RFC3339 opcional
}

// LogResponse es la representación JSON de una entrada del timeline.
type LogResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	PetID     string    `json:"petId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Details   string    `json:"details"`
	Type      Type      `json:"type"`
}

// appendLogHandler godoc
// @Summary Registrar entrada de auditoría
// @Description Agrega una entrada al timeline de un cliente (cambios de plan, vacunas, etc.). Las entradas nunca se modifican ni se borran.
// @Tags logs
// @Accept json
// @Produce json
// @Param payload body appendLogRequest true "Entrada; timestamp RFC3339 opcional"
// @Success 201 {object} LogResponse
// @Failure 400 {string} string "invalid json / timestamp inválido / campos requeridos"
// @Router /logs [post]
func appendLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appendLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var ts time.Time
		if strings.TrimSpace(req.Timestamp) != "" {
			t, err := time.Parse(time.RFC3339, req.Timestamp)
			if err != nil {
				http.Error(w, "timestamp must be RFC3339", http.StatusBadRequest)
				return
			}
			ts = t
		}

		l, err := svc.Append(r.Context(), AppendInput{
			ClientID:  req.ClientID,
			PetID:     req.PetID,
			Action:    req.Action,
			User:      req.User,
			Details:   req.Details,
			Type:      req.Type,
			Timestamp: ts,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "clientId, action and a valid type are required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(l))
	}
}

// listClientLogsHandler godoc
// @Summary Timeline de un cliente
// @Description Entradas de auditoría del cliente, más reciente primero.
// @Tags logs
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} LogResponse
// @Router /clients/{clientID}/logs [get]
func listClientLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ForClient(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "client id required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]LogResponse, 0, len(items))
		for _, l := range items {
			out = append(out, ToResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ToResponse(l Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		ClientID:  l.ClientID,
		PetID:     l.PetID,
		Timestamp: l.Timestamp,
		Action:    l.Action,
		User:      l.User,
		Details:   l.Details,
		Type:      l.Type,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
