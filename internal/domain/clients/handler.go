package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LimboSource calcula, al momento de la consulta, qué clientes están "en limbo".
type LimboSource interface {
	LimboClientIDs(ctx context.Context) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, limbo LimboSource) {
	r.Get("/clients", listClientsHandler(svc, limbo))
	r.Get("/clients/{clientID}", getClientHandler(svc, limbo))
	r.Patch("/clients/{clientID}/plan", changePlanHandler(svc, limbo))
}

type petResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Breed    string  `json:"breed"`
	Age      int     `json:"age"`
	Weight   float64 `json:"weight"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// clientResponse incluye status (autoritativo) y displayStatus (derivado).
type clientResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Plan          Plan          `json:"plan"`
	Status        Status        `json:"status"`
	DisplayStatus DisplayStatus `json:"displayStatus"`
	JoinedDate    string        `json:"joinedDate"` // YYYY-MM-DD
	Pets          []petResponse `json:"pets"`
}

type changePlanRequest struct {
	Plan  Plan   `json:"plan" enums:"Basic,Premium,Gold"`
	Actor string `json:"actor"` // opcional, default "Admin"
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Description Clientes con sus mascotas. displayStatus se recalcula en cada request ("In Limbo" = activo sin citas futuras).
// @Tags clients
// @Produce json
// @Success 200 {array} clientResponse
// @Router /clients [get]
func listClientsHandler(svc *Service, limbo LimboSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		inLimbo, err := limboSet(r.Context(), limbo)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]clientResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toClientResponse(c, inLimbo[c.ID]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service, limbo LimboSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		inLimbo, err := limboSet(r.Context(), limbo)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c, inLimbo[c.ID]))
	}
}

// changePlanHandler godoc
// @Summary Cambiar plan del cliente
// @Description Actualiza el plan y registra una entrada Financial "Plan updated" en el timeline.
// @Tags clients
// @Accept json
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Param payload body changePlanRequest true "Nuevo plan"
// @Success 200 {object} clientResponse
// @Failure 400 {string} string "invalid json / plan inválido"
// @Failure 404 {string} string "client not found"
// @Router /clients/{clientID}/plan [patch]
func changePlanHandler(svc *Service, limbo LimboSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.ChangePlan(r.Context(), chi.URLParam(r, "clientID"), req.Plan, req.Actor)
		if err != nil {
			writeError(w, err)
			return
		}
		inLimbo, err := limboSet(r.Context(), limbo)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c, inLimbo[c.ID]))
	}
}

func limboSet(ctx context.Context, src LimboSource) (map[string]bool, error) {
	out := map[string]bool{}
	if src == nil {
		return out, nil
	}
	ids, err := src.LimboClientIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "client not found", http.StatusNotFound)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toClientResponse(c Client, inLimbo bool) clientResponse {
	pets := make([]petResponse, 0, len(c.Pets))
	for _, p := range c.Pets {
		pets = append(pets, petResponse{
			ID:       p.ID,
			Name:     p.Name,
			Breed:    p.Breed,
			Age:      p.Age,
			Weight:   p.Weight,
			ImageURL: p.ImageURL,
		})
	}

	joined := ""
	if !c.JoinedDate.IsZero() {
		joined = c.JoinedDate.Format("2006-01-02")
	}

	return clientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Plan:          c.Plan,
		Status:        c.Status,
		DisplayStatus: Display(c, inLimbo),
		JoinedDate:    joined,
		Pets:          pets,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
