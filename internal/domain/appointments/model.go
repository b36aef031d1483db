package appointments

import (
	"time"

	"vet-clinic-ops/internal/domain/analysis"
)

// Status de la cita en la cola.
// @Enum Pending, In Progress, Completed, No Show
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusNoShow     Status = "No Show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// ServiceType
// @Enum Welcome, Routine, Post-Vet
type ServiceType string

const (
	ServiceWelcome ServiceType = "Welcome"
	ServiceRoutine ServiceType = "Routine"
	ServicePostVet ServiceType = "Post-Vet"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceWelcome, ServiceRoutine, ServicePostVet:
		return true
	}
	return false
}

const (
	MinVetRating = 1
	MaxVetRating = 5
)

type Appointment struct {
	ID       string
	ClientID string
	PetID    string
	VetName  string

	Date        time.Time
	Status      Status
	ServiceType ServiceType

	Notes string

	// Métricas de monitoreo: nil hasta completar la consulta.
	VetRating       *int
	RiskScore       *int
	Sentiment       *analysis.Sentiment
	HealthEvolution *analysis.HealthTrend
}

type ListFilter struct {
	Status   Status // vacío = todos
	ClientID string
}
