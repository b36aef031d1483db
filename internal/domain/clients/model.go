package clients

import (
	"strings"
	"time"
)

// Plan de suscripción del cliente.
// @Enum Basic, Premium, Gold
type Plan string

const (
	PlanBasic   Plan = "Basic"
	PlanPremium Plan = "Premium"
	PlanGold    Plan = "Gold"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanPremium, PlanGold:
		return true
	}
	return false
}

// Status es el estado autoritativo. "In Limbo" nunca se guarda: es derivado.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// legacyLimbo aparece en datos exportados del dashboard anterior.
const legacyLimbo = "In Limbo"

// ParseStatus normaliza un literal externo. "In Limbo" se carga como Active.
func ParseStatus(s string) (Status, bool) {
	switch strings.TrimSpace(s) {
	case string(StatusActive), legacyLimbo:
		return StatusActive, true
	case string(StatusInactive):
		return StatusInactive, true
	}
	return "", false
}

// DisplayStatus es lo que ve la UI.
type DisplayStatus string

const (
	DisplayActive   DisplayStatus = "Active"
	DisplayInactive DisplayStatus = "Inactive"
	DisplayInLimbo  DisplayStatus = "In Limbo"
)

func Display(c Client, inLimbo bool) DisplayStatus {
	if c.Status == StatusInactive {
		return DisplayInactive
	}
	if inLimbo {
		return DisplayInLimbo
	}
	return DisplayActive
}

// Pet pertenece a un único cliente; inmutable en este servicio.
type Pet struct {
	ID       string
	Name     string
	Breed    string
	Age      int     // años
	Weight   float64 // kg
	ImageURL string
}

type Client struct {
	ID    string
	Name  string
	Email string
	Phone string

	Plan   Plan
	Status Status

	JoinedDate time.Time
	Pets       []Pet
}

// UnknownPetName se muestra cuando una cita referencia una mascota inexistente.
const UnknownPetName = "Unknown"

// FindPet busca la mascota dentro del cliente.
func (c Client) FindPet(petID string) (Pet, bool) {
	for _, p := range c.Pets {
		if p.ID == petID {
			return p, true
		}
	}
	return Pet{}, false
}

// PetName devuelve el nombre o UnknownPetName.
func (c Client) PetName(petID string) string {
	if p, ok := c.FindPet(petID); ok {
		return p.Name
	}
	return UnknownPetName
}
