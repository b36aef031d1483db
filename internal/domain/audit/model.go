package audit

import "time"

// Type clasifica la entrada del timeline.
type Type string

const (
	TypeMedical   Type = "Medical"
	TypeAdmin     Type = "Admin"
	TypeFinancial Type = "Financial"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMedical, TypeAdmin, TypeFinancial:
		return true
	}
	return false
}

// Log es una entrada append-only del timeline de un cliente.
type Log struct {
	ID       string
	ClientID string
	PetID    string // opcional

	Timestamp time.Time

	Action  string
	User    string
	Details string
	Type    Type
}
