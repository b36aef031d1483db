package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidSeed = errors.New("invalid seed data")

// Data son las colecciones iniciales, ya validadas.
type Data struct {
	Clients      []clients.Client
	Appointments []appointments.Appointment
	Logs         []audit.Log
}

type petDoc struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Breed    string  `yaml:"breed"`
	Age      int     `yaml:"age"`
	Weight   float64 `yaml:"weight"`
	ImageURL string  `yaml:"imageUrl"`
}

type clientDoc struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	Plan       string   `yaml:"plan"`
	Status     string   `yaml:"status"`
	JoinedDate string   `yaml:"joinedDate"`
	Pets       []petDoc `yaml:"pets"`
}

type appointmentDoc struct {
	ID       string `yaml:"id"`
	ClientID string `yaml:"clientId"`
	PetID    string `yaml:"petId"`
	VetName  string `yaml:"vetName"`

	// Uno de los dos: date (RFC3339) o at (HH:MM del día de carga).
	Date string `yaml:"date"`
	At   string `yaml:"at"`

	Status      string `yaml:"status"`
	ServiceType string `yaml:"serviceType"`
	Notes       string `yaml:"notes"`

	VetRating       *int    `yaml:"vetRating"`
	RiskScore       *int    `yaml:"riskScore"`
	Sentiment       *string `yaml:"sentiment"`
	HealthEvolution *string `yaml:"healthEvolution"`
}

type logDoc struct {
	ID        string `yaml:"id"`
	ClientID  string `yaml:"clientId"`
	PetID     string `yaml:"petId"`
	Timestamp string `yaml:"timestamp"`
	Action    string `yaml:"action"`
	User      string `yaml:"user"`
	Details   string `yaml:"details"`
	Type      string `yaml:"type"`
}

type document struct {
	Clients      []clientDoc      `yaml:"clients"`
	Appointments []appointmentDoc `yaml:"appointments"`
	Logs         []logDoc         `yaml:"logs"`
}

// Default carga los datos embebidos. Las citas "at" caen en el día de now.
func Default(now time.Time) (Data, error) {
	return Parse(defaultYAML, now)
}

func LoadFile(path string, now time.Time) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b, now)
}

func Parse(b []byte, now time.Time) (Data, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	var out Data
	byID := map[string]clients.Client{}

	for _, cd := range doc.Clients {
		c, err := toClient(cd)
		if err != nil {
			return Data{}, err
		}
		if _, dup := byID[c.ID]; dup {
			return Data{}, fmt.Errorf("%w: duplicate client %s", ErrInvalidSeed, c.ID)
		}
		byID[c.ID] = c
		out.Clients = append(out.Clients, c)
	}

	seenAppt := map[string]bool{}
	for _, ad := range doc.Appointments {
		a, err := toAppointment(ad, now)
		if err != nil {
			return Data{}, err
		}
		if seenAppt[a.ID] {
			return Data{}, fmt.Errorf("%w: duplicate appointment %s", ErrInvalidSeed, a.ID)
		}
		seenAppt[a.ID] = true

		c, ok := byID[a.ClientID]
		if !ok {
			return Data{}, fmt.Errorf("%w: appointment %s references unknown client %s", ErrInvalidSeed, a.ID, a.ClientID)
		}
		if _, ok := c.FindPet(a.PetID); !ok {
			return Data{}, fmt.Errorf("%w: appointment %s: pet %s does not belong to client %s", ErrInvalidSeed, a.ID, a.PetID, a.ClientID)
		}
		out.Appointments = append(out.Appointments, a)
	}

	for _, ld := range doc.Logs {
		l, err := toLog(ld)
		if err != nil {
			return Data{}, err
		}
		out.Logs = append(out.Logs, l)
	}

	return out, nil
}

func toClient(cd clientDoc) (clients.Client, error) {
	if strings.TrimSpace(cd.ID) == "" {
		return clients.Client{}, fmt.Errorf("%w: client without id", ErrInvalidSeed)
	}
	plan := clients.Plan(strings.TrimSpace(cd.Plan))
	if !plan.Valid() {
		return clients.Client{}, fmt.Errorf("%w: client %s: plan %q", ErrInvalidSeed, cd.ID, cd.Plan)
	}
	status, ok := clients.ParseStatus(cd.Status)
	if !ok {
		return clients.Client{}, fmt.Errorf("%w: client %s: status %q", ErrInvalidSeed, cd.ID, cd.Status)
	}

	var joined time.Time
	if s := strings.TrimSpace(cd.JoinedDate); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return clients.Client{}, fmt.Errorf("%w: client %s: joinedDate must be YYYY-MM-DD", ErrInvalidSeed, cd.ID)
		}
		joined = t
	}

	pets := make([]clients.Pet, 0, len(cd.Pets))
	for _, pd := range cd.Pets {
		if strings.TrimSpace(pd.ID) == "" || pd.Age < 0 || pd.Weight <= 0 {
			return clients.Client{}, fmt.Errorf("%w: client %s: invalid pet %q", ErrInvalidSeed, cd.ID, pd.ID)
		}
		pets = append(pets, clients.Pet{
			ID:       pd.ID,
			Name:     pd.Name,
			Breed:    pd.Breed,
			Age:      pd.Age,
			Weight:   pd.Weight,
			ImageURL: pd.ImageURL,
		})
	}

	return clients.Client{
		ID:         cd.ID,
		Name:       cd.Name,
		Email:      cd.Email,
		Phone:      cd.Phone,
		Plan:       plan,
		Status:     status,
		JoinedDate: joined,
		Pets:       pets,
	}, nil
}

func toAppointment(ad appointmentDoc, now time.Time) (appointments.Appointment, error) {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: appointment %s: %s", ErrInvalidSeed, ad.ID, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(ad.ID) == "" {
		return appointments.Appointment{}, fmt.Errorf("%w: appointment without id", ErrInvalidSeed)
	}

	var date time.Time
	switch {
	case strings.TrimSpace(ad.Date) != "":
		t, err := time.Parse(time.RFC3339, ad.Date)
		if err != nil {
			return appointments.Appointment{}, bad("date must be RFC3339")
		}
		date = t
	case strings.TrimSpace(ad.At) != "":
		hm, err := time.Parse("15:04", ad.At)
		if err != nil {
			return appointments.Appointment{}, bad("at must be HH:MM")
		}
		y, m, d := now.Date()
		date = time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, now.Location())
	default:
		return appointments.Appointment{}, bad("date or at required")
	}

	st := appointments.Status(ad.Status)
	if !st.Valid() {
		return appointments.Appointment{}, bad("status %q", ad.Status)
	}
	svcType := appointments.ServiceType(ad.ServiceType)
	if !svcType.Valid() {
		return appointments.Appointment{}, bad("serviceType %q", ad.ServiceType)
	}

	a := appointments.Appointment{
		ID:          ad.ID,
		ClientID:    ad.ClientID,
		PetID:       ad.PetID,
		VetName:     ad.VetName,
		Date:        date.UTC(),
		Status:      st,
		ServiceType: svcType,
		Notes:       ad.Notes,
	}

	if ad.VetRating != nil {
		if *ad.VetRating < appointments.MinVetRating || *ad.VetRating > appointments.MaxVetRating {
			return appointments.Appointment{}, bad("vetRating %d", *ad.VetRating)
		}
		v := *ad.VetRating
		a.VetRating = &v
	}
	if ad.RiskScore != nil {
		if *ad.RiskScore < analysis.MinRiskScore || *ad.RiskScore > analysis.MaxRiskScore {
			return appointments.Appointment{}, bad("riskScore %d", *ad.RiskScore)
		}
		v := *ad.RiskScore
		a.RiskScore = &v
	}
	if ad.Sentiment != nil {
		s := analysis.Sentiment(*ad.Sentiment)
		if !s.Valid() {
			return appointments.Appointment{}, bad("sentiment %q", *ad.Sentiment)
		}
		a.Sentiment = &s
	}
	if ad.HealthEvolution != nil {
		h := analysis.ParseHealthTrend(*ad.HealthEvolution)
		if !h.Valid() {
			return appointments.Appointment{}, bad("healthEvolution %q", *ad.HealthEvolution)
		}
		a.HealthEvolution = &h
	}
	return a, nil
}

func toLog(ld logDoc) (audit.Log, error) {
	if strings.TrimSpace(ld.ID) == "" || strings.TrimSpace(ld.ClientID) == "" {
		return audit.Log{}, fmt.Errorf("%w: log without id or clientId", ErrInvalidSeed)
	}
	t := audit.Type(ld.Type)
	if !t.Valid() {
		return audit.Log{}, fmt.Errorf("%w: log %s: type %q", ErrInvalidSeed, ld.ID, ld.Type)
	}
	ts, err := time.Parse(time.RFC3339, ld.Timestamp)
	if err != nil {
		return audit.Log{}, fmt.Errorf("%w: log %s: timestamp must be RFC3339", ErrInvalidSeed, ld.ID)
	}
	return audit.Log{
		ID:        ld.ID,
		ClientID:  ld.ClientID,
		PetID:     ld.PetID,
		Timestamp: ts.UTC(),
		Action:    ld.Action,
		User:      ld.User,
		Details:   ld.Details,
		Type:      t,
	}, nil
}
