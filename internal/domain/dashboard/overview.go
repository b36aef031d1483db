package dashboard

import (
	"math"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/clients"
)

// Límites de riesgo (inclusive).
const (
	LowRiskMax    = 30
	MediumRiskMax = 70
)

type RiskBucket string

const (
	RiskLow    RiskBucket = "low"
	RiskMedium RiskBucket = "medium"
	RiskHigh   RiskBucket = "high"
)

func BucketFor(score int) RiskBucket {
	switch {
	case score <= LowRiskMax:
		return RiskLow
	case score <= MediumRiskMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

type RiskDistribution struct {
	Low    int
	Medium int
	High   int
}

type DayTrend struct {
	Day       time.Weekday
	Improving int
	Stable    int
	Declining int
}

type Overview struct {
	ActiveClients       int
	LimboClients        []clients.Client
	PendingAppointments int

	// Media de (100 - riskScore) / 10, un decimal. 0 sin datos.
	AverageHealthScore float64

	RiskDistribution RiskDistribution
	HealthTrend      []DayTrend // lunes a domingo
}

// weekOrder arranca en lunes.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ComputeOverview calcula todos los KPIs sobre un mismo par de colecciones.
func ComputeOverview(cs []clients.Client, as []appointments.Appointment, now time.Time) Overview {
	ov := Overview{
		LimboClients: make([]clients.Client, 0),
		HealthTrend:  make([]DayTrend, 0, len(weekOrder)),
	}

	for _, c := range cs {
		if c.Status == clients.StatusActive {
			ov.ActiveClients++
		}
	}

	limbo := map[string]bool{}
	for _, id := range Classify(cs, as, now) {
		limbo[id] = true
	}
	for _, c := range cs {
		if limbo[c.ID] {
			ov.LimboClients = append(ov.LimboClients, c)
		}
	}

	byDay := map[time.Weekday]*DayTrend{}
	for _, d := range weekOrder {
		byDay[d] = &DayTrend{Day: d}
	}

	var (
		healthSum float64
		scored    int
	)
	loc := now.Location()

	for _, a := range as {
		if a.Status == appointments.StatusPending {
			ov.PendingAppointments++
		}

		if a.RiskScore != nil {
			score := *a.RiskScore
			healthSum += float64(100-score) / 10
			scored++

			switch BucketFor(score) {
			case RiskLow:
				ov.RiskDistribution.Low++
			case RiskMedium:
				ov.RiskDistribution.Medium++
			case RiskHigh:
				ov.RiskDistribution.High++
			}
		}

		if a.HealthEvolution != nil {
			d := byDay[a.Date.In(loc).Weekday()]
			switch *a.HealthEvolution {
			case analysis.HealthTrendImproving:
				d.Improving++
			case analysis.HealthTrendStable:
				d.Stable++
			case analysis.HealthTrendDeclining:
				d.Declining++
			}
		}
	}

	if scored > 0 {
		ov.AverageHealthScore = math.Round(healthSum/float64(scored)*10) / 10
	}
	for _, d := range weekOrder {
		ov.HealthTrend = append(ov.HealthTrend, *byDay[d])
	}
	return ov
}
