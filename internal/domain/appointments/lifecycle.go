package appointments

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/audit"
)

var ErrInvalidTransition = errors.New("invalid status transition")

const (
	CompletionAction = "Consultation completed"

	notesPreviewRunes = 50
)

// Start: Pending -> In Progress. No toca ningún otro campo.
func Start(a Appointment) (Appointment, error) {
	if a.Status != StatusPending {
		return Appointment{}, fmt.Errorf("%w: start from %q", ErrInvalidTransition, a.Status)
	}
	a.Status = StatusInProgress
	return a, nil
}

// Complete: In Progress -> Completed con notas y métricas del assessment.
// as == nil deja las métricas sin setear.
func Complete(a Appointment, notes string, as *analysis.Assessment) (Appointment, error) {
	if a.Status != StatusInProgress {
		return Appointment{}, fmt.Errorf("%w: complete from %q", ErrInvalidTransition, a.Status)
	}

	a.Status = StatusCompleted
	a.Notes = notes
	if as != nil {
		score := as.RiskScore
		sentiment := as.Sentiment
		trend := as.HealthTrend
		a.RiskScore = &score
		a.Sentiment = &sentiment
		a.HealthEvolution = &trend
	}
	return a, nil
}

// MarkNoShow: Pending -> No Show.
func MarkNoShow(a Appointment) (Appointment, error) {
	if a.Status != StatusPending {
		return Appointment{}, fmt.Errorf("%w: no-show from %q", ErrInvalidTransition, a.Status)
	}
	a.Status = StatusNoShow
	return a, nil
}

// CompletionLog arma la entrada Medical que acompaña a Complete.
func CompletionLog(a Appointment, id string, at time.Time) audit.Log {
	risk := "n/a"
	if a.RiskScore != nil {
		risk = strconv.Itoa(*a.RiskScore)
	}

	return audit.Log{
		ID:        id,
		ClientID:  a.ClientID,
		PetID:     a.PetID,
		Timestamp: at,
		Action:    CompletionAction,
		User:      a.VetName,
		Details:   fmt.Sprintf("Notes: %s... Risk: %s", truncateRunes(a.Notes, notesPreviewRunes), risk),
		Type:      audit.TypeMedical,
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
