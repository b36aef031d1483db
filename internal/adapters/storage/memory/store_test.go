package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func seedStore() *Store {
	return NewStore(Snapshot{
		Clients: []clients.Client{
			{ID: "c1", Name: "Alice Silva", Plan: clients.PlanPremium, Status: clients.StatusActive,
				Pets: []clients.Pet{{ID: "p1", Name: "Luna"}, {ID: "p2", Name: "Max"}}},
			{ID: "c3", Name: "Carolina Dias", Plan: clients.PlanGold, Status: clients.StatusActive,
				Pets: []clients.Pet{{ID: "p4", Name: "Rocky"}}},
		},
		Appointments: []appointments.Appointment{
			{ID: "a2", ClientID: "c1", PetID: "p2", VetName: "Dr. Sarah Wilson", Date: day.Add(10 * time.Hour),
				Status: appointments.StatusInProgress, ServiceType: appointments.ServicePostVet},
			{ID: "a3", ClientID: "c3", PetID: "p4", VetName: "Dr. James Lee", Date: day.Add(14 * time.Hour),
				Status: appointments.StatusPending, ServiceType: appointments.ServiceWelcome},
		},
		Logs: []audit.Log{
			{ID: "l1", ClientID: "c1", Timestamp: day.Add(-48 * time.Hour), Type: audit.TypeFinancial},
		},
	})
}

func TestStore_OldSnapshotUnaffectedByReplace(t *testing.T) {
	s := seedStore()
	before := s.Snapshot()

	a := before.Appointments[1]
	a.Status = appointments.StatusInProgress
	require.NoError(t, s.ReplaceAppointment(a))
	require.NoError(t, s.AppendLog(audit.Log{ID: "l9", ClientID: "c3"}))

	c := before.Clients[0]
	c.Plan = clients.PlanGold
	require.NoError(t, s.ReplaceClient(c))

	assert.Equal(t, appointments.StatusPending, before.Appointments[1].Status)
	assert.Len(t, before.Logs, 1)
	assert.Equal(t, clients.PlanPremium, before.Clients[0].Plan)

	after := s.Snapshot()
	assert.Equal(t, appointments.StatusInProgress, after.Appointments[1].Status)
	assert.Len(t, after.Logs, 2)
	assert.Equal(t, clients.PlanGold, after.Clients[0].Plan)
}

func TestStore_NoSharedMemoryWithCallers(t *testing.T) {
	risk := 10
	trend := analysis.HealthTrendStable
	pets := []clients.Pet{{ID: "p1", Name: "Luna"}}
	s := NewStore(Snapshot{
		Clients: []clients.Client{{ID: "c1", Status: clients.StatusActive, Pets: pets}},
		Appointments: []appointments.Appointment{
			{ID: "a1", ClientID: "c1", PetID: "p1", Status: appointments.StatusCompleted, RiskScore: &risk, HealthEvolution: &trend},
		},
	})
	before := s.Snapshot()

	// Lo que se pasó a NewStore sigue siendo del que llama.
	risk = 77
	pets[0].Name = "Mutated"
	assert.Equal(t, 10, *before.Appointments[0].RiskScore)
	assert.Equal(t, "Luna", before.Clients[0].Pets[0].Name)

	// Lo leído por los repos es una copia.
	a, err := NewAppointmentRepo(s).GetByID(context.Background(), "a1")
	require.NoError(t, err)
	*a.RiskScore = 99
	*a.HealthEvolution = analysis.HealthTrendDeclining
	listed, err := NewAppointmentRepo(s).List(context.Background(), appointments.ListFilter{})
	require.NoError(t, err)
	*listed[0].RiskScore = 98
	cs, as, err := NewDashboardSource(s).Collections(context.Background())
	require.NoError(t, err)
	*as[0].RiskScore = 97
	cs[0].Pets[0].Name = "Dash"
	assert.Equal(t, 10, *before.Appointments[0].RiskScore)
	assert.Equal(t, analysis.HealthTrendStable, *before.Appointments[0].HealthEvolution)
	assert.Equal(t, "Luna", before.Clients[0].Pets[0].Name)

	// Lo escrito tampoco queda compartido.
	updated := appointments.Appointment{ID: "a1", ClientID: "c1", PetID: "p1", Status: appointments.StatusCompleted, RiskScore: &risk}
	require.NoError(t, s.ReplaceAppointment(updated))
	afterReplace := s.Snapshot()
	*updated.RiskScore = 5
	assert.Equal(t, 77, *afterReplace.Appointments[0].RiskScore)
	assert.Equal(t, 10, *before.Appointments[0].RiskScore)

	c := clients.Client{ID: "c1", Status: clients.StatusActive, Pets: []clients.Pet{{ID: "p1", Name: "Luna"}}}
	require.NoError(t, s.ReplaceClient(c))
	c.Pets[0].Name = "Mutated"
	assert.Equal(t, "Luna", s.Snapshot().Clients[0].Pets[0].Name)
}

func TestStore_ReplaceUnknownID(t *testing.T) {
	s := seedStore()
	assert.ErrorIs(t, s.ReplaceAppointment(appointments.Appointment{ID: "zz"}), ErrNotFound)
	assert.ErrorIs(t, s.ReplaceClient(clients.Client{ID: "zz"}), ErrNotFound)
}

func TestStore_AppendAppointmentRejectsDuplicate(t *testing.T) {
	s := seedStore()
	assert.ErrorIs(t, s.AppendAppointment(appointments.Appointment{ID: "a2"}), ErrAlreadyExists)
	assert.Error(t, s.AppendAppointment(appointments.Appointment{ID: " "}))
	require.NoError(t, s.AppendAppointment(appointments.Appointment{ID: "a4"}))
	assert.Len(t, s.Snapshot().Appointments, 3)
}

func TestStore_TransitionIsGuardedAndAtomic(t *testing.T) {
	s := seedStore()
	before := s.Snapshot()

	a := before.Appointments[0]
	a.Status = appointments.StatusCompleted
	entry := &audit.Log{ID: "lx", ClientID: "c1", Type: audit.TypeMedical}

	require.NoError(t, s.TransitionAppointment(a, appointments.StatusInProgress, entry))
	snap := s.Snapshot()
	assert.Equal(t, appointments.StatusCompleted, snap.Appointments[0].Status)
	assert.Equal(t, "lx", snap.Logs[len(snap.Logs)-1].ID)

	// Segundo intento: el estado guardado ya no es InProgress, nada cambia.
	err := s.TransitionAppointment(a, appointments.StatusInProgress, &audit.Log{ID: "ly", ClientID: "c1"})
	assert.ErrorIs(t, err, ErrStatusMismatch)
	assert.Same(t, snap, s.Snapshot())
}

func TestAppointmentRepo_TranslatesErrors(t *testing.T) {
	repo := NewAppointmentRepo(seedStore())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, appointments.ErrNotFound)

	err = repo.Transition(ctx, appointments.Appointment{ID: "nope"}, appointments.StatusPending, nil)
	assert.ErrorIs(t, err, appointments.ErrNotFound)

	err = repo.Transition(ctx, appointments.Appointment{ID: "a3", Status: appointments.StatusCompleted}, appointments.StatusInProgress, nil)
	assert.ErrorIs(t, err, appointments.ErrInvalidTransition)
}

func TestAppointmentRepo_ListFiltersAndSortsByDate(t *testing.T) {
	s := seedStore()
	require.NoError(t, s.AppendAppointment(appointments.Appointment{ID: "a0", ClientID: "c1", Date: day.Add(8 * time.Hour), Status: appointments.StatusPending}))
	repo := NewAppointmentRepo(s)

	all, err := repo.List(context.Background(), appointments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a0", "a2", "a3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending, err := repo.List(context.Background(), appointments.ListFilter{Status: appointments.StatusPending, ClientID: "c1"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a0", pending[0].ID)
}

func TestClientRepo_ReturnsCopies(t *testing.T) {
	s := seedStore()
	repo := NewClientRepo(s)

	c, err := repo.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	c.Pets[0].Name = "mutated"

	assert.Equal(t, "Luna", s.Snapshot().Clients[0].Pets[0].Name)

	_, err = repo.GetByID(context.Background(), "c9")
	assert.ErrorIs(t, err, clients.ErrNotFound)
}

func TestClientRepo_UpdateWithLogInOneSwap(t *testing.T) {
	s := seedStore()
	repo := NewClientRepo(s)
	before := s.Snapshot()

	c := before.Clients[1]
	c.Plan = clients.PlanBasic
	require.NoError(t, repo.Update(context.Background(), c, &audit.Log{ID: "lp", ClientID: "c3", Type: audit.TypeFinancial}))

	after := s.Snapshot()
	assert.Equal(t, clients.PlanBasic, after.Clients[1].Plan)
	assert.Equal(t, "lp", after.Logs[len(after.Logs)-1].ID)

	err := repo.Update(context.Background(), clients.Client{ID: "c9"}, nil)
	assert.ErrorIs(t, err, clients.ErrNotFound)
}

func TestAuditRepo_ListByClient(t *testing.T) {
	s := seedStore()
	repo := NewAuditRepo(s)
	require.NoError(t, repo.Append(context.Background(), audit.Log{ID: "l2", ClientID: "c1"}))
	require.NoError(t, repo.Append(context.Background(), audit.Log{ID: "l3", ClientID: "c3"}))

	items, err := repo.ListByClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestConcurrentDoubleComplete_OneSuccessOneLog(t *testing.T) {
	s := seedStore()
	svc := appointments.NewService(NewAppointmentRepo(s), nil, clients.NewService(NewClientRepo(s)))
	logsBefore := len(s.Snapshot().Logs)

	as := analysis.Assessment{RiskScore: 20, Sentiment: analysis.SentimentPositive, Summary: "ok", HealthTrend: analysis.HealthTrendImproving}

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, err := svc.Complete(context.Background(), "a2", appointments.CompleteInput{
				Notes:      "Dog limping, improving slightly",
				Assessment: &as,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, appointments.ErrInvalidTransition) {
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, s.Snapshot().Logs, logsBefore+1)
}
