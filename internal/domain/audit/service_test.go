package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	items []Log
	err   error
}

func (r *testRepo) Append(ctx context.Context, l Log) error {
	if r.err != nil {
		return r.err
	}
	r.items = append(r.items, l)
	return nil
}

func (r *testRepo) ListByClient(ctx context.Context, clientID string) ([]Log, error) {
	out := make([]Log, 0)
	for _, l := range r.items {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestAppend_Validation(t *testing.T) {
	svc, repo := newTestService(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := map[string]AppendInput{
		"missing client": {Action: "Vaccination", Type: TypeMedical},
		"missing action": {ClientID: "c1", Type: TypeMedical},
		"bad type":       {ClientID: "c1", Action: "Vaccination", Type: "Grooming"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Append(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.items)
}

func TestAppend_DefaultsIDAndTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	l, err := svc.Append(context.Background(), AppendInput{
		ClientID: " c2 ",
		PetID:    "p3",
		Action:   "Vaccination",
		User:     "Nurse Joy",
		Details:  "Rabies booster",
		Type:     TypeMedical,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "c2", l.ClientID)
	assert.Equal(t, now, l.Timestamp)
	require.Len(t, repo.items, 1)
	assert.Equal(t, l, repo.items[0])
}

func TestAppend_PropagatesRepoError(t *testing.T) {
	svc, repo := newTestService(time.Now())
	repo.err = errors.New("disk full")

	_, err := svc.Append(context.Background(), AppendInput{ClientID: "c1", Action: "x", Type: TypeAdmin})
	assert.EqualError(t, err, "disk full")
}

func TestForClient_NewestFirstRegardlessOfInsertion(t *testing.T) {
	svc, repo := newTestService(time.Now())
	base := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)

	repo.items = []Log{
		{ID: "l2", ClientID: "c1", Timestamp: base.Add(48 * time.Hour)},
		{ID: "l1", ClientID: "c1", Timestamp: base},
		{ID: "x", ClientID: "c2", Timestamp: base.Add(72 * time.Hour)},
		{ID: "l3", ClientID: "c1", Timestamp: base.Add(96 * time.Hour)},
	}

	items, err := svc.ForClient(context.Background(), "c1")
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, l := range items {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"l3", "l2", "l1"}, ids)
}

func TestSortNewestFirst_TieGoesToLastInserted(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	items := []Log{
		{ID: "first", Timestamp: ts},
		{ID: "older", Timestamp: ts.Add(-time.Hour)},
		{ID: "second", Timestamp: ts},
	}
	SortNewestFirst(items)
	assert.Equal(t, "second", items[0].ID)
	assert.Equal(t, "first", items[1].ID)
	assert.Equal(t, "older", items[2].ID)
}
