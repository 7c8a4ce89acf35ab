//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"inspekt/internal/events"
	"inspekt/internal/events/store"
	"inspekt/pkg/domain"
	"inspekt/pkg/platform/sentinel"
	"inspekt/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	_, err := s.postgres.DB.Exec(store.Schema)
	s.Require().NoError(err)
	s.store = store.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.postgres.DB.Exec("TRUNCATE TABLE events")
	s.Require().NoError(err)
}

func newScheduled(id string, day domain.Day) *events.Event {
	return &events.Event{
		ID:            domain.EventID(id),
		ScheduledDate: day,
		DueDate:       day,
		PropertyID:    "P-001",
		Kind:          domain.KindFireSafety,
		AssigneeID:    "U-001",
		VendorID:      "V-001",
		Status:        events.StatusScheduled,
	}
}

func (s *PostgresStoreSuite) TestMergeNewIsIdempotentAcrossCalls() {
	ctx := context.Background()
	batch := []*events.Event{
		newScheduled("AP-P-001-fire_safety-20240120", domain.NewDay(2024, 1, 20)),
		newScheduled("AP-P-001-fire_safety-20240220", domain.NewDay(2024, 2, 20)),
	}

	added, err := s.store.MergeNew(ctx, batch)
	s.Require().NoError(err)
	s.Equal(2, added)

	added, err = s.store.MergeNew(ctx, batch)
	s.Require().NoError(err)
	s.Equal(0, added)

	all, err := s.store.List(ctx, store.Filter{})
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *PostgresStoreSuite) TestRoundTripPreservesFields() {
	ctx := context.Background()
	e := newScheduled("E-RT", domain.NewDay(2024, 6, 30))
	e.ParentID = ""
	_, err := s.store.MergeNew(ctx, []*events.Event{e})
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(e.ScheduledDate.String(), found.ScheduledDate.String())
	s.Equal(e.DueDate.String(), found.DueDate.String())
	s.Equal(e.PropertyID, found.PropertyID)
	s.Equal(e.Kind, found.Kind)
	s.Equal(e.VendorID, found.VendorID)
	s.Equal(e.Status, found.Status)
	s.True(found.ParentID.IsNil())
}

func (s *PostgresStoreSuite) TestOverdueQuery() {
	ctx := context.Background()
	due := domain.NewDay(2024, 5, 10)
	open := newScheduled("E-OPEN", due)
	done := newScheduled("E-DONE", due)
	done.Status = events.StatusCompleted
	_, err := s.store.MergeNew(ctx, []*events.Event{open, done})
	s.Require().NoError(err)

	overdue, err := s.store.Overdue(ctx, due.AddDays(1))
	s.Require().NoError(err)
	s.Require().Len(overdue, 1)
	s.Equal(domain.EventID("E-OPEN"), overdue[0].ID)
}

func (s *PostgresStoreSuite) TestCompleteIsTransactional() {
	ctx := context.Background()
	day := domain.NewDay(2024, 3, 1)
	parent := newScheduled("E-P", day)
	blocker := newScheduled("E-P-C1", day)
	_, err := s.store.MergeNew(ctx, []*events.Event{parent, blocker})
	s.Require().NoError(err)

	corrective := newScheduled("E-P-C1", day)
	corrective.Status = events.StatusInCorrection
	corrective.ParentID = parent.ID

	// The corrective id already exists, so the whole transaction must roll
	// back, leaving the parent untouched.
	err = s.store.Complete(ctx, parent.ID, []*events.Event{corrective})
	s.Require().Error(err)

	found, err := s.store.FindByID(ctx, parent.ID)
	s.Require().NoError(err)
	s.Equal(events.StatusScheduled, found.Status)
}

func (s *PostgresStoreSuite) TestCompleteGuards() {
	ctx := context.Background()
	s.Require().ErrorIs(s.store.Complete(ctx, "E-404", nil), sentinel.ErrNotFound)

	parent := newScheduled("E-P2", domain.NewDay(2024, 4, 15))
	_, err := s.store.MergeNew(ctx, []*events.Event{parent})
	s.Require().NoError(err)
	s.Require().NoError(s.store.Complete(ctx, parent.ID, nil))
	s.Require().ErrorIs(s.store.Complete(ctx, parent.ID, nil), sentinel.ErrInvalidState)
}
