package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skyfence/internal/models"
	"skyfence/internal/repositories/interfaces"
	"skyfence/internal/utils"
	"skyfence/internal/validators"
)

type fakeScheduleRepo struct {
	schedules map[primitive.ObjectID]models.FlightSchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[primitive.ObjectID]models.FlightSchedule)}
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *models.FlightSchedule) error {
	s.ID = primitive.NewObjectID()
	if s.Status == "" {
		s.Status = models.ScheduleStatusPlanned
	}
	r.schedules[s.ID] = *s
	return nil
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.FlightSchedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, s *models.FlightSchedule) error {
	if _, ok := r.schedules[s.ID]; !ok {
		return interfaces.ErrNotFound
	}
	r.schedules[s.ID] = *s
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.schedules[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) FindOverlapping(_ context.Context, from, to time.Time, params *utils.PaginationParams) ([]*models.FlightSchedule, int64, error) {
	matched := make([]*models.FlightSchedule, 0)
	for id := range r.schedules {
		s := r.schedules[id]
		if s.Overlaps(from, to) {
			matched = append(matched, &s)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartsAt.Equal(matched[j].StartsAt) {
			return matched[i].StartsAt.Before(matched[j].StartsAt)
		}
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})
	total := int64(len(matched))
	skip := params.GetSkip()
	if skip > len(matched) {
		skip = len(matched)
	}
	end := skip + params.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 4, 10, hour, minute, 0, 0, time.UTC)
}

func seedSchedule(t *testing.T, repo *fakeScheduleRepo, owner primitive.ObjectID, title string, starts, ends time.Time) primitive.ObjectID {
	t.Helper()
	s := &models.FlightSchedule{OwnerID: owner, Title: title, StartsAt: starts, EndsAt: ends}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seed %s failed: %v", title, err)
	}
	return s.ID
}

func defaultParams() *utils.PaginationParams {
	return &utils.PaginationParams{Page: 1, PageSize: 50, Sort: "starts_at", Order: "asc"}
}

func TestScheduleService_ListOverlapping(t *testing.T) {
	repo := newFakeScheduleRepo()
	service := NewScheduleService(repo, testLogger(t))
	owner := primitive.NewObjectID()

	seedSchedule(t, repo, owner, "spans start", at(9, 30), at(10, 30))
	seedSchedule(t, repo, owner, "touches end", at(12, 0), at(13, 0))
	seedSchedule(t, repo, owner, "inside", at(10, 15), at(11, 0))
	seedSchedule(t, repo, owner, "before", at(8, 0), at(9, 0))

	schedules, total, err := service.ListOverlapping(context.Background(), at(10, 0), at(12, 0), defaultParams())
	if err != nil {
		t.Fatalf("ListOverlapping failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 overlapping schedules, got %d", total)
	}
	// An event ending exactly at the window start and one starting exactly
	// at the window end both touch without overlapping.
	titles := []string{schedules[0].Title, schedules[1].Title}
	if titles[0] != "spans start" || titles[1] != "inside" {
		t.Fatalf("unexpected result order: %v", titles)
	}
}

func TestScheduleService_ListOverlappingRejectsMisorderedRange(t *testing.T) {
	service := NewScheduleService(newFakeScheduleRepo(), testLogger(t))

	_, _, err := service.ListOverlapping(context.Background(), at(12, 0), at(10, 0), defaultParams())
	var verr *validators.ValidationError
	if !errors.As(err, &verr) || verr.Reason != validators.ReasonInvalidTimeRange {
		t.Fatalf("expected %s, got %v", validators.ReasonInvalidTimeRange, err)
	}

	_, _, err = service.ListOverlapping(context.Background(), at(12, 0), at(12, 0), defaultParams())
	if !errors.As(err, &verr) {
		t.Fatalf("equal bounds must be rejected, got %v", err)
	}
}

func TestScheduleService_ListOverlappingStablePagination(t *testing.T) {
	repo := newFakeScheduleRepo()
	service := NewScheduleService(repo, testLogger(t))
	owner := primitive.NewObjectID()

	// Identical intervals force the id tiebreak to carry the ordering.
	for i := 0; i < 5; i++ {
		seedSchedule(t, repo, owner, "same window", at(10, 0), at(11, 0))
	}

	params := &utils.PaginationParams{Page: 1, PageSize: 2, Sort: "starts_at", Order: "asc"}
	first, _, err := service.ListOverlapping(context.Background(), at(9, 0), at(12, 0), params)
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	second, _, err := service.ListOverlapping(context.Background(), at(9, 0), at(12, 0), params)
	if err != nil {
		t.Fatalf("repeat query failed: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 results per page, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("same query and page returned different slices")
		}
	}
}

func TestScheduleService_UpdateOwnership(t *testing.T) {
	repo := newFakeScheduleRepo()
	service := NewScheduleService(repo, testLogger(t))
	owner := primitive.NewObjectID()
	id := seedSchedule(t, repo, owner, "patrol", at(10, 0), at(11, 0))

	stranger := Actor{UserID: primitive.NewObjectID(), UserType: "operator"}
	title := "hijacked"
	if _, err := service.Update(context.Background(), id, stranger, &validators.UpdateScheduleRequest{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := Actor{UserID: primitive.NewObjectID(), UserType: "admin"}
	renamed := "rescheduled patrol"
	updated, err := service.Update(context.Background(), id, admin, &validators.UpdateScheduleRequest{Title: &renamed})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Title != renamed {
		t.Fatalf("expected renamed schedule, got %q", updated.Title)
	}
}

func TestScheduleService_UpdateStatus(t *testing.T) {
	repo := newFakeScheduleRepo()
	service := NewScheduleService(repo, testLogger(t))
	owner := primitive.NewObjectID()
	id := seedSchedule(t, repo, owner, "patrol", at(10, 0), at(11, 0))
	actor := Actor{UserID: owner, UserType: "operator"}

	updated, err := service.UpdateStatus(context.Background(), id, actor, models.ScheduleStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.ScheduleStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}

	if _, err := service.UpdateStatus(context.Background(), id, actor, models.ScheduleStatus("LOST")); err == nil {
		t.Fatal("unknown status must be rejected")
	}
}

func TestScheduleService_DeleteNotFound(t *testing.T) {
	service := NewScheduleService(newFakeScheduleRepo(), testLogger(t))
	actor := Actor{UserID: primitive.NewObjectID(), UserType: "admin"}
	if err := service.Delete(context.Background(), primitive.NewObjectID(), actor); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
