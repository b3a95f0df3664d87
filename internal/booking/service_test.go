package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/court"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

// memRepository mirrors the storage-level admission guarantee: reserve and
// block checks run under one lock so concurrent writers serialize.
type memRepository struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
	blocks   map[string]*Block
}

func newMemRepository() *memRepository {
	return &memRepository{
		bookings: make(map[string]*Booking),
		blocks:   make(map[string]*Block),
	}
}

func (r *memRepository) takenLocked(courtID string, date time.Time, start, end timeofday.Minutes) bool {
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.Date.Equal(date) && b.Status == StatusConfirmed &&
			timeofday.Overlaps(start, end, b.StartMin, b.EndMin) {
			return true
		}
	}
	for _, blk := range r.blocks {
		if blk.CourtID == courtID && blk.Date.Equal(date) &&
			timeofday.Overlaps(start, end, blk.StartMin, blk.EndMin) {
			return true
		}
	}
	return false
}

func (r *memRepository) Reserve(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.takenLocked(b.CourtID, b.Date, b.StartMin, b.EndMin) {
		return ErrTimeConflict
	}
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.CourtID != "" && b.CourtID != filter.CourtID {
			continue
		}
		if filter.FacilityID != "" && b.FacilityID != filter.FacilityID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *memRepository) ListForDate(ctx context.Context, courtID string, date time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.Date.Equal(date) && b.Status == StatusConfirmed {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepository) SweepCompleted(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		end := b.Date.Add(time.Duration(b.EndMin) * time.Minute)
		if b.Status == StatusConfirmed && !end.After(now) {
			b.Status = StatusCompleted
			n++
		}
	}
	return n, nil
}

func (r *memRepository) CreateBlock(ctx context.Context, blk *Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.takenLocked(blk.CourtID, blk.Date, blk.StartMin, blk.EndMin) {
		return ErrTimeConflict
	}
	r.seq++
	blk.ID = fmt.Sprintf("slot-%d", r.seq)
	cp := *blk
	r.blocks[blk.ID] = &cp
	return nil
}

func (r *memRepository) GetBlockByID(ctx context.Context, id string) (*Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blk, ok := r.blocks[id]
	if !ok {
		return nil, ErrBlockNotFound
	}
	cp := *blk
	return &cp, nil
}

func (r *memRepository) DeleteBlock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blocks[id]; !ok {
		return ErrBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *memRepository) ListBlocksForDate(ctx context.Context, courtID string, date time.Time) ([]*Block, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Block
	for _, blk := range r.blocks {
		if blk.CourtID == courtID && blk.Date.Equal(date) {
			cp := *blk
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeCourtService serves a single canned court.
type fakeCourtService struct {
	ct *court.Court
}

func (f *fakeCourtService) Create(ctx context.Context, p authz.Principal, req court.CreateRequest) (*court.Court, error) {
	panic("not used")
}

func (f *fakeCourtService) GetByID(ctx context.Context, id string) (*court.Court, error) {
	if f.ct != nil && f.ct.ID == id {
		cp := *f.ct
		return &cp, nil
	}
	return nil, court.ErrNotFound
}

func (f *fakeCourtService) List(ctx context.Context, filter court.Filter) ([]*court.Court, int, error) {
	panic("not used")
}

func (f *fakeCourtService) Update(ctx context.Context, p authz.Principal, id string, req court.UpdateRequest) (*court.Court, error) {
	panic("not used")
}

func (f *fakeCourtService) Delete(ctx context.Context, p authz.Principal, id string) error {
	panic("not used")
}

// fakeFacilityService serves a single canned facility.
type fakeFacilityService struct {
	fac *facility.Facility
}

func (f *fakeFacilityService) Create(ctx context.Context, p authz.Principal, req facility.CreateRequest) (*facility.Facility, error) {
	panic("not used")
}

func (f *fakeFacilityService) GetByID(ctx context.Context, id string) (*facility.Facility, error) {
	if f.fac != nil && f.fac.ID == id {
		cp := *f.fac
		return &cp, nil
	}
	return nil, facility.ErrNotFound
}

func (f *fakeFacilityService) List(ctx context.Context, filter facility.Filter) ([]*facility.Facility, int, error) {
	panic("not used")
}

func (f *fakeFacilityService) Update(ctx context.Context, p authz.Principal, id string, req facility.UpdateRequest) (*facility.Facility, error) {
	panic("not used")
}

func (f *fakeFacilityService) UpdateStatus(ctx context.Context, p authz.Principal, id string, status facility.Status) (*facility.Facility, error) {
	panic("not used")
}

func (f *fakeFacilityService) Delete(ctx context.Context, p authz.Principal, id string) error {
	panic("not used")
}

var (
	playerPrincipal = authz.Principal{UserID: "player-1"}
	rivalPrincipal  = authz.Principal{UserID: "player-2"}
	ownerPrincipal  = authz.Principal{UserID: "owner-1", IsFacilityOwner: true}
	adminPrincipal  = authz.Principal{UserID: "admin-1", IsAdmin: true}
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

const testDate = "2026-06-02"

func testService() (*service, *memRepository) {
	repo := newMemRepository()
	svc := &service{
		repo: repo,
		courtService: &fakeCourtService{
			ct: &court.Court{
				ID:              "court-1",
				FacilityID:      "facility-1",
				FacilityName:    "City Sports Arena",
				FacilityOwnerID: "owner-1",
				Name:            "Court 1",
				SportType:       "badminton",
				PricePerHour:    500,
				OpenMin:         mins("09:00"),
				CloseMin:        mins("21:00"),
			},
		},
		facService: &fakeFacilityService{
			fac: &facility.Facility{
				ID:      "facility-1",
				OwnerID: "owner-1",
				Status:  facility.StatusApproved,
			},
		},
		now: func() time.Time { return testNow },
	}
	return svc, repo
}

func reserveRequest(start, end string) ReserveRequest {
	return ReserveRequest{
		CourtID:   "court-1",
		Date:      testDate,
		StartTime: start,
		EndTime:   end,
	}
}

func TestReserve(t *testing.T) {
	svc, _ := testService()

	b, err := svc.Reserve(context.Background(), playerPrincipal, reserveRequest("10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, "player-1", b.UserID)
	assert.Equal(t, 1000.0, b.TotalPrice, "2 hours at 500/hr")
}

func TestReserveHalfHourPricing(t *testing.T) {
	svc, _ := testService()

	b, err := svc.Reserve(context.Background(), playerPrincipal, reserveRequest("10:00", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, 750.0, b.TotalPrice)
}

func TestReserveConflict(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("13:00", "14:00"))
	require.NoError(t, err)

	// Overlapping interval from another user is rejected.
	_, err = svc.Reserve(ctx, rivalPrincipal, reserveRequest("13:30", "14:30"))
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Touching intervals do not overlap.
	_, err = svc.Reserve(ctx, rivalPrincipal, reserveRequest("14:00", "15:00"))
	assert.NoError(t, err)
}

func TestReserveValidation(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, playerPrincipal, ReserveRequest{CourtID: "court-404", Date: testDate, StartTime: "10:00", EndTime: "11:00"})
	assert.ErrorIs(t, err, ErrCourtNotFound)

	_, err = svc.Reserve(ctx, playerPrincipal, ReserveRequest{CourtID: "court-1", Date: "02-06-2026", StartTime: "10:00", EndTime: "11:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("12:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("08:00", "10:00"))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("20:00", "22:00"))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	_, err = svc.Reserve(ctx, playerPrincipal, ReserveRequest{CourtID: "court-1", Date: "2026-05-31", StartTime: "10:00", EndTime: "11:00"})
	assert.ErrorIs(t, err, ErrStartTimePast)
}

func TestConcurrentReservesAdmitOne(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	const n = 8
	results := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := authz.Principal{UserID: fmt.Sprintf("racer-%d", i)}
			_, err := svc.Reserve(ctx, p, reserveRequest("10:00", "11:00"))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, ErrTimeConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestCancel(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, rivalPrincipal, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	cancelled, err := svc.Cancel(ctx, playerPrincipal, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// Cancelling again is a no-op.
	again, err := svc.Cancel(ctx, playerPrincipal, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, rivalPrincipal, reserveRequest("10:00", "11:00"))
	require.ErrorIs(t, err, ErrTimeConflict)

	_, err = svc.Cancel(ctx, playerPrincipal, b.ID)
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, rivalPrincipal, reserveRequest("10:00", "11:00"))
	assert.NoError(t, err)
}

func TestCancelCompletedBooking(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.MarkCompleted(ctx, ownerPrincipal, b.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, adminPrincipal, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestMarkCompleted(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)

	// The booking owner is not the facility owner here.
	_, err = svc.MarkCompleted(ctx, playerPrincipal, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	done, err := svc.MarkCompleted(ctx, ownerPrincipal, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	// Completing again is a no-op.
	_, err = svc.MarkCompleted(ctx, adminPrincipal, b.ID)
	assert.NoError(t, err)

	cancelled, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("12:00", "13:00"))
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, playerPrincipal, cancelled.ID)
	require.NoError(t, err)
	_, err = svc.MarkCompleted(ctx, ownerPrincipal, cancelled.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)

	for _, p := range []authz.Principal{playerPrincipal, ownerPrincipal, adminPrincipal} {
		_, err = svc.GetByID(ctx, p, b.ID)
		assert.NoError(t, err)
	}

	_, err = svc.GetByID(ctx, rivalPrincipal, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListScopedToRequester(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, rivalPrincipal, reserveRequest("11:00", "12:00"))
	require.NoError(t, err)

	mine, _, err := svc.List(ctx, playerPrincipal, Filter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "player-1", mine[0].UserID)

	all, _, err := svc.List(ctx, adminPrincipal, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The facility owner sees every booking at their facility.
	atFacility, _, err := svc.List(ctx, ownerPrincipal, Filter{FacilityID: "facility-1"})
	require.NoError(t, err)
	assert.Len(t, atFacility, 2)

	_, _, err = svc.List(ctx, rivalPrincipal, Filter{FacilityID: "facility-1"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestBlockSlot(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	blockReq := BlockRequest{
		CourtID:   "court-1",
		Date:      testDate,
		StartTime: "14:00",
		EndTime:   "16:00",
		Reason:    "resurfacing",
	}

	_, err := svc.BlockSlot(ctx, playerPrincipal, blockReq)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	blk, err := svc.BlockSlot(ctx, ownerPrincipal, blockReq)
	require.NoError(t, err)
	assert.Equal(t, "resurfacing", blk.Reason)

	// Blocked intervals reject bookings.
	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("15:00", "17:00"))
	assert.ErrorIs(t, err, ErrTimeConflict)

	// And bookings reject blocks.
	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)
	_, err = svc.BlockSlot(ctx, ownerPrincipal, BlockRequest{
		CourtID: "court-1", Date: testDate, StartTime: "10:30", EndTime: "11:30",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)

	err = svc.UnblockSlot(ctx, playerPrincipal, blk.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.UnblockSlot(ctx, ownerPrincipal, blk.ID))

	_, err = svc.Reserve(ctx, playerPrincipal, reserveRequest("15:00", "17:00"))
	assert.NoError(t, err)
}

func TestListAvailability(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	b, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "12:00"))
	require.NoError(t, err)

	_, err = svc.BlockSlot(ctx, ownerPrincipal, BlockRequest{
		CourtID: "court-1", Date: testDate, StartTime: "14:00", EndTime: "15:00", Reason: "league practice",
	})
	require.NoError(t, err)

	slots, err := svc.ListAvailability(ctx, "court-1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	assert.Equal(t, ReasonBooked, slots[1].Reason)
	assert.Equal(t, "league practice", slots[3].Reason)

	// A different date shows a clean schedule.
	slots, err = svc.ListAvailability(ctx, "court-1", "2026-06-03")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsAvailable)

	// Cancelling returns the interval to availability.
	_, err = svc.Cancel(ctx, playerPrincipal, b.ID)
	require.NoError(t, err)

	slots, err = svc.ListAvailability(ctx, "court-1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[0].IsAvailable)

	_, err = svc.ListAvailability(ctx, "court-404", testDate)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestSweep(t *testing.T) {
	svc, repo := testService()
	ctx := context.Background()

	past, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("10:00", "11:00"))
	require.NoError(t, err)
	future, err := svc.Reserve(ctx, playerPrincipal, reserveRequest("18:00", "19:00"))
	require.NoError(t, err)

	// Move the clock past the first booking's end.
	svc.now = func() time.Time {
		return time.Date(2026, 6, 2, 11, 0, 0, 0, time.UTC)
	}

	n, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	swept, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, swept.Status)

	untouched, err := repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, untouched.Status)
}
