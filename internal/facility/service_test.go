package facility

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	mu         sync.Mutex
	seq        int
	facilities map[string]*Facility
	courtCount map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		facilities: make(map[string]*Facility),
		courtCount: make(map[string]int),
	}
}

func (r *fakeRepository) Create(ctx context.Context, f *Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.facilities {
		if existing.Name == f.Name {
			return ErrDuplicateName
		}
	}
	r.seq++
	f.ID = fmt.Sprintf("facility-%d", r.seq)
	cp := *f
	r.facilities[f.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facilities[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Facility
	for _, f := range r.facilities {
		if filter.OwnerID != "" && f.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(f.Status) != filter.Status {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, f *Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.facilities[f.ID]; !ok {
		return ErrNotFound
	}
	cp := *f
	r.facilities[f.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.facilities[id]; !ok {
		return ErrNotFound
	}
	delete(r.facilities, id)
	return nil
}

func (r *fakeRepository) CountCourts(ctx context.Context, facilityID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.courtCount[facilityID], nil
}

var (
	ownerPrincipal = authz.Principal{UserID: "owner-1", IsFacilityOwner: true}
	adminPrincipal = authz.Principal{UserID: "admin-1", IsAdmin: true}
	plainPrincipal = authz.Principal{UserID: "user-1"}
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Name:     "City Sports Arena",
		Location: "Downtown",
		Sports:   []string{"tennis", "badminton"},
	}
}

func TestCreateFacility(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	f, err := svc.Create(ctx, ownerPrincipal, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "owner-1", f.OwnerID)
	assert.Equal(t, StatusPending, f.Status, "new facilities start pending")
	assert.NotNil(t, f.Amenities)
	assert.NotNil(t, f.Images)
}

func TestCreateFacilityValidation(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	req := validCreateRequest()
	req.Name = "ab"
	_, err := svc.Create(ctx, ownerPrincipal, req)
	assert.ErrorIs(t, err, ErrNameRequired)

	req = validCreateRequest()
	req.Sports = nil
	_, err = svc.Create(ctx, ownerPrincipal, req)
	assert.ErrorIs(t, err, ErrSportsRequired)

	req = validCreateRequest()
	req.Location = "  "
	_, err = svc.Create(ctx, ownerPrincipal, req)
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestCreateFacilityRequiresOwnerRole(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Create(context.Background(), plainPrincipal, validCreateRequest())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateFacilityOwnership(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.Create(ctx, ownerPrincipal, validCreateRequest())
	require.NoError(t, err)

	newName := "Renamed Arena"
	_, err = svc.Update(ctx, plainPrincipal, f.ID, UpdateRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, ownerPrincipal, f.ID, UpdateRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Arena", updated.Name)

	// Admin may update someone else's facility.
	adminName := "Admin Arena"
	updated, err = svc.Update(ctx, adminPrincipal, f.ID, UpdateRequest{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "Admin Arena", updated.Name)
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.Create(ctx, ownerPrincipal, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, ownerPrincipal, f.ID, StatusApproved)
	assert.ErrorIs(t, err, ErrPermissionDenied, "owner cannot approve their own facility")

	approved, err := svc.UpdateStatus(ctx, adminPrincipal, f.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	_, err = svc.UpdateStatus(ctx, adminPrincipal, f.ID, Status("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteFacilityWithCourtsRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	f, err := svc.Create(ctx, ownerPrincipal, validCreateRequest())
	require.NoError(t, err)

	repo.courtCount[f.ID] = 2

	err = svc.Delete(ctx, ownerPrincipal, f.ID)
	assert.ErrorIs(t, err, ErrHasCourts)

	repo.courtCount[f.ID] = 0
	require.NoError(t, svc.Delete(ctx, ownerPrincipal, f.ID))

	_, err = svc.GetByID(ctx, f.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
