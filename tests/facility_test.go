package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courtHttp "github.com/quickcourt/quickcourt-backend/internal/court/http"
	facilityHttp "github.com/quickcourt/quickcourt-backend/internal/facility/http"
)

func TestFacilityLifecycle(t *testing.T) {
	clearTables()

	admin := createTestUser(t, "siteadmin", "admin@fac.com", true, false)
	owner := createTestUser(t, "courtowner", "owner@fac.com", false, true)
	player := createTestUser(t, "justplayer", "player@fac.com", false, false)

	createPayload := facilityHttp.CreateFacilityRequest{
		Name:     "Greenfield Arena",
		Location: "12 Park Lane, Springfield",
		Sports:   []string{"tennis", "badminton"},
	}

	var facilityID string

	t.Run("Create: requires facility owner role", func(t *testing.T) {
		w := executeRequest("POST", "/api/facility/create", createPayload, player.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Create", func(t *testing.T) {
		w := executeRequest("POST", "/api/facility/create", createPayload, owner.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp facilityHttp.FacilityEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Facility.Status)
		assert.Equal(t, owner.User.ID, resp.Facility.Owner.ID)
		facilityID = resp.Facility.ID
	})

	t.Run("Create: duplicate name for same owner", func(t *testing.T) {
		w := executeRequest("POST", "/api/facility/create", createPayload, owner.Token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Approve: admin only", func(t *testing.T) {
		statusPayload := facilityHttp.UpdateStatusRequest{Status: "approved"}

		w := executeRequest("PATCH", "/api/facility/status/"+facilityID, statusPayload, owner.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		wAdmin := executeRequest("PATCH", "/api/facility/status/"+facilityID, statusPayload, admin.Token)
		require.Equal(t, http.StatusOK, wAdmin.Code, wAdmin.Body.String())

		var resp facilityHttp.FacilityEnvelope
		require.NoError(t, json.Unmarshal(wAdmin.Body.Bytes(), &resp))
		assert.Equal(t, "approved", resp.Facility.Status)
	})

	t.Run("Update: owner only", func(t *testing.T) {
		desc := "Indoor and outdoor courts"
		payload := facilityHttp.UpdateFacilityRequest{Description: &desc}

		w := executeRequest("PUT", "/api/facility/updatefacility/"+facilityID, payload, player.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		wOwner := executeRequest("PUT", "/api/facility/updatefacility/"+facilityID, payload, owner.Token)
		require.Equal(t, http.StatusOK, wOwner.Code, wOwner.Body.String())
	})

	t.Run("Get by id", func(t *testing.T) {
		w := executeRequest("GET", "/api/facility/getfacilities?facilityId="+facilityID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp facilityHttp.FacilityEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Greenfield Arena", resp.Facility.Name)
	})

	t.Run("Delete: rejected while courts exist", func(t *testing.T) {
		courtPayload := courtHttp.CreateCourtRequest{
			FacilityID:   facilityID,
			Name:         "Court 1",
			SportType:    "tennis",
			PricePerHour: 400,
			OpenTime:     "08:00",
			CloseTime:    "22:00",
		}
		wCourt := executeRequest("POST", "/api/court/create", courtPayload, owner.Token)
		require.Equal(t, http.StatusCreated, wCourt.Code, wCourt.Body.String())

		w := executeRequest("DELETE", "/api/facility/deletefacility/"+facilityID, nil, owner.Token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCourtValidationOverHTTP(t *testing.T) {
	clearTables()

	owner := createTestUser(t, "courtowner", "owner@court.com", false, true)

	wFac := executeRequest("POST", "/api/facility/create", facilityHttp.CreateFacilityRequest{
		Name:     "Court Validation Arena",
		Location: "9 Side St",
		Sports:   []string{"squash"},
	}, owner.Token)
	require.Equal(t, http.StatusCreated, wFac.Code, wFac.Body.String())

	var fac facilityHttp.FacilityEnvelope
	require.NoError(t, json.Unmarshal(wFac.Body.Bytes(), &fac))

	base := courtHttp.CreateCourtRequest{
		FacilityID:   fac.Facility.ID,
		Name:         "Main Court",
		SportType:    "squash",
		PricePerHour: 250,
		OpenTime:     "07:00",
		CloseTime:    "23:00",
	}

	t.Run("Sport must be offered by facility", func(t *testing.T) {
		bad := base
		bad.SportType = "cricket"
		w := executeRequest("POST", "/api/court/create", bad, owner.Token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Operating hours must be ordered", func(t *testing.T) {
		bad := base
		bad.OpenTime = "23:00"
		bad.CloseTime = "07:00"
		w := executeRequest("POST", "/api/court/create", bad, owner.Token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Create and list", func(t *testing.T) {
		w := executeRequest("POST", "/api/court/create", base, owner.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp courtHttp.CourtEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "07:00", resp.Court.OpenTime)
		assert.Equal(t, "23:00", resp.Court.CloseTime)

		wList := executeRequest("GET", "/api/court/getcourts?facilityId="+fac.Facility.ID, nil, "")
		assert.Equal(t, http.StatusOK, wList.Code)
	})
}
