package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/types"
)

func TestJoinNgo(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	rr := performJSON(t, r, http.MethodPost, "/volunteer/join", map[string]uint{
		"userId": user.ID,
		"ngoId":  ngo.ID,
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var request models.VolunteerRequest

	if err := db.DB.Where("user_id = ? AND ngo_id = ?", user.ID, ngo.ID).First(&request).Error; err != nil {
		t.Fatalf("expected request to be persisted: %v", err)
	}

	if request.Status != types.StatusPending {
		t.Fatalf("new requests must start Pending, got %q", request.Status)
	}
}

func TestJoinNgoDuplicate(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	payload := map[string]uint{"userId": user.ID, "ngoId": ngo.ID}

	first := performJSON(t, r, http.MethodPost, "/volunteer/join", payload)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected first join to succeed, got %d", first.Code)
	}

	second := performJSON(t, r, http.MethodPost, "/volunteer/join", payload)

	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected second join to fail with 400, got %d", second.Code)
	}

	var count int64
	db.DB.Model(&models.VolunteerRequest{}).Where("user_id = ? AND ngo_id = ?", user.ID, ngo.ID).Count(&count)

	if count != 1 {
		t.Fatalf("expected exactly one request for the pair, got %d", count)
	}
}

func TestJoinNgoDuplicateIgnoresStatus(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	// An already rejected request still blocks a new one for the pair.
	createTestVolunteerRequest(t, user.ID, ngo.ID, types.StatusRejected)

	rr := performJSON(t, r, http.MethodPost, "/volunteer/join", map[string]uint{
		"userId": user.ID,
		"ngoId":  ngo.ID,
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestJoinNgoUnknownUser(t *testing.T) {
	r := setupTest(t)

	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	rr := performJSON(t, r, http.MethodPost, "/volunteer/join", map[string]uint{
		"userId": 424242,
		"ngoId":  ngo.ID,
	})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestListNgoVolunteerRequestsOnlyPending(t *testing.T) {
	r := setupTest(t)

	asha := createTestUser(t, "Asha", "asha@example.com")
	ben := createTestUser(t, "Ben", "ben@example.com")
	cara := createTestUser(t, "Cara", "cara@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	older := createTestVolunteerRequest(t, asha.ID, ngo.ID, types.StatusPending)
	db.DB.Model(&older).Update("created_at", time.Now().Add(-time.Hour))
	newer := createTestVolunteerRequest(t, ben.ID, ngo.ID, types.StatusPending)
	createTestVolunteerRequest(t, cara.ID, ngo.ID, types.StatusApproved)

	rr := performJSON(t, r, http.MethodGet, "/ngo/"+itoa(ngo.ID)+"/volunteer-requests", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	requests, ok := body["requests"].([]any)

	if !ok || len(requests) != 2 {
		t.Fatalf("expected 2 pending requests, got %#v", body["requests"])
	}

	first, _ := requests[0].(map[string]any)

	if first["id"] != float64(newer.ID) {
		t.Fatalf("expected newest request first, got %#v", first["id"])
	}

	if first["user_name"] != "Ben" {
		t.Fatalf("expected volunteer name joined in, got %#v", first["user_name"])
	}
}

func TestListNgoVolunteersOnlyApproved(t *testing.T) {
	r := setupTest(t)

	asha := createTestUser(t, "Asha", "asha@example.com")
	ben := createTestUser(t, "Ben", "ben@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	createTestVolunteerRequest(t, asha.ID, ngo.ID, types.StatusApproved)
	createTestVolunteerRequest(t, ben.ID, ngo.ID, types.StatusPending)

	rr := performJSON(t, r, http.MethodGet, "/ngo/"+itoa(ngo.ID)+"/volunteers", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	requests, ok := body["requests"].([]any)

	if !ok || len(requests) != 1 {
		t.Fatalf("expected 1 approved volunteer, got %#v", body["requests"])
	}

	first, _ := requests[0].(map[string]any)

	if first["user_name"] != "Asha" {
		t.Fatalf("expected approved volunteer, got %#v", first)
	}
}

func TestMyVolunteerRequests(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	shelter := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")
	foodBank := createTestNgo(t, "Food Bank", "hello@foodbank.org")

	createTestVolunteerRequest(t, user.ID, shelter.ID, types.StatusPending)
	createTestVolunteerRequest(t, user.ID, foodBank.ID, types.StatusRejected)

	rr := performJSON(t, r, http.MethodGet, "/volunteer/my-requests/"+itoa(user.ID), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	requests, ok := body["requests"].([]any)

	if !ok || len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %#v", body["requests"])
	}

	first, _ := requests[0].(map[string]any)

	if first["ngo_name"] == "" || first["ngo_name"] == nil {
		t.Fatalf("expected NGO name joined in, got %#v", first)
	}
}

func TestUpdateVolunteerStatusInvalidValue(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")
	request := createTestVolunteerRequest(t, user.ID, ngo.ID, types.StatusPending)

	rr := performJSON(t, r, http.MethodPut, "/volunteer/"+itoa(request.ID)+"/status", map[string]string{
		"status": "OnHold",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestUpdateVolunteerStatusUnrestrictedTransitions(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")
	request := createTestVolunteerRequest(t, user.ID, ngo.ID, types.StatusRejected)

	// Re-approving a rejected request is allowed.
	rr := performJSON(t, r, http.MethodPut, "/volunteer/"+itoa(request.ID)+"/status", map[string]string{
		"status": types.StatusApproved,
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var updated models.VolunteerRequest
	db.DB.First(&updated, request.ID)

	if updated.Status != types.StatusApproved {
		t.Fatalf("expected Approved, got %q", updated.Status)
	}
}

func TestCancelVolunteerRequestPending(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")
	request := createTestVolunteerRequest(t, user.ID, ngo.ID, types.StatusPending)

	rr := performJSON(t, r, http.MethodDelete, "/volunteer/"+itoa(request.ID)+"/cancel", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var count int64
	db.DB.Unscoped().Model(&models.VolunteerRequest{}).Where("id = ?", request.ID).Count(&count)

	if count != 0 {
		t.Fatal("cancelled request must be removed from the table")
	}
}

func TestCancelVolunteerRequestNonPending(t *testing.T) {
	r := setupTest(t)

	user := createTestUser(t, "Asha", "asha@example.com")
	ben := createTestUser(t, "Ben", "ben@example.com")
	ngo := createTestNgo(t, "Hope Shelter", "contact@hopeshelter.org")

	cases := []struct {
		userID uint
		status string
	}{
		{user.ID, types.StatusApproved},
		{ben.ID, types.StatusRejected},
	}

	for _, tc := range cases {
		status := tc.status
		request := createTestVolunteerRequest(t, tc.userID, ngo.ID, status)

		rr := performJSON(t, r, http.MethodDelete, "/volunteer/"+itoa(request.ID)+"/cancel", nil)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("status %s: expected 400, got %d", status, rr.Code)
		}

		var count int64
		db.DB.Model(&models.VolunteerRequest{}).Where("id = ?", request.ID).Count(&count)

		if count != 1 {
			t.Fatalf("status %s: request must remain on record", status)
		}
	}
}

func TestCancelVolunteerRequestNotFound(t *testing.T) {
	r := setupTest(t)

	rr := performJSON(t, r, http.MethodDelete, "/volunteer/424242/cancel", nil)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}
