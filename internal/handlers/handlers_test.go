package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/auth"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/router"
	"github.com/givebridge/givebridge/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pngBytes is a valid PNG signature followed by padding, enough for
// content-type sniffing to classify it as image/png.
var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.SetJWTSecretForTesting("handlers-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := testDB.AutoMigrate(&models.User{}, &models.Ngo{}, &models.Donation{}, &models.VolunteerRequest{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = testDB

	diskStore, err := storage.NewDiskStore(t.TempDir(), "/uploads")

	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	storage.Photos = diskStore

	return router.NewRouter("")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any

	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	return body
}

func createTestUser(t *testing.T, name, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: string(hash)}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func createTestNgo(t *testing.T, name, email string) models.Ngo {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ngo := models.Ngo{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "555-0100",
		Address:      "12 Relief Road",
		Description:  "Test NGO",
	}

	if err := db.DB.Create(&ngo).Error; err != nil {
		t.Fatalf("failed to create test NGO: %v", err)
	}

	return ngo
}

func createTestDonation(t *testing.T, userID, ngoID uint, status string) models.Donation {
	t.Helper()

	donation := models.Donation{
		UserID:   userID,
		NgoID:    ngoID,
		Category: "Clothes",
		Quantity: 3,
		Address:  "7 Drop-off Lane",
		Photo:    "/uploads/test.png",
		Status:   status,
	}

	if err := db.DB.Create(&donation).Error; err != nil {
		t.Fatalf("failed to create test donation: %v", err)
	}

	return donation
}

func createTestVolunteerRequest(t *testing.T, userID, ngoID uint, status string) models.VolunteerRequest {
	t.Helper()

	request := models.VolunteerRequest{UserID: userID, NgoID: ngoID, Status: status}

	if err := db.DB.Create(&request).Error; err != nil {
		t.Fatalf("failed to create test volunteer request: %v", err)
	}

	return request
}

func donationForm(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}

	if photo != nil {
		part, err := writer.CreateFormFile("photo", "donation.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("failed to write photo bytes: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func submitDonation(t *testing.T, r *gin.Engine, fields map[string]string, photo []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := donationForm(t, fields, photo)

	req := httptest.NewRequest(http.MethodPost, "/donate", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}
