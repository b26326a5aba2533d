package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGenerateNoticeMissingFields(t *testing.T) {
	handler := NewDisputeHandler(service.NewDisputeService(nil, nil))

	router := gin.New()
	router.POST("/api/dispute-letter", handler.GenerateNotice)

	req := httptest.NewRequest("POST", "/api/dispute-letter", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
		MissingFields []string `json:"missingFields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Error.Code != "MISSING_FIELDS" {
		t.Errorf("Expected MISSING_FIELDS code, got %q", resp.Error.Code)
	}

	want := []string{
		"Your Full Name",
		"Your Address",
		"Your Phone Number",
		"Your Email",
		"Receiver's Full Name",
		"Receiver's Address",
		"Date of Agreement",
		"Type of Agreement",
		"Relevant Clause",
		"Incident Description",
		"Date of Incident",
		"Relief / Remedy Sought",
	}
	if len(resp.MissingFields) != len(want) {
		t.Fatalf("Expected %d missing fields, got %d: %v", len(want), len(resp.MissingFields), resp.MissingFields)
	}
	for i, label := range want {
		if resp.MissingFields[i] != label {
			t.Errorf("Field %d: expected %q, got %q", i, label, resp.MissingFields[i])
		}
	}
}

func TestGenerateNoticePartialFields(t *testing.T) {
	handler := NewDisputeHandler(service.NewDisputeService(nil, nil))

	router := gin.New()
	router.POST("/api/dispute-letter", handler.GenerateNotice)

	body := `{"senderName": "Jane Doe", "senderAddress": "12 MG Road"}`
	req := httptest.NewRequest("POST", "/api/dispute-letter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp struct {
		MissingFields []string `json:"missingFields"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	for _, label := range resp.MissingFields {
		if label == "Your Full Name" || label == "Your Address" {
			t.Errorf("Provided field %q reported as missing", label)
		}
	}
	if len(resp.MissingFields) != 10 {
		t.Errorf("Expected 10 missing fields, got %d", len(resp.MissingFields))
	}
}

func TestGenerateDocx(t *testing.T) {
	handler := NewDisputeHandler(service.NewDisputeService(nil, nil))

	router := gin.New()
	router.POST("/api/generate-docx", handler.GenerateDocx)

	payload, _ := json.Marshal(gin.H{
		"letter":    "LEGAL NOTICE\n\nWHEREAS the deposit was not refunded.",
		"noticeRef": "LN/2026/4821",
	})
	req := httptest.NewRequest("POST", "/api/generate-docx", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Errorf("Unexpected content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Legal_Notice_LN_2026_4821.docx") {
		t.Errorf("Expected sanitized filename, got %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("Expected docx (zip) payload")
	}
}

func TestGenerateDocxRequiresLetter(t *testing.T) {
	handler := NewDisputeHandler(service.NewDisputeService(nil, nil))

	router := gin.New()
	router.POST("/api/generate-docx", handler.GenerateDocx)

	req := httptest.NewRequest("POST", "/api/generate-docx", strings.NewReader(`{"letter": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
