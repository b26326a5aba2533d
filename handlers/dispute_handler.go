package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lexai-backend/middleware"
	"lexai-backend/service"

	"github.com/gin-gonic/gin"
)

// DisputeHandler handles legal-notice generation and export
type DisputeHandler struct {
	disputeService *service.DisputeService
}

// NewDisputeHandler creates a new dispute handler
func NewDisputeHandler(disputeService *service.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

// DisputeLetterRequest represents the request body for notice generation
type DisputeLetterRequest struct {
	SenderName          string `json:"senderName"`
	SenderAddress       string `json:"senderAddress"`
	SenderPhone         string `json:"senderPhone"`
	SenderEmail         string `json:"senderEmail"`
	SenderAdvocate      string `json:"senderAdvocate"`
	ReceiverName        string `json:"receiverName"`
	ReceiverAddress     string `json:"receiverAddress"`
	ReceiverDesignation string `json:"receiverDesignation"`
	AgreementDate       string `json:"agreementDate"`
	AgreementType       string `json:"agreementType"`
	ClauseText          string `json:"clauseText"`
	IncidentDescription string `json:"incidentDescription"`
	IncidentDate        string `json:"incidentDate"`
	ReliefSought        string `json:"reliefSought"`
	DocumentType        string `json:"documentType"`
}

// missingFields returns the human-readable labels of empty required fields
func (r *DisputeLetterRequest) missingFields() []string {
	required := []struct {
		value string
		label string
	}{
		{r.SenderName, "Your Full Name"},
		{r.SenderAddress, "Your Address"},
		{r.SenderPhone, "Your Phone Number"},
		{r.SenderEmail, "Your Email"},
		{r.ReceiverName, "Receiver's Full Name"},
		{r.ReceiverAddress, "Receiver's Address"},
		{r.AgreementDate, "Date of Agreement"},
		{r.AgreementType, "Type of Agreement"},
		{r.ClauseText, "Relevant Clause"},
		{r.IncidentDescription, "Incident Description"},
		{r.IncidentDate, "Date of Incident"},
		{r.ReliefSought, "Relief / Remedy Sought"},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// GenerateNotice handles POST /api/dispute-letter
func (h *DisputeHandler) GenerateNotice(c *gin.Context) {
	var req DisputeLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FIELDS",
				"message": fmt.Sprintf("Please fill all required fields: %s", strings.Join(missing, ", ")),
			},
			"missingFields": missing,
		})
		return
	}

	docType := req.DocumentType
	if docType == "" {
		docType = "other"
	}

	details := service.DisputeDetails{
		SenderName:          req.SenderName,
		SenderAddress:       req.SenderAddress,
		SenderPhone:         req.SenderPhone,
		SenderEmail:         req.SenderEmail,
		SenderAdvocate:      req.SenderAdvocate,
		ReceiverName:        req.ReceiverName,
		ReceiverAddress:     req.ReceiverAddress,
		ReceiverDesignation: req.ReceiverDesignation,
		AgreementDate:       req.AgreementDate,
		AgreementType:       req.AgreementType,
		ClauseText:          req.ClauseText,
		IncidentDescription: req.IncidentDescription,
		IncidentDate:        req.IncidentDate,
		ReliefSought:        req.ReliefSought,
		DocumentType:        docType,
	}

	result, err := h.disputeService.GenerateNotice(c.Request.Context(), middleware.GetUserID(c), details)
	switch {
	case errors.Is(err, service.ErrInvalidAnalysis):
		fail(c, http.StatusBadGateway, "INVALID_RESPONSE", "AI returned invalid JSON")
		return
	case errors.Is(err, service.ErrEmptyLetter):
		fail(c, http.StatusBadGateway, "EMPTY_LETTER", "AI returned empty response")
		return
	case err != nil:
		fail(c, http.StatusBadGateway, "GENERATE_FAILED", "Failed to generate dispute letter")
		return
	}

	ok(c, http.StatusOK, result)
}

// GenerateDocxRequest represents the request body for the docx export
type GenerateDocxRequest struct {
	Letter    string `json:"letter"`
	NoticeRef string `json:"noticeRef"`
}

// GenerateDocx handles POST /api/generate-docx, rendering a generated
// notice as a Word document.
func (h *DisputeHandler) GenerateDocx(c *gin.Context) {
	var req GenerateDocxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if strings.TrimSpace(req.Letter) == "" {
		fail(c, http.StatusBadRequest, "MISSING_LETTER", "Letter content is required")
		return
	}

	ref := req.NoticeRef
	if ref == "" {
		ref = "LexAI"
	}
	filename := fmt.Sprintf("Legal_Notice_%s.docx", strings.ReplaceAll(ref, "/", "_"))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := service.RenderLegalNotice(req.Letter, c.Writer); err != nil {
		// Headers are already out, nothing sensible left to send
		_ = c.Error(err)
	}
}
