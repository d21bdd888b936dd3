package onboarding

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"havenagent/internal/domain"
	"havenagent/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the onboarding endpoints. Every mutating endpoint
// responds with the full status snapshot plus a message, so the client
// can re-derive its screen from the response alone.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/onboarding")
	{
		g.PUT("/eligibility", h.UpdateEligibility)
		g.PUT("/details", h.UpdateDetails)
		g.POST("/documents/:docType", h.UploadDocument)
		g.POST("/submit-verification", h.SubmitVerification)
		g.GET("/status", h.Status)
	}
}

func (h *Handler) UpdateEligibility(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	var req UpdateEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	snapshot, err := h.service.UpdateEligibility(c.Request.Context(), userID, req.Field, *req.Value)
	if err != nil {
		h.respondError(c, err, "Failed to update eligibility")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Eligibility updated successfully", snapshot)
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	snapshot, err := h.service.UpdateDetails(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err, "Failed to update details")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Details updated successfully", snapshot)
}

func (h *Handler) UploadDocument(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	docType := domain.DocType(c.Param("docType"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read uploaded file")
		return
	}
	defer file.Close()

	mimeType := sniffMimeType(file, fileHeader.Header.Get("Content-Type"))

	snapshot, err := h.service.UploadDocument(
		c.Request.Context(), userID, docType, file, fileHeader.Size, mimeType, fileHeader.Filename,
	)
	if err != nil {
		h.respondError(c, err, "Failed to upload document")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Document uploaded successfully", snapshot)
}

func (h *Handler) SubmitVerification(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	snapshot, err := h.service.SubmitVerification(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "Failed to submit verification")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Verification submitted successfully", snapshot)
}

func (h *Handler) Status(c *gin.Context) {
	userID := mustUserID(c)
	if userID == 0 {
		return
	}

	snapshot, err := h.service.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPSTREAM_FAILURE", "Failed to load onboarding status")
		return
	}

	response.Success(c, http.StatusOK, snapshot)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var incomplete *IncompleteDocumentsError
	switch {
	case errors.Is(err, ErrInvalidField):
		response.Error(c, http.StatusBadRequest, "INVALID_FIELD", err.Error())
	case errors.Is(err, ErrUnsupportedDocType), errors.Is(err, ErrUnsupportedMimeType):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", err.Error())
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrEmailChangeRejected):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ErrStorageFailure):
		response.Error(c, http.StatusBadGateway, "STORAGE_FAILURE", err.Error())
	case errors.As(err, &incomplete):
		response.ErrorWithDetails(c, http.StatusBadRequest, "INCOMPLETE_DOCUMENTS", incomplete.Error(), gin.H{
			"missing": incomplete.Missing,
		})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", fallback)
	}
}

// sniffMimeType inspects the first 512 bytes rather than trusting the
// client header alone, then rewinds the reader for the upload.
func sniffMimeType(file io.ReadSeeker, declared string) string {
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	_, _ = file.Seek(0, io.SeekStart)

	detected := http.DetectContentType(buf[:n])
	detected = strings.Split(detected, ";")[0]
	// DetectContentType cannot always tell a PDF from plain octets;
	// fall back to the declared type when sniffing is inconclusive.
	if detected == "application/octet-stream" || detected == "text/plain" {
		if declared != "" {
			return strings.Split(declared, ";")[0]
		}
	}
	return detected
}

func mustUserID(c *gin.Context) int64 {
	id, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return 0
	}
	if v, ok := id.(int64); ok {
		return v
	}
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user id")
	return 0
}
