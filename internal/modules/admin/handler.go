package admin

import (
	"errors"
	"net/http"
	"strconv"

	"havenagent/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the admin surface. The group passed in must
// already be behind the auth and admin-role middleware.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/admin/verifications/pending", h.ListPending)
	adminGroup.POST("/onboarding/approve-verification", h.ApproveVerification)
}

func (h *Handler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.service.ListPendingVerifications(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to list pending verifications")
		return
	}

	response.Success(c, http.StatusOK, PendingListResponse{
		Verifications: items,
		Total:         total,
		Page:          page,
		Limit:         limit,
	})
}

func (h *Handler) ApproveVerification(c *gin.Context) {
	var req ApproveVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "User ID is required")
		return
	}

	snapshot, err := h.service.ApproveVerification(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "No user with that id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to approve verification")
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Account approved and activated successfully", snapshot)
}
