package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"havenagent/internal/domain"
	"havenagent/internal/modules/onboarding"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestRouter(engine Approver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(new(MockPendingLister), new(MockUserReader), new(MockProfileReader), engine)
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postApprove(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/approve-verification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestApproveVerificationHandler_Success(t *testing.T) {
	engine := new(MockApprover)
	engine.On("ApproveVerification", mock.Anything, int64(7)).Return(&onboarding.StatusSnapshot{
		VerificationStatus: domain.VerificationApproved,
		AccountActivated:   true,
	}, nil)

	w := postApprove(newTestRouter(engine), `{"userId":7}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountActivated":true`)
	engine.AssertExpectations(t)
}

func TestApproveVerificationHandler_UnknownUser(t *testing.T) {
	engine := new(MockApprover)
	engine.On("ApproveVerification", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	w := postApprove(newTestRouter(engine), `{"userId":99}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "USER_NOT_FOUND")
}

func TestApproveVerificationHandler_MissingUserID(t *testing.T) {
	engine := new(MockApprover)

	w := postApprove(newTestRouter(engine), `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	engine.AssertNotCalled(t, "ApproveVerification", mock.Anything, mock.Anything)
}
