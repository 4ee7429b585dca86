package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/middleware"
	"github.com/CroSSer23/spa-procurement/internal/policy"
	"github.com/CroSSer23/spa-procurement/internal/service"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

// stubRequisitionService returns a canned error (or a canned response) so the
// handler's error-to-status mapping can be exercised without a database.
type stubRequisitionService struct {
	service.RequisitionService
	err  error
	resp *dto.RequisitionResponse
}

func (s *stubRequisitionService) Get(_ context.Context, _ policy.Actor, _ uuid.UUID) (*dto.RequisitionResponse, error) {
	return s.resp, s.err
}

func (s *stubRequisitionService) ChangeStatus(_ context.Context, _ policy.Actor, _ uuid.UUID, _ dto.ChangeStatusRequest) (*dto.RequisitionResponse, error) {
	return s.resp, s.err
}

// stubAuthService resolves every token to a fixed actor.
type stubAuthService struct {
	service.AuthService
	actor policy.Actor
}

func (s *stubAuthService) ResolveActor(_ context.Context, _ uuid.UUID) (policy.Actor, error) {
	return s.actor, nil
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "tester@spa.test",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestRouter(svc service.RequisitionService, auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRequisitionsHandler(svc, nil, auth)
	protected := r.Group("/v1", middleware.JWTAuth(testSecret))
	protected.GET("/requisitions/:id", h.Get)
	protected.POST("/requisitions/:id/status", h.ChangeStatus)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorMapping(t *testing.T) {
	actorID := uuid.New()
	auth := &stubAuthService{actor: policy.Actor{UserID: actorID, Role: "PROCUREMENT"}}
	token := signToken(t, actorID.String(), "PROCUREMENT")
	reqID := uuid.NewString()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &service.NotFoundError{Entity: "requisition"}, http.StatusNotFound},
		{"forbidden", &service.AuthorizationError{Msg: "no access"}, http.StatusForbidden},
		{"conflict", &service.ConflictError{}, http.StatusConflict},
		{"validation", &service.ValidationError{Msg: "bad item"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubRequisitionService{err: tc.err}, auth)
			w := doRequest(t, r, http.MethodGet, "/v1/requisitions/"+reqID, nil, token)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestChangeStatus_BusinessRuleMapsTo400(t *testing.T) {
	actorID := uuid.New()
	auth := &stubAuthService{actor: policy.Actor{UserID: actorID, Role: "PROCUREMENT"}}
	svc := &stubRequisitionService{err: &service.BusinessRuleError{Msg: "cannot close"}}
	r := newTestRouter(svc, auth)

	body := dto.ChangeStatusRequest{Status: "CLOSED", Version: 3}
	w := doRequest(t, r, http.MethodPost, "/v1/requisitions/"+uuid.NewString()+"/status", body, signToken(t, actorID.String(), "PROCUREMENT"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot close")
}

func TestChangeStatus_MissingVersionRejectedByValidation(t *testing.T) {
	actorID := uuid.New()
	auth := &stubAuthService{actor: policy.Actor{UserID: actorID, Role: "PROCUREMENT"}}
	r := newTestRouter(&stubRequisitionService{}, auth)

	// Version omitted — the validator rejects before the service is reached.
	w := doRequest(t, r, http.MethodPost, "/v1/requisitions/"+uuid.NewString()+"/status",
		map[string]any{"status": "ORDERED"}, signToken(t, actorID.String(), "PROCUREMENT"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUnexpectedError_SingleSafeResponseBody(t *testing.T) {
	actorID := uuid.New()
	auth := &stubAuthService{actor: policy.Actor{UserID: actorID, Role: "ADMIN"}}
	svc := &stubRequisitionService{err: errors.New("pg: connection reset by peer")}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewRequisitionsHandler(svc, nil, auth)
	r.GET("/v1/requisitions/:id", middleware.JWTAuth(testSecret), h.Get)

	w := doRequest(t, r, http.MethodGet, "/v1/requisitions/"+uuid.NewString(), nil, signToken(t, actorID.String(), "ADMIN"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Exactly one JSON object in the body, and the internal error never leaks.
	dec := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	var body map[string]any
	require.NoError(t, dec.Decode(&body))
	var extra map[string]any
	require.ErrorIs(t, dec.Decode(&extra), io.EOF)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGet_InvalidIDRejected(t *testing.T) {
	actorID := uuid.New()
	auth := &stubAuthService{actor: policy.Actor{UserID: actorID, Role: "ADMIN"}}
	r := newTestRouter(&stubRequisitionService{}, auth)

	w := doRequest(t, r, http.MethodGet, "/v1/requisitions/not-a-uuid", nil, signToken(t, actorID.String(), "ADMIN"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
