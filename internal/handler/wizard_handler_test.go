package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/middleware"
	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/repository"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

func newWizardHandlerFixture(t *testing.T) (*WizardHandler, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	client, mock := redismock.NewClientMock()
	repo := repository.NewDraftRepository(client, nil)
	drafts := service.NewDraftService(repo, nil)
	wizard := service.NewWizardService(drafts, repo, nil)
	return NewWizardHandler(wizard, nil, nil), mock
}

func TestWizardStateForFreshSession(t *testing.T) {
	h, mock := newWizardHandlerFixture(t)
	mock.ExpectGet("scholarship:step:sess-1").RedisNil()
	mock.ExpectGet("scholarship:draft:sess-1").RedisNil()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/apply/state", nil)
	c.Request = req
	c.Set(middleware.ContextSessionKey, "sess-1")

	h.State(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, _ := json.Marshal(envelope.Data)
	var state models.WizardState
	require.NoError(t, json.Unmarshal(payload, &state))

	assert.Equal(t, models.FirstStep, state.CurrentStep)
	assert.False(t, state.CanAdvance)
	assert.False(t, state.CanSubmit)
	assert.Len(t, state.Steps, int(models.LastStep))
}

func TestWizardAdvanceBlockedByIncompleteStep(t *testing.T) {
	h, mock := newWizardHandlerFixture(t)
	mock.ExpectGet("scholarship:step:sess-1").RedisNil()
	mock.ExpectGet("scholarship:draft:sess-1").RedisNil()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/apply/advance", nil)
	c.Request = req
	c.Set(middleware.ContextSessionKey, "sess-1")

	h.Advance(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "incomplete")
}
