package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func newDraftRepo(t *testing.T) (*DraftRepository, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return NewDraftRepository(client, nil), mock
}

func TestGetDraftMissingReturnsNil(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectGet("scholarship:draft:sess-1").RedisNil()

	draft, err := repo.GetDraft(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Nil(t, draft)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftRoundTrip(t *testing.T) {
	repo, mock := newDraftRepo(t)

	draft := models.NewDraftApplication()
	draft.TermsAccepted = true
	draft.PersonalDetails.FullName = "Priya Sharma"
	payload, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectSet("scholarship:draft:sess-1", payload, 0).SetVal("OK")
	mock.ExpectGet("scholarship:draft:sess-1").SetVal(string(payload))

	require.NoError(t, repo.SaveDraft(context.Background(), "sess-1", draft))

	loaded, err := repo.GetDraft(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.TermsAccepted)
	assert.Equal(t, "Priya Sharma", loaded.PersonalDetails.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDraftCorruptPayloadErrors(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectGet("scholarship:draft:sess-1").SetVal("{not json")

	draft, err := repo.GetDraft(context.Background(), "sess-1")

	assert.Error(t, err)
	assert.Nil(t, draft)
}

func TestStepRoundTrip(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectSet("scholarship:step:sess-1", 3, 0).SetVal("OK")
	mock.ExpectGet("scholarship:step:sess-1").SetVal("3")

	require.NoError(t, repo.SaveStep(context.Background(), "sess-1", models.StepAcademic))

	step, err := repo.GetStep(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepAcademic, step)
}

func TestGetStepMissingReturnsZero(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectGet("scholarship:step:sess-1").RedisNil()

	step, err := repo.GetStep(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.Step(0), step)
}

func TestGetStepMalformedFallsBack(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectGet("scholarship:step:sess-1").SetVal("banana")

	step, err := repo.GetStep(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.Step(0), step)
}

func TestDeleteDraftAndStep(t *testing.T) {
	repo, mock := newDraftRepo(t)
	mock.ExpectDel("scholarship:draft:sess-1").SetVal(1)
	mock.ExpectDel("scholarship:step:sess-1").SetVal(1)

	require.NoError(t, repo.DeleteDraft(context.Background(), "sess-1"))
	require.NoError(t, repo.DeleteStep(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
