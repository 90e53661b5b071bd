package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/celebot/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePain(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	body := models.CreatePainRequest{Translate: models.TranslatePayload{
		Locale:   models.LocaleEnUS,
		Problem:  "deadlines pile up",
		Solution: "plan the week on monday",
		Tags:     []string{"work"},
	}}
	c, rec := env.request(t, http.MethodPost, "/api/v1/pains", body, alice)

	require.NoError(t, env.pains.CreatePain(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	got := decodeBody(t, rec)
	assert.NotEmpty(t, got["uuid"])
	assert.Equal(t, alice.HexID, got["user_hexid"])
	assert.Equal(t, true, got["is_creator"])
	assert.Nil(t, got["reaction_given"])

	translates, ok := got["translates"].([]interface{})
	require.True(t, ok)
	require.Len(t, translates, 1)
	translate := translates[0].(map[string]interface{})
	assert.Equal(t, models.LocaleEnUS, translate["locale"])
	assert.Equal(t, "deadlines pile up", translate["problem"])

	stat, ok := got["reaction_stat"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), stat["total"])
	for _, ident := range models.ReactionIdentifiers {
		assert.Equal(t, float64(0), stat[ident])
	}
}

func TestCreatePainRejectsUnknownLocale(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	body := models.CreatePainRequest{Translate: models.TranslatePayload{
		Locale:   "fr_FR",
		Problem:  "problème",
		Solution: "solution",
	}}
	c, rec := env.request(t, http.MethodPost, "/api/v1/pains", body, alice)

	require.NoError(t, env.pains.CreatePain(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid locale", decodeBody(t, rec)["locale"])
}

func TestCreatePainValidatesBody(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	body := models.CreatePainRequest{Translate: models.TranslatePayload{
		Locale: models.LocaleEnUS,
	}}
	c, rec := env.request(t, http.MethodPost, "/api/v1/pains", body, alice)

	require.NoError(t, env.pains.CreatePain(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decodeBody(t, rec)
	assert.Contains(t, got, "problem")
	assert.Contains(t, got, "solution")
}

func TestListPainsEnvelope(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	env.seedPain(t, alice.ID, "deadlines", "work")
	env.seedPain(t, bob.ID, "meetings")

	c, rec := env.request(t, http.MethodGet, "/api/v1/pains", nil, alice)
	require.NoError(t, env.pains.ListPains(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, float64(2), got["count"])
	assert.Nil(t, got["next"])
	assert.Nil(t, got["previous"])

	results, ok := got["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 2)

	first := results[0].(map[string]interface{})
	assert.Contains(t, first["permalink"], "/api/v1/pains/")
	assert.NotNil(t, first["default_translate"])
}

func TestListPainsPaginationLinks(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")
	for i := 0; i < 3; i++ {
		env.seedPain(t, alice.ID, "problem")
	}

	c, rec := env.request(t, http.MethodGet, "/api/v1/pains?limit=2", nil, alice)
	require.NoError(t, env.pains.ListPains(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, float64(3), got["count"])
	require.NotNil(t, got["next"])
	assert.Contains(t, got["next"], "offset=2")
	assert.Len(t, got["results"], 2)
}

func TestListPainsTagFilter(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	tagged := env.seedPain(t, alice.ID, "deadlines", "work")
	env.seedPain(t, alice.ID, "meetings")

	c, rec := env.request(t, http.MethodGet, "/api/v1/pains?tags=work", nil, alice)
	require.NoError(t, env.pains.ListPains(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, float64(1), got["count"])
	results := got["results"].([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, tagged.UUID.String(), results[0].(map[string]interface{})["uuid"])
}

func TestRetrievePainNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	c, rec := env.request(t, http.MethodGet, "/api/v1/pains/not-a-uuid", nil, alice)
	c.SetParamNames("uuid")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, env.pains.RetrievePain(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeBody(t, rec)["detail"])
}

func TestUpdatePainByNonOwnerNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	pain := env.seedPain(t, alice.ID, "deadlines")

	body := models.UpdatePainRequest{Translate: models.TranslatePayload{
		Locale:   models.LocaleEnUS,
		Problem:  "rewritten",
		Solution: "rewritten",
	}}
	c, rec := env.request(t, http.MethodPatch, "/api/v1/pains/"+pain.UUID.String(), body, bob)
	c.SetParamNames("uuid")
	c.SetParamValues(pain.UUID.String())

	require.NoError(t, env.pains.UpdatePain(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeBody(t, rec)["detail"])
}

func TestDeletePainReturnsFinalRepresentation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")
	pain := env.seedPain(t, alice.ID, "deadlines")

	c, rec := env.request(t, http.MethodDelete, "/api/v1/pains/"+pain.UUID.String(), nil, alice)
	c.SetParamNames("uuid")
	c.SetParamValues(pain.UUID.String())

	require.NoError(t, env.pains.DeletePain(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, pain.UUID.String(), got["uuid"])

	var count int64
	require.NoError(t, env.db.Model(&models.Pain{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeletePainRevisionKeyedByEntity(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")
	first := env.seedPain(t, alice.ID, "deadlines")
	second := env.seedPain(t, alice.ID, "meetings")

	for _, pain := range []*models.Pain{first, second} {
		c, rec := env.request(t, http.MethodDelete, "/api/v1/pains/"+pain.UUID.String(), nil, alice)
		c.SetParamNames("uuid")
		c.SetParamValues(pain.UUID.String())

		require.NoError(t, env.pains.DeletePain(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Each pain's history lives under its own id with its own numbering.
	for _, pain := range []*models.Pain{first, second} {
		revisions, err := env.history.ListByEntity(context.Background(), models.RevisionKindPain, pain.ID)
		require.NoError(t, err)
		require.Len(t, revisions, 1)
		assert.Equal(t, models.RevisionActionDelete, revisions[0].Action)
		assert.Equal(t, pain.ID, revisions[0].EntityID)
		assert.Equal(t, 1, revisions[0].Revision)
	}

	orphaned, err := env.history.ListByEntity(context.Background(), models.RevisionKindPain, 0)
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}

func TestListPainHistory(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	body := models.CreatePainRequest{Translate: models.TranslatePayload{
		Locale:   models.LocaleEnUS,
		Problem:  "deadlines pile up",
		Solution: "plan the week on monday",
	}}
	c, rec := env.request(t, http.MethodPost, "/api/v1/pains", body, alice)
	require.NoError(t, env.pains.CreatePain(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	painUUID := decodeBody(t, rec)["uuid"].(string)

	update := models.UpdatePainRequest{Translate: models.TranslatePayload{
		Locale:   models.LocaleEnUS,
		Problem:  "deadlines, revised",
		Solution: "delegate",
	}}
	c, rec = env.request(t, http.MethodPatch, "/api/v1/pains/"+painUUID, update, alice)
	c.SetParamNames("uuid")
	c.SetParamValues(painUUID)
	require.NoError(t, env.pains.UpdatePain(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.request(t, http.MethodGet, "/api/v1/pains/"+painUUID+"/history", nil, alice)
	c.SetParamNames("uuid")
	c.SetParamValues(painUUID)
	require.NoError(t, env.pains.ListPainHistory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var revisions []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &revisions))
	require.Len(t, revisions, 2)
	assert.Equal(t, models.RevisionActionCreate, revisions[0]["action"])
	assert.Equal(t, float64(1), revisions[0]["revision"])
	assert.Equal(t, models.RevisionActionUpdate, revisions[1]["action"])
	assert.Equal(t, float64(2), revisions[1]["revision"])
}

func TestListPainHistoryUnknownPain(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice")

	missing := "6f1e1f6a-58b0-4cde-9d5b-000000000000"
	c, rec := env.request(t, http.MethodGet, "/api/v1/pains/"+missing+"/history", nil, alice)
	c.SetParamNames("uuid")
	c.SetParamValues(missing)

	require.NoError(t, env.pains.ListPainHistory(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decodeBody(t, rec)["detail"])
}
