package counsel_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/globalgrad/counsellor/pkg/counselsdk"
)

func TestLivezEndpoint(t *testing.T) {
	api := setupAPIContainer(t, nil)

	health, err := api.client().Liveness(t.Context(), api.Root)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}

func TestReadyzEndpoint(t *testing.T) {
	api := setupAPIContainer(t, nil)

	health, err := api.client().Readiness(t.Context(), api.Root)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestRootAndDatabaseHealth(t *testing.T) {
	api := setupAPIContainer(t, nil)

	resp, err := http.Get(api.Root + "/")
	require.NoError(t, err)
	var msg counselsdk.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	resp.Body.Close()
	require.Equal(t, "Welcome to Global Grad API", msg.Message)

	resp, err = http.Get(api.Root + "/health/db")
	require.NoError(t, err)
	var db counselsdk.DatabaseHealth
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&db))
	resp.Body.Close()
	require.Equal(t, "connected", db.Database)
}

func TestSwaggerUI(t *testing.T) {
	api := setupAPIContainer(t, nil)

	resp, err := http.Get(api.Root + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Contains(t, doc.Paths, "/api/v1/universities")
}
