package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(srv.URL+"/api/game/action", srv.URL+"/api/user/authenticate")
	c.HTTP = srv.Client()
	return c
}

func TestFetchDexSendsActionPayload(t *testing.T) {
	var got Payload
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"totalMonstersInGame": 155,
				"discoveries":         []map[string]any{{"monsterId": 5}},
			},
		})
	}))
	defer srv.Close()

	data, err := newTestClient(srv).FetchDex(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "GET_GAME_DATA", got.Action)
	assert.Equal(t, "monsterDex", got.Params.DataType)
	assert.Equal(t, "GET_DEX_DATA", got.Params.SubAction)

	assert.Equal(t, 155, data.TotalMonstersInGame)
	require.Len(t, data.Discoveries, 1)
	require.NotNil(t, data.Discoveries[0].MonsterID)
	assert.Equal(t, 5, *data.Discoveries[0].MonsterID)
}

func TestFetchMonsterDetailPayload(t *testing.T) {
	var got Payload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"monsterId": 12},
		})
	}))
	defer srv.Close()

	detail, err := newTestClient(srv).FetchMonsterDetail(context.Background(), "tok", 12)
	require.NoError(t, err)

	assert.Equal(t, "GET_MONSTER_DETAILS", got.Params.SubAction)
	assert.Equal(t, 12, got.Params.MonsterID)
	assert.Equal(t, 12, detail.MonsterID)
}

func TestFetchDexRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"totalMonstersInGame": 1},
		})
	}))
	defer srv.Close()

	data, err := newTestClient(srv).FetchDex(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, data.TotalMonstersInGame)
}

func TestFetchDexDoesNotRetryApplicationErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "dex locked"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDex(context.Background(), "tok")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "dex locked")
	assert.Equal(t, 1, attempts, "success=false must never be retried")
}

func TestFetchDexDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDex(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestFetchDexGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDex(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)
	assert.Contains(t, err.Error(), "attempts")
}

func TestAuthFlowIsSingleShot(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).RequestChallenge(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "authenticate endpoint is not idempotent, never retry")
}

func TestSubmitSignature(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "game-token"})
	}))
	defer srv.Close()

	token, err := newTestClient(srv).SubmitSignature(context.Background(), "0xabc", "sig")
	require.NoError(t, err)
	assert.Equal(t, "game-token", token)
	assert.Equal(t, "0xabc", gotBody["account"])
	assert.Equal(t, "sig", gotBody["result"])
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "upstream rejected the request", (&APIError{}).Error())
	assert.Equal(t, "upstream: nope", (&APIError{Message: "nope"}).Error())
	assert.False(t, errors.Is(&APIError{}, context.Canceled))
}
