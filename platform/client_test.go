package platform

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccessor serves a fixed token and records purges.
type stubAccessor struct {
	token    string
	tokenErr error
	purged   int
}

func (s *stubAccessor) Token(context.Context) (string, error) {
	if s.tokenErr != nil {
		return "", s.tokenErr
	}
	return s.token, nil
}

func (s *stubAccessor) Purge(context.Context) error {
	s.purged++
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *stubAccessor) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	accessor := &stubAccessor{token: "bearer-abc"}
	return NewClient(srv.URL, 5*time.Second, accessor), accessor
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	})

	var out map[string]bool
	err := client.getJSON(context.Background(), "/ping", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer bearer-abc", gotAuth)
	assert.True(t, out["ok"])
}

func TestClientUnauthorizedPurgesSession(t *testing.T) {
	client, accessor := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	purgeHook := 0
	var outcomes []string
	client.OnPurge = func() { purgeHook++ }
	client.OnRequest = func(outcome string) { outcomes = append(outcomes, outcome) }

	err := client.getJSON(context.Background(), "/campaigns", nil, nil)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, accessor.purged, "a 401 must purge the session")
	assert.Equal(t, 1, purgeHook)
	assert.Equal(t, []string{"unauthorized"}, outcomes)
}

func TestClientUnauthorizedOnLoginDoesNotPurge(t *testing.T) {
	client, accessor := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	auth := NewAuthAPI(client)

	_, err := auth.Login(context.Background(), "dana@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Zero(t, accessor.purged, "bad credentials are not a stale session")
}

func TestClientLoginSendsFormCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "dana@example.com", r.PostFormValue("username"))
		assert.Equal(t, "hunter2!", r.PostFormValue("password"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok", "token_type": "bearer", "profile": {"name": "Dana", "email": "dana@example.com"}}`))
	})
	auth := NewAuthAPI(client)

	result, err := auth.Login(context.Background(), "dana@example.com", "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, "tok", result.AccessToken)
	assert.Equal(t, "Dana", result.Profile.Name)
}

func TestClientNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.getJSON(context.Background(), "/campaigns/missing", nil, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientAPIErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{name: "detail field", body: `{"detail": "campaign name taken"}`, detail: "campaign name taken"},
		{name: "message fallback", body: `{"message": "bad request"}`, detail: "bad request"},
		{name: "non-json body", body: "upstream exploded", detail: "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tt.body))
			})

			err := client.getJSON(context.Background(), "/campaigns", nil, nil)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestArtifactsNotFoundIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	calls := NewCallRepository(client)

	artifacts, err := calls.Artifacts(context.Background(), "sid-1")
	require.NoError(t, err, "missing artifacts are an empty result, not an error")
	assert.True(t, artifacts.Empty())
}

func TestCallListQueryEncoding(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"calls": [], "next_cursor": "", "has_more": false}`))
	})
	calls := NewCallRepository(client)

	min := 30
	_, err := calls.List(context.Background(), CallQuery{
		CampaignID:  "camp-1",
		StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		PageSize:    25,
		Cursor:      "abc",
		Status:      "completed",
		DurationMin: &min,
	})
	require.NoError(t, err)

	assert.Equal(t, "/calls/external/camp-1/list", gotPath)
	assert.Contains(t, gotQuery, "start_date=2026-08-01")
	assert.Contains(t, gotQuery, "end_date=2026-08-15")
	assert.Contains(t, gotQuery, "page_size=25")
	assert.Contains(t, gotQuery, "cursor=abc")
	assert.Contains(t, gotQuery, "duration_min=30")
	assert.NotContains(t, gotQuery, "duration_max")
}

func TestUpstreamPaths(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "https://cdn.example.com/rec.mp3"}`))
	})
	calls := NewCallRepository(client)
	campaigns := NewCampaignRepository(client)

	_, err := calls.RecordingURL(context.Background(), "camp-1", "sid-9")
	require.NoError(t, err)
	assert.Equal(t, "/calls/recordings/camp-1/sid-9", gotPath)

	err = calls.Initiate(context.Background(), OutboundCallRequest{
		CampaignID:       "camp-1",
		To:               "+15550001111",
		CallerName:       "Dana",
		DynamicVariables: map[string]string{"plan": "gold", "caller_name": "Dana"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/calls/", gotPath)
	assert.Contains(t, gotBody, `"dynamic_variables"`)
	assert.Contains(t, gotBody, `"plan":"gold"`)

	err = campaigns.UploadContacts(context.Background(), "camp-1", "contacts.csv", []byte("phone_number\n"))
	require.NoError(t, err)
	assert.Equal(t, "/campaigns/camp-1/upload", gotPath)
}

func TestClientNoSessionToken(t *testing.T) {
	client, accessor := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})
	accessor.tokenErr = errors.New("session record not found")

	err := client.getJSON(context.Background(), "/campaigns", nil, nil)
	assert.Error(t, err)
}
