package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/viewstate"
)

type failingSource struct{}

func (failingSource) FetchCatalog(context.Context) (*athlete.Catalog, error) {
	return nil, errors.New("disk on fire")
}

func (failingSource) LookupProfile(context.Context, string) (*athlete.Profile, error) {
	return nil, errors.New("disk on fire")
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Source == nil {
		opts.Source = athlete.NewStatic(athlete.Fixture())
	}
	s, err := New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	var body healthResponse
	resp := getJSON(t, ts.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
	assert.NotEmpty(t, resp.Header.Get("X-Process-Time"))
}

func TestRequestID_Propagated(t *testing.T) {
	ts := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestCatalog_RoundTripsThroughClient(t *testing.T) {
	ts := newTestServer(t, Options{})

	client, err := athlete.NewClient(ts.URL)
	require.NoError(t, err)
	cat, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)

	want := athlete.Fixture()
	assert.Equal(t, want.Primary, cat.Primary)
	assert.Len(t, cat.Merged, len(want.Merged))
	assert.Equal(t, want.EventCount(), cat.EventCount())

	profile, err := client.LookupProfile(context.Background(), athlete.ProfileURL)
	require.NoError(t, err)
	assert.Equal(t, want.Primary.ID, profile.ID)
}

func TestSearch_Labels(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		query string
		label string
		count int
	}{
		{"", "", 0},
		{"jor", `1 result for "jor"`, 1},
		{"BURROUGHS", `1 result for "BURROUGHS"`, 1},
		{"zzz", `No results for "zzz"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var body searchResponse
			resp := getJSON(t, ts.URL+"/api/profiles/search?q="+tt.query, &body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.label, body.Label)
			assert.Len(t, body.Results, tt.count)
			assert.NotNil(t, body.Results)
		})
	}
}

func TestLookup(t *testing.T) {
	ts := newTestServer(t, Options{})

	var profile athlete.Profile
	resp := getJSON(t, ts.URL+"/api/profile/lookup?ref=anything", &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, athlete.Fixture().Primary.Name, profile.Name)

	for _, query := range []string{"?ref=", "?ref=%20%20", ""} {
		var blank athlete.Profile
		resp = getJSON(t, ts.URL+"/api/profile/lookup"+query, &blank)
		assert.Equal(t, http.StatusOK, resp.StatusCode, query)
		assert.Equal(t, athlete.Fixture().Primary.ID, blank.ID, query)
	}
}

func TestLookup_BlankRefThroughClientMatchesStatic(t *testing.T) {
	ts := newTestServer(t, Options{})
	client, err := athlete.NewClient(ts.URL)
	require.NoError(t, err)
	static := athlete.NewStatic(athlete.Fixture())

	for _, ref := range []string{"", "   ", "anything"} {
		want, err := static.LookupProfile(context.Background(), ref)
		require.NoError(t, err)
		got, err := client.LookupProfile(context.Background(), ref)
		require.NoError(t, err, "ref %q", ref)
		assert.Equal(t, want.ID, got.ID, "ref %q", ref)
	}
}

func TestComparison_ExternalOmitsSensitiveRows(t *testing.T) {
	ts := newTestServer(t, Options{})
	id := athlete.Fixture().Primary.ID

	var internal comparisonResponse
	resp := getJSON(t, ts.URL+"/api/profiles/"+id+"/comparison", &internal)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, viewstate.ViewInternal, internal.Mode)
	require.Len(t, internal.Comparisons, len(athlete.Fixture().Merged))
	_, ok := internal.Comparisons[0].Left.Row("DOB")
	assert.True(t, ok)
	require.NotNil(t, internal.Prospect)
	assert.Equal(t, "Profile to Merge", internal.Prospect.Right.Title)

	var external comparisonResponse
	resp = getJSON(t, ts.URL+"/api/profiles/"+id+"/comparison?mode=external", &external)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range external.Comparisons {
		for _, card := range []viewstate.Card{c.Left, c.Right} {
			_, dob := card.Row("DOB")
			_, coords := card.Row("Lat/Lng")
			assert.False(t, dob, "external card %s shows DOB", card.Name)
			assert.False(t, coords, "external card %s shows Lat/Lng", card.Name)
			assert.Empty(t, card.RawJSON)
		}
	}
}

func TestComparison_Errors(t *testing.T) {
	ts := newTestServer(t, Options{})
	id := athlete.Fixture().Primary.ID

	var body errorResponse
	resp := getJSON(t, ts.URL+"/api/profiles/nope/comparison", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	resp = getJSON(t, ts.URL+"/api/profiles/"+id+"/comparison?mode=public", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", body.Error.Code)
}

func TestSourceFailure_Returns503(t *testing.T) {
	ts := newTestServer(t, Options{Source: failingSource{}})

	var body errorResponse
	resp := getJSON(t, ts.URL+"/api/catalog", &body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "SOURCE_UNAVAILABLE", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "disk on fire")
}

func TestRateLimit_Returns429(t *testing.T) {
	ts := newTestServer(t, Options{RateLimit: 2})

	first := getJSON(t, ts.URL+"/api/catalog", nil)
	assert.Equal(t, http.StatusOK, first.StatusCode)

	var body errorResponse
	second := getJSON(t, ts.URL+"/api/catalog", &body)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
	assert.Equal(t, "60", second.Header.Get("Retry-After"))

	// health is outside the limited group
	health := getJSON(t, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, Options{})

	var body errorResponse
	resp := getJSON(t, ts.URL+"/api/nope", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	ts := newTestServer(t, Options{})
	id := athlete.Fixture().Primary.ID

	getJSON(t, ts.URL+"/api/profiles/"+id+"/comparison", nil)
	getJSON(t, ts.URL+"/api/profiles/search?q=zzz", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `route="/api/profiles/{id}/comparison"`)
	assert.NotContains(t, text, id)
	assert.Contains(t, text, `takedown_profile_searches_total{outcome="miss"} 1`)
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t, Options{CORSOrigins: []string{"https://admin.example.com"}})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/catalog", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://admin.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, err := New(Options{Source: athlete.NewStatic(athlete.Fixture())})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	_, err = http.Get("http://" + ln.Addr().String() + "/health")
	assert.Error(t, err)
}
