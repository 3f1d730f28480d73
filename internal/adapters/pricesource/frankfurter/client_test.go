package frankfurter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesBody = `{
	"amount": 1.0,
	"base": "EUR",
	"start_date": "2020-01-02",
	"end_date": "2020-01-06",
	"rates": {
		"2020-01-06": {"USD": 1.1194},
		"2020-01-02": {"USD": 1.1193},
		"2020-01-03": {"USD": 1.1147000000000000001}
	}
}`

func TestClient_FetchPrices(t *testing.T) {
	var gotPath, gotBase, gotSymbols string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBase = r.URL.Query().Get("base")
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(seriesBody))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/v1", Timeout: time.Second})
	from := time.Date(2020, 1, 2, 13, 0, 0, 0, time.UTC)

	points, err := c.FetchPrices(context.Background(), "EUR", "USD", &from)
	require.NoError(t, err)

	assert.Equal(t, "/v1/2020-01-02..", gotPath)
	assert.Equal(t, "EUR", gotBase)
	assert.Equal(t, "USD", gotSymbols)

	require.Len(t, points, 3)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, "1.1193", points[0].Value.String())
	assert.Equal(t, "1.1147000000000000001", points[1].Value.String())
	assert.Equal(t, time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), points[2].Date)
}

func TestClient_FetchPrices_FullHistoryWhenNoStart(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"rates": {}}`))
	}))
	defer srv.Close()

	points, err := New(Config{BaseURL: srv.URL}).FetchPrices(context.Background(), "EUR", "GBP", nil)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Equal(t, "/1999-01-04..", gotPath)
}

func TestClient_FetchPrices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"not found"}`, wantErr: "not found"},
		{name: "server error", status: http.StatusBadGateway, body: ``, wantErr: "502"},
		{name: "invalid json", status: http.StatusOK, body: `{"rates": `, wantErr: "invalid JSON"},
		{name: "bad value", status: http.StatusOK, body: `{"rates": {"2020-01-02": {"USD": "n/a"}}}`, wantErr: "invalid USD price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(Config{BaseURL: srv.URL}).FetchPrices(context.Background(), "EUR", "USD", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTimeSeries_DropsDaysBeforeStart(t *testing.T) {
	start := time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)
	points, err := parseTimeSeries([]byte(seriesBody), "USD", start)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, start, points[0].Date)
}

func TestParseTimeSeries_SkipsMissingQuote(t *testing.T) {
	points, err := parseTimeSeries([]byte(`{"rates": {"2020-01-02": {"GBP": 0.85}}}`), "USD", HistoryStart)
	require.NoError(t, err)
	assert.Empty(t, points)
}
