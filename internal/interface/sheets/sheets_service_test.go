package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type fakeSheetsAPI struct {
	t        *testing.T
	titles   []string
	header   [][]interface{}
	requests []recordedRequest
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
	})

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v4/spreadsheets/sheet-id":
		var sheetsJSON []string
		for i, title := range f.titles {
			sheetsJSON = append(sheetsJSON, fmt.Sprintf(`{"properties":{"sheetId":%d,"title":%q}}`, i, title))
		}
		fmt.Fprintf(w, `{"spreadsheetId":"sheet-id","sheets":[%s]}`, strings.Join(sheetsJSON, ","))
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		fmt.Fprint(w, `{"spreadsheetId":"sheet-id","replies":[{}]}`)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/") && !f.knowsRange(r.URL.Path):
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"Unable to parse range","status":"INVALID_ARGUMENT"}}`)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		values, _ := json.Marshal(f.header)
		fmt.Fprintf(w, `{"range":"x","majorDimension":"ROWS","values":%s}`, values)
	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/values/"):
		fmt.Fprint(w, `{"spreadsheetId":"sheet-id"}`)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
		fmt.Fprint(w, `{"spreadsheetId":"sheet-id"}`)
	default:
		f.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"not found"}}`)
	}
}

// knowsRange reports whether path reads from a worksheet the spreadsheet has.
// With no titles configured every range is accepted.
func (f *fakeSheetsAPI) knowsRange(path string) bool {
	if len(f.titles) == 0 {
		return true
	}
	for _, title := range f.titles {
		if strings.Contains(path, entity.QuoteSheetName(title)+"!") {
			return true
		}
	}
	return false
}

func newTestSheetsService(t *testing.T, api *fakeSheetsAPI) *SheetsService {
	t.Helper()
	api.t = t

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	svc, err := NewSheetsService(
		context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test"}),
		logger.NewNopLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc
}

func TestEnsureWorksheetExisting(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Sheet1", "ChatWebhooks"}}
	svc := newTestSheetsService(t, api)

	created, err := svc.EnsureWorksheet(context.Background(), "sheet-id", "ChatWebhooks", entity.WorksheetHeader)
	require.NoError(t, err)

	assert.False(t, created)
	require.Len(t, api.requests, 1)
	assert.Equal(t, http.MethodGet, api.requests[0].Method)
}

func TestEnsureWorksheetCreatesWithHeader(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Sheet1"}}
	svc := newTestSheetsService(t, api)

	created, err := svc.EnsureWorksheet(context.Background(), "sheet-id", "ChatWebhooks", entity.WorksheetHeader)
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, api.requests, 3)

	add := api.requests[1]
	assert.True(t, strings.HasSuffix(add.Path, ":batchUpdate"))
	assert.Contains(t, add.Body, `"title":"ChatWebhooks"`)
	assert.Contains(t, add.Body, `"columnCount":5`)
	assert.Contains(t, add.Body, `"rowCount":1000`)

	header := api.requests[2]
	assert.Equal(t, http.MethodPut, header.Method)
	assert.Contains(t, header.Path, "'ChatWebhooks'!A1:E1")
	assert.Contains(t, header.Query, "valueInputOption=RAW")

	var payload struct {
		Values [][]string `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(header.Body), &payload))
	assert.Equal(t, [][]string{entity.WorksheetHeader}, payload.Values)
}

func TestEnsureWorksheetSpreadsheetMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`)
	}))
	t.Cleanup(srv.Close)

	svc, err := NewSheetsService(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test"}),
		logger.NewNopLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	_, err = svc.EnsureWorksheet(context.Background(), "missing", "ChatWebhooks", entity.WorksheetHeader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open spreadsheet missing")
}

func TestReadHeader(t *testing.T) {
	api := &fakeSheetsAPI{
		titles: []string{"ChatWebhooks"},
		header: [][]interface{}{{"Space Name", "Webhook URL", "Space ID", "Created", "Members", "Last Updated"}},
	}
	svc := newTestSheetsService(t, api)

	header, err := svc.ReadHeader(context.Background(), "sheet-id", "ChatWebhooks")
	require.NoError(t, err)

	assert.Equal(t, []string{"Space Name", "Webhook URL", "Space ID", "Created", "Members", "Last Updated"}, header)
	require.Len(t, api.requests, 2)
	assert.Equal(t, "/v4/spreadsheets/sheet-id", api.requests[0].Path)
	assert.Contains(t, api.requests[1].Path, "'ChatWebhooks'!1:1")
}

func TestReadHeaderUnknownWorksheet(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Sheet1"}}
	svc := newTestSheetsService(t, api)

	_, err := svc.ReadHeader(context.Background(), "sheet-id", "ChatWebhooks")

	assert.ErrorIs(t, err, entity.ErrWorksheetNotFound)
	require.Len(t, api.requests, 1, "values are not read for a worksheet that does not exist")
}

func TestReadRowsUnknownWorksheet(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Sheet1"}}
	svc := newTestSheetsService(t, api)

	_, err := svc.ReadRows(context.Background(), "sheet-id", "'ChatWebhooks'!A2:E")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to parse range")
}

func TestReadHeaderEmptySheet(t *testing.T) {
	svc := newTestSheetsService(t, &fakeSheetsAPI{titles: []string{"ChatWebhooks"}})

	header, err := svc.ReadHeader(context.Background(), "sheet-id", "ChatWebhooks")
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestReadRowsFormatsNumbers(t *testing.T) {
	api := &fakeSheetsAPI{header: [][]interface{}{{"Alpha", "spaces/A", 12}}}
	svc := newTestSheetsService(t, api)

	rows, err := svc.ReadRows(context.Background(), "sheet-id", "'ChatWebhooks'!A2:E")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Alpha", "spaces/A", "12"}}, rows)
}

func TestWriteRowsAndClear(t *testing.T) {
	api := &fakeSheetsAPI{}
	svc := newTestSheetsService(t, api)

	rows := [][]interface{}{{"Alpha", "spaces/A", "2023-05-01T09:00:00Z", 12, "2026-01-01 10:00:00"}}
	require.NoError(t, svc.WriteRows(context.Background(), "sheet-id", "'ChatWebhooks'!A2:E2", rows))
	require.NoError(t, svc.ClearRange(context.Background(), "sheet-id", "'ChatWebhooks'!A3:E"))

	require.Len(t, api.requests, 2)
	assert.Equal(t, http.MethodPut, api.requests[0].Method)
	assert.Contains(t, api.requests[0].Body, `"Alpha"`)
	assert.Contains(t, api.requests[0].Body, `12`)
	assert.True(t, strings.HasSuffix(api.requests[1].Path, ":clear"))
	assert.Contains(t, api.requests[1].Path, "'ChatWebhooks'!A3:E")
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(1))
	assert.Equal(t, "E", columnLetter(5))
	assert.Equal(t, "F", columnLetter(6))
	assert.Equal(t, "A", columnLetter(0))
	assert.Equal(t, "Z", columnLetter(40))
}
