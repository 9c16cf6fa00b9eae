package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
	"github.com/edgarrmondragon/citric-sub000/pkg/rpc"
)

const testSessionKey = "fake-session-key"

type recordedCall struct {
	Method string
	Params []any
}

// fakeBackend is an in-process RemoteControl 2 endpoint. Results are keyed
// by method name; unset methods answer with a null result.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []recordedCall
	results map[string]any
	errors  map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		results: map[string]any{
			"get_session_key":     testSessionKey,
			"release_session_key": "OK",
		},
		errors: map[string]string{},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
		Params []any  `json:"params"`
		ID     int    `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.calls = append(b.calls, recordedCall{Method: req.Method, Params: req.Params})
	result := b.results[req.Method]
	rpcErr, hasErr := b.errors[req.Method]
	b.mu.Unlock()

	resp := map[string]any{"result": result, "error": nil, "id": req.ID}
	if hasErr {
		resp["result"] = nil
		resp["error"] = rpcErr
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (b *fakeBackend) callsTo(method string) []recordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedCall
	for _, c := range b.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestClient(t *testing.T, backend *fakeBackend) *api.Client {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := api.Connect(context.Background(), server.URL, "admin", "secret")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })
	return client
}

func TestConnectAndClose(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	client, err := api.Connect(context.Background(), server.URL, "admin", "secret")
	require.NoError(t, err)

	logins := backend.callsTo("get_session_key")
	require.Len(t, logins, 1)
	assert.Equal(t, []any{"admin", "secret"}, logins[0].Params)

	require.NoError(t, client.Close(context.Background()))

	releases := backend.callsTo("release_session_key")
	require.Len(t, releases, 1)
	assert.Equal(t, []any{testSessionKey}, releases[0].Params)
}

func TestListSurveys(t *testing.T) {
	backend := newFakeBackend()
	backend.results["list_surveys"] = []any{
		map[string]any{
			"sid":            "123456",
			"surveyls_title": "Customer satisfaction",
			"startdate":      "2023-01-01 00:00:00",
			"expires":        "",
			"active":         "Y",
		},
		map[string]any{
			"sid":            "654321",
			"surveyls_title": "Draft survey",
			"startdate":      "",
			"expires":        "",
			"active":         "N",
		},
	}
	client := newTestClient(t, backend)

	surveys, err := client.ListSurveys(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, surveys, 2)

	assert.Equal(t, 123456, surveys[0].ID)
	assert.Equal(t, "Customer satisfaction", surveys[0].Title)
	assert.Equal(t, "Y", surveys[0].Active)
	assert.Equal(t, 654321, surveys[1].ID)
	assert.Equal(t, "N", surveys[1].Active)

	calls := backend.callsTo("list_surveys")
	require.Len(t, calls, 1)
	assert.Equal(t, testSessionKey, calls[0].Params[0])
}

func TestListSurveysError(t *testing.T) {
	backend := newFakeBackend()
	backend.errors["list_surveys"] = "Invalid session key"
	client := newTestClient(t, backend)

	_, err := client.ListSurveys(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrAPI)
}

func TestImportSurvey(t *testing.T) {
	backend := newFakeBackend()
	backend.results["import_survey"] = 456
	client := newTestClient(t, backend)

	contents := "<survey>payload</survey>"
	id, err := client.ImportSurvey(context.Background(), strings.NewReader(contents), api.ImportSurveyLSS, "Imported", 0)
	require.NoError(t, err)
	assert.Equal(t, 456, id)

	calls := backend.callsTo("import_survey")
	require.Len(t, calls, 1)
	params := calls[0].Params
	require.Len(t, params, 5)
	assert.Equal(t, testSessionKey, params[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(contents)), params[1])
	assert.Equal(t, "lss", params[2])
	assert.Equal(t, "Imported", params[3])
	assert.Nil(t, params[4])
}

func TestImportQuestion(t *testing.T) {
	backend := newFakeBackend()
	backend.results["import_question"] = "17"
	client := newTestClient(t, backend)

	doc := "<document><questions/></document>"
	id, err := client.ImportQuestion(context.Background(), strings.NewReader(doc), 123456, 3)
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	calls := backend.callsTo("import_question")
	require.Len(t, calls, 1)
	params := calls[0].Params
	require.Len(t, params, 5)
	assert.Equal(t, float64(123456), params[1])
	assert.Equal(t, float64(3), params[2])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(doc)), params[3])
	assert.Equal(t, "lsq", params[4])
}

func TestExportResponses(t *testing.T) {
	payload := "id,answer\n1,yes\n2,no\n"

	backend := newFakeBackend()
	backend.results["export_responses"] = base64.StdEncoding.EncodeToString([]byte(payload))
	client := newTestClient(t, backend)

	var buf bytes.Buffer
	n, err := client.ExportResponses(context.Background(), &buf, 123456, api.ResponsesExportCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Equal(t, payload, buf.String())

	calls := backend.callsTo("export_responses")
	require.Len(t, calls, 1)
	params := calls[0].Params
	assert.Equal(t, "csv", params[2])
	assert.Equal(t, "all", params[4])
	assert.Equal(t, "code", params[5])
	assert.Equal(t, "short", params[6])
}

func TestExportResponsesNotBase64(t *testing.T) {
	backend := newFakeBackend()
	backend.results["export_responses"] = "not-valid-base64!!!"
	client := newTestClient(t, backend)

	var buf bytes.Buffer
	_, err := client.ExportResponses(context.Background(), &buf, 123456, api.ResponsesExportCSV, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrInvalidResponse)
}

func TestAddParticipants(t *testing.T) {
	backend := newFakeBackend()
	backend.results["add_participants"] = []any{
		map[string]any{"token": "abc123", "firstname": "Ada"},
	}
	client := newTestClient(t, backend)

	pid := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	records, err := client.AddParticipants(context.Background(), 123456, []api.Participant{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", ParticipantID: pid},
	}, true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc123", records[0]["token"])

	calls := backend.callsTo("add_participants")
	require.Len(t, calls, 1)
	sent, ok := calls[0].Params[2].([]any)
	require.True(t, ok)
	require.Len(t, sent, 1)
	record, ok := sent[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", record["firstname"])
	assert.Equal(t, "en", record["language"])
	assert.Equal(t, "N", record["blacklisted"])
	assert.Equal(t, pid.String(), record["participant_id"])
}

func TestParticipantToMapDefaults(t *testing.T) {
	record := api.Participant{FirstName: "Ada", Blacklisted: true}.ToMap()
	assert.Equal(t, "en", record["language"])
	assert.Equal(t, "Y", record["blacklisted"])
	assert.Nil(t, record["participant_id"])
}

func TestInviteParticipantsSendTally(t *testing.T) {
	backend := newFakeBackend()
	backend.results["invite_participants"] = map[string]any{
		"status": "-1 left to send",
		"total":  float64(3),
	}
	client := newTestClient(t, backend)

	summary, err := client.InviteParticipants(context.Background(), 123456, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "-1 left to send", summary["status"])
}

func TestInviteParticipantsFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.results["invite_participants"] = map[string]any{
		"status": "Error: No candidate tokens",
	}
	client := newTestClient(t, backend)

	_, err := client.InviteParticipants(context.Background(), 123456, nil, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, rpc.ErrStatus)
}

func TestDeleteQuestion(t *testing.T) {
	backend := newFakeBackend()
	backend.results["delete_question"] = 42
	client := newTestClient(t, backend)

	id, err := client.DeleteQuestion(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestActivateSurveyStatusFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.results["activate_survey"] = map[string]any{"status": "Error: Invalid survey ID"}
	client := newTestClient(t, backend)

	_, err := client.ActivateSurvey(context.Background(), 99)
	require.Error(t, err)

	var statusErr *rpc.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Error: Invalid survey ID", statusErr.Status)
}

func TestMethodProxyFallback(t *testing.T) {
	backend := newFakeBackend()
	backend.results["cpd_importParticipants"] = map[string]any{"ImportCount": float64(2)}
	client := newTestClient(t, backend)

	result, err := client.Method("cpd_importParticipants").Call(context.Background(), []any{})
	require.NoError(t, err)
	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), m["ImportCount"])

	calls := backend.callsTo("cpd_importParticipants")
	require.Len(t, calls, 1)
	assert.Equal(t, testSessionKey, calls[0].Params[0])
}
