package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grievance-hub/grievance-hub/internal/application/grievance"
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/domain/oracle"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/directory"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/ledger"
	"github.com/grievance-hub/grievance-hub/internal/registry"
)

const testAdminSecret = "hunter2"

func newTestHandler(t *testing.T) (http.Handler, *ledger.Ledger) {
	t.Helper()
	dir := directory.New("admin", "treasury", "alice", "bob")
	require.NoError(t, dir.SetAdminSecret(testAdminSecret))

	funds := ledger.New()
	reg := registry.New(oracle.NewLogicalClock(0), dir, funds, registry.Config{
		Administrator: "admin",
		Treasury:      "treasury",
		EscalationFee: 25,
	})

	svc := grievance.NewService(reg, nil, nil, zerolog.Nop())
	return NewServer(svc, dir, funds, zerolog.Nop()).Router(), funds
}

func doJSON(t *testing.T, h http.Handler, method, path, principal, secret, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}
	if secret != "" {
		req.Header.Set("X-Admin-Secret", secret)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestSubmitAndFetchComplaint(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, out := doJSON(t, h, http.MethodPost, "/v1/complaints", "alice", "",
		`{"description":"broken delivery","category":"shipping","attachments":["photo.png"],"involvedParties":["bob"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, float64(1), out["id"])

	rec, out = doJSON(t, h, http.MethodGet, "/v1/complaints/1", "alice", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := out["complaint"].(map[string]any)
	assert.Equal(t, "alice", c["owner"])
	assert.Equal(t, "shipping", c["category"])
	assert.Equal(t, "open", c["status"])
}

func TestMissingPrincipalRejected(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, out := doJSON(t, h, http.MethodPost, "/v1/complaints", "", "",
		`{"description":"x","category":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_PRINCIPAL", out["error"])
}

func TestDomainErrorMapping(t *testing.T) {
	h, funds := newTestHandler(t)

	rec, out := doJSON(t, h, http.MethodGet, "/v1/complaints/42", "alice", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(complaint.CodeNotFound), out["code"])

	_, out = doJSON(t, h, http.MethodPost, "/v1/complaints", "alice", "",
		`{"description":"late refund","category":"billing"}`)
	require.Equal(t, true, out["ok"])

	// No balance yet, so the escalation fee transfer is refused.
	rec, out = doJSON(t, h, http.MethodPost, "/v1/complaints/1/escalate", "alice", "", "")
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, float64(complaint.CodePaymentFailed), out["code"])

	require.NoError(t, funds.Credit("alice", 100))
	rec, _ = doJSON(t, h, http.MethodPost, "/v1/complaints/1/escalate", "alice", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(25), funds.Balance("treasury"))

	// Only the owner may close.
	rec, out = doJSON(t, h, http.MethodPost, "/v1/complaints/1/close", "bob", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, float64(complaint.CodeNotOwner), out["code"])
}

func TestAdminSecretGate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, out := doJSON(t, h, http.MethodPost, "/v1/admin/fee", "admin", "wrong", `{"fee":10}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", out["error"])

	rec, out = doJSON(t, h, http.MethodPost, "/v1/admin/fee", "admin", testAdminSecret, `{"fee":10}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])

	// Correct secret but a non-administrator principal still fails in the
	// registry.
	rec, out = doJSON(t, h, http.MethodPost, "/v1/admin/fee", "alice", testAdminSecret, `{"fee":10}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, float64(complaint.CodeUnauthorized), out["code"])
}

func TestAdminRegistersParticipantAndCredits(t *testing.T) {
	h, funds := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/v1/admin/participants", "admin", testAdminSecret,
		`{"principal":"carol"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/v1/admin/credits", "admin", testAdminSecret,
		`{"principal":"carol","amount":500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(500), funds.Balance("carol"))

	rec, out := doJSON(t, h, http.MethodPost, "/v1/complaints", "carol", "",
		`{"description":"account locked","category":"access"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
}

func TestQueryEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, body := range []string{
		`{"description":"one","category":"billing"}`,
		`{"description":"two","category":"billing","involvedParties":["bob"]}`,
	} {
		rec, _ := doJSON(t, h, http.MethodPost, "/v1/complaints", "alice", "", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	_, out := doJSON(t, h, http.MethodGet, "/v1/users/alice/complaints", "alice", "", "")
	assert.Equal(t, []any{float64(1), float64(2)}, out["complaints"])

	_, out = doJSON(t, h, http.MethodGet, "/v1/categories/billing/stats", "alice", "", "")
	st := out["stats"].(map[string]any)
	assert.Equal(t, float64(2), st["count"])

	_, out = doJSON(t, h, http.MethodGet, "/v1/complaints/2/involved/bob", "alice", "", "")
	assert.Equal(t, true, out["involved"])

	_, out = doJSON(t, h, http.MethodGet, "/v1/complaints/1/history", "alice", "", "")
	entries := out["history"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "submitted", entries[0].(map[string]any)["action"])

	rec, _ := doJSON(t, h, http.MethodGet, "/healthz", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
