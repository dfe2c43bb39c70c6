package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer runs on the in-memory store, so these tests need no
// database. The Postgres path is covered by the integration tests in the
// employee package.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer("", log)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status         string `json:"status"`
		ActivePolicies int    `json:"activePolicies"`
	}
	decodeBody(t, rec, &body)
	if body.Status != "healthy" {
		t.Errorf("status = %q, want %q", body.Status, "healthy")
	}
	if body.ActivePolicies != 3 {
		t.Errorf("activePolicies = %d, want 3 built-in policies", body.ActivePolicies)
	}
}

func TestListPolicies(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/policies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Policies []PolicyResponse `json:"policies"`
	}
	decodeBody(t, rec, &body)
	if len(body.Policies) != 3 {
		t.Fatalf("listed %d policies, want 3", len(body.Policies))
	}
	for _, p := range body.Policies {
		if p.Rule == "" {
			t.Errorf("policy %s should render its rule", p.ID)
		}
	}
}

func TestEvaluateCandidate(t *testing.T) {
	s := newTestServer(t)

	req := EvaluateRequest{
		Candidate: map[string]any{
			"area":             "Tecnologia",
			"cargo":            "Analista",
			"salario_bruto":    "5225.00",
			"data_de_admissao": "2019-01-01",
		},
		PolicyIDs: []string{"senior-technology"},
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var body struct {
		Results []EvaluationResponse `json:"results"`
	}
	decodeBody(t, rec, &body)
	if len(body.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(body.Results))
	}
	if !body.Results[0].Eligible {
		t.Errorf("analyst should be eligible: %+v", body.Results[0])
	}
}

func TestEvaluateCandidateCarriesRemainder(t *testing.T) {
	s := newTestServer(t)

	req := EvaluateRequest{
		Candidate: map[string]any{
			"area":             "Financeiro",
			"cargo":            "Analista",
			"salario_bruto":    "5225.00",
			"data_de_admissao": "2019-01-01",
		},
		PolicyIDs: []string{"senior-technology"},
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Results []EvaluationResponse `json:"results"`
	}
	decodeBody(t, rec, &body)
	if body.Results[0].Eligible {
		t.Fatal("finance analyst should not be in the senior technology band")
	}
	if body.Results[0].Remainder == "" {
		t.Error("ineligible result should carry a remainder")
	}
}

func TestEvaluateAllPolicies(t *testing.T) {
	s := newTestServer(t)

	req := EvaluateRequest{
		Candidate: map[string]any{
			"area":             "Tecnologia",
			"cargo":            "Analista",
			"salario_bruto":    "5225.00",
			"data_de_admissao": "2019-01-01",
		},
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Results []EvaluationResponse `json:"results"`
	}
	decodeBody(t, rec, &body)
	if len(body.Results) != 3 {
		t.Errorf("got %d results, want one per active policy", len(body.Results))
	}
}

func TestEvaluateValidation(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name string
		req  EvaluateRequest
		want int
	}{
		{"missing candidate", EvaluateRequest{}, http.StatusBadRequest},
		{"unknown policy", EvaluateRequest{
			Candidate: map[string]any{"area": "Tecnologia"},
			PolicyIDs: []string{"no-such-policy"},
		}, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/v1/evaluate", tc.req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)

	create := EmployeeRequest{
		Name:           "Ana Souza",
		Area:           "Tecnologia",
		Cargo:          "Analista",
		SalarioBruto:   "5225.00",
		DataDeAdmissao: "2019-01-01",
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/employees", create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var created EmployeeResponse
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created employee should have a minted ID")
	}
	if created.SalarioBruto != "5225.00" {
		t.Errorf("salarioBruto = %q, want %q", created.SalarioBruto, "5225.00")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/employees/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	update := create
	update.Cargo = "Coordenador"
	rec = doJSON(t, s, http.MethodPut, "/api/v1/employees/"+created.ID, update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var updated EmployeeResponse
	decodeBody(t, rec, &updated)
	if updated.Cargo != "Coordenador" {
		t.Errorf("cargo = %q, want %q", updated.Cargo, "Coordenador")
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/employees/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/employees/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name string
		req  EmployeeRequest
	}{
		{"bad salary", EmployeeRequest{
			Name: "Ana", Area: "Tecnologia", Cargo: "Analista",
			SalarioBruto: "not-a-number", DataDeAdmissao: "2019-01-01",
		}},
		{"bad date", EmployeeRequest{
			Name: "Ana", Area: "Tecnologia", Cargo: "Analista",
			SalarioBruto: "5225.00", DataDeAdmissao: "01/01/2019",
		}},
		{"missing name", EmployeeRequest{
			Area: "Tecnologia", Cargo: "Analista",
			SalarioBruto: "5225.00", DataDeAdmissao: "2019-01-01",
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/v1/employees", tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestEmployeeEligibilityEndpoint(t *testing.T) {
	s := newTestServer(t)

	create := EmployeeRequest{
		Name:           "Ana Souza",
		Area:           "Tecnologia",
		Cargo:          "Analista",
		SalarioBruto:   "5225.00",
		DataDeAdmissao: "2019-01-01",
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/employees", create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var created EmployeeResponse
	decodeBody(t, rec, &created)

	rec = doJSON(t, s, http.MethodPost,
		"/api/v1/employees/"+created.ID+"/eligibility?policy=senior-technology", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("eligibility status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var body struct {
		EmployeeID string               `json:"employeeId"`
		Results    []EvaluationResponse `json:"results"`
	}
	decodeBody(t, rec, &body)
	if body.EmployeeID != created.ID {
		t.Errorf("employeeId = %q, want %q", body.EmployeeID, created.ID)
	}
	if len(body.Results) != 1 || !body.Results[0].Eligible {
		t.Errorf("analyst should be eligible for the requested policy: %+v", body.Results)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/employees/missing/eligibility", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown employee status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
