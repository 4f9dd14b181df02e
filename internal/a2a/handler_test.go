package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigen-agent/internal/agent"
	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
	"github.com/BerylCAtieno/nutrigen-agent/internal/report"
)

type stubGenerator struct {
	report *models.Report
	err    error
	got    []string
}

func (s *stubGenerator) Generate(_ context.Context, raw string) (*models.Report, error) {
	s.got = append(s.got, raw)
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func sampleReport() *models.Report {
	return &models.Report{
		ProfileSummary: models.ProfileSummary{
			Name: "João da Silva", Age: 35, Sex: "Masculino", Height: "1.80m",
			CurrentWeight: 95, TargetWeight: 80, BMI: 29.3, BMICategory: "Sobrepeso",
		},
		NutritionalAnalysis: models.NutritionalAnalysis{
			Summary: "Regular", DailyMeals: 3, WaterIntake: "1.5L",
			Recommendations: []string{"Beber mais água"},
		},
		PhysicalAnalysis: models.PhysicalAnalysis{
			ActivityLevel: "Sedentário", PreferredActivities: "Caminhada", SleepHours: 6,
			Recommendations: []string{"Caminhar"},
		},
		GoalsAndMotivation: models.GoalsAndMotivation{
			MainChallenge: "Tempo", MainMotivation: "Saúde",
			Recommendations: []string{"Planejar"},
		},
		CustomPreferences: models.CustomPreferences{
			LikedFoods:   []string{"Churrasco", "Massas"},
			FoodsToAvoid: []string{"Doces"},
		},
		ActionPlan: models.ActionPlan{
			Title: "Plano de 30 dias", Introduction: "Vamos lá",
			DietarySteps:   []string{"Trocar refrigerante por água", "Comer salada"},
			ExerciseSteps:  []string{"Caminhar 30 min"},
			LifestyleSteps: []string{"Dormir 7h"},
		},
		Conclusion: models.Conclusion{FinalMessage: "Você consegue!"},
		Charts: models.ChartData{
			WeightComparison:     []models.ChartPoint{{Name: "Peso Atual", Value: 95}, {Name: "Peso Meta", Value: 80}},
			ActivityDistribution: []models.ChartPoint{{Name: "Sedentário", Value: 100}},
		},
	}
}

func newRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewA2AHandler(gen, agent.NewCard("http://test"), nil).Register(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func reportBody(t *testing.T, raw string) string {
	b, err := json.Marshal(ReportRequest{RawData: raw})
	require.NoError(t, err)
	return string(b)
}

func TestHealthAndCard(t *testing.T) {
	r := newRouter(&stubGenerator{})

	w := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = do(t, r, http.MethodGet, "/.well-known/agent.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	var card agent.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://test/a2a/report", card.Endpoints.A2A)
}

func TestHandleReportSuccess(t *testing.T) {
	gen := &stubGenerator{report: sampleReport()}
	r := newRouter(gen)

	w := do(t, r, http.MethodPost, "/api/report", reportBody(t, prompt.SampleSubmission))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Sobrepeso", got.ProfileSummary.BMICategory)
	assert.Len(t, got.Charts.WeightComparison, 2)
	assert.Equal(t, []string{prompt.SampleSubmission}, gen.got)
}

func TestHandleReportRejectsEmptyInput(t *testing.T) {
	gen := &stubGenerator{report: sampleReport()}
	r := newRouter(gen)

	for _, body := range []string{reportBody(t, "   \n "), `{}`} {
		w := do(t, r, http.MethodPost, "/api/report", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "input_rejected", resp.Error)
		assert.Equal(t, report.UserMessage(report.ErrInputRejected), resp.Message)
	}
	assert.Empty(t, gen.got, "generator must not be called for empty input")
}

func TestHandleReportMalformedBody(t *testing.T) {
	w := do(t, newRouter(&stubGenerator{}), http.MethodPost, "/api/report", `{"rawData": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestHandleReportFailures(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"transport", &report.Error{Kind: report.KindTransport, Err: fmt.Errorf("dial: refused")}, http.StatusBadGateway, "transport_failure"},
		{"timeout", &report.Error{Kind: report.KindTransport, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, "transport_failure"},
		{"parse", report.ErrParse, http.StatusBadGateway, "parse_failure"},
		{"schema", report.ErrSchema, http.StatusBadGateway, "schema_violation"},
		{"semantic", report.ErrSemantic, http.StatusBadGateway, "semantic_inconsistency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, newRouter(&stubGenerator{err: tc.err}), http.MethodPost, "/api/report", reportBody(t, "x"))
			assert.Equal(t, tc.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.kind, resp.Error)
			assert.Equal(t, report.UserMessage(tc.err), resp.Message)
		})
	}
}

func rpcBody(t *testing.T, method string, parts ...MessagePart) string {
	b, err := json.Marshal(JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      "req-1",
		Method:  method,
		Params: MessageParams{
			Message: A2AMessage{Kind: "message", Role: RoleUser, Parts: parts},
		},
	})
	require.NoError(t, err)
	return string(b)
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) (JSONRPCResponse, TaskResult) {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		JSONRPCResponse
		Result TaskResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.JSONRPCResponse, resp.Result
}

func TestHandleA2ASuccess(t *testing.T) {
	gen := &stubGenerator{report: sampleReport()}
	r := newRouter(gen)

	w := do(t, r, http.MethodPost, "/a2a/report", rpcBody(t, "message/send", TextPart(prompt.SampleSubmission)))
	resp, task := decodeTask(t, w)

	assert.Equal(t, "req-1", resp.ID)
	assert.Nil(t, resp.Error)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.NotEmpty(t, task.ID)
	require.Len(t, task.Artifacts, 2)
	assert.Equal(t, "data", task.Artifacts[0].Parts[0].Kind)
	require.NotNil(t, task.Status.Message.Parts[0].Text)
	assert.Contains(t, *task.Status.Message.Parts[0].Text, "IMC: 29.3 (Sobrepeso)")
	assert.Equal(t, []string{prompt.SampleSubmission}, gen.got)
}

func TestHandleA2AJoinsParts(t *testing.T) {
	gen := &stubGenerator{report: sampleReport()}
	r := newRouter(gen)

	body := rpcBody(t, "agent/task",
		TextPart("10/07/2024 10:30\nJoão da Silva\n"),
		DataPart(map[string]interface{}{"rawData": "35\nMasculino"}),
		TextPart("  "),
	)
	_, task := decodeTask(t, do(t, r, http.MethodPost, "/a2a/report", body))
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, []string{"10/07/2024 10:30\nJoão da Silva\n35\nMasculino"}, gen.got)
}

func TestHandleA2AKeepsLeadingBlankAnswer(t *testing.T) {
	raw := "\nJoão da Silva\n35"

	gen := &stubGenerator{report: sampleReport()}
	r := newRouter(gen)

	_, task := decodeTask(t, do(t, r, http.MethodPost, "/a2a/report", rpcBody(t, "message/send", TextPart(raw+"\n"))))
	assert.Equal(t, StateCompleted, task.Status.State)

	w := do(t, r, http.MethodPost, "/api/report", reportBody(t, raw))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{raw, raw}, gen.got)
}

func TestExtractSubmissionKeepsPositions(t *testing.T) {
	msg := A2AMessage{Parts: []MessagePart{
		TextPart("\n\nMasculino\r\n"),
		DataPart(map[string]interface{}{"rawData": "\n1.80m"}),
	}}
	assert.Equal(t, "\n\nMasculino\n\n1.80m", extractSubmission(msg))
}

func TestHandleA2AFailures(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		gen := &stubGenerator{report: sampleReport()}
		_, task := decodeTask(t, do(t, newRouter(gen), http.MethodPost, "/a2a/report", rpcBody(t, "message/send", TextPart(" "))))
		assert.Equal(t, StateFailed, task.Status.State)
		assert.Equal(t, report.UserMessage(report.ErrInputRejected), *task.Status.Message.Parts[0].Text)
		assert.Empty(t, gen.got)
	})

	t.Run("generation error", func(t *testing.T) {
		gen := &stubGenerator{err: report.ErrSchema}
		_, task := decodeTask(t, do(t, newRouter(gen), http.MethodPost, "/a2a/report", rpcBody(t, "message/send", TextPart("x"))))
		assert.Equal(t, StateFailed, task.Status.State)
		assert.Empty(t, task.Artifacts)
		assert.Equal(t, report.UserMessage(report.ErrSchema), *task.Status.Message.Parts[0].Text)
	})

	t.Run("unknown method", func(t *testing.T) {
		resp, _ := decodeTask(t, do(t, newRouter(&stubGenerator{}), http.MethodPost, "/a2a/report", rpcBody(t, "tasks/cancel")))
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
	})

	t.Run("bad version", func(t *testing.T) {
		body := strings.Replace(rpcBody(t, "message/send", TextPart("x")), `"2.0"`, `"1.0"`, 1)
		resp, _ := decodeTask(t, do(t, newRouter(&stubGenerator{}), http.MethodPost, "/a2a/report", body))
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeInvalidRequest, resp.Error.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		resp, _ := decodeTask(t, do(t, newRouter(&stubGenerator{}), http.MethodPost, "/a2a/report", "not json"))
		require.NotNil(t, resp.Error)
		assert.Equal(t, CodeParseError, resp.Error.Code)
	})
}

func TestHandleA2ADirectMessage(t *testing.T) {
	gen := &stubGenerator{report: sampleReport()}
	b, err := json.Marshal(MessageParams{Message: A2AMessage{Kind: "message", Role: RoleUser, Parts: []MessagePart{TextPart("linha 1")}}})
	require.NoError(t, err)

	resp, task := decodeTask(t, do(t, newRouter(gen), http.MethodPost, "/a2a/report", string(b)))
	assert.Equal(t, "direct-message", resp.ID)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, []string{"linha 1"}, gen.got)
}

func TestFormatReport(t *testing.T) {
	out := formatReport(sampleReport())

	assert.Contains(t, out, "# Plano de 30 dias")
	assert.Contains(t, out, "- Peso atual: 95 kg")
	assert.Contains(t, out, "| Churrasco | Doces |")
	assert.Contains(t, out, "| Massas | - |")
	assert.Contains(t, out, "1. Trocar refrigerante por água\n2. Comer salada")
	assert.Contains(t, out, "- Peso Meta: 80 kg")
	assert.Contains(t, out, "Você consegue!")
	assert.NotContains(t, out, "Avisos")

	r := sampleReport()
	r.Warnings = []string{"categoria divergente"}
	assert.Contains(t, formatReport(r), "**Avisos:**\n- categoria divergente")
}
