package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/nutrigen-agent/internal/a2a"
	"github.com/BerylCAtieno/nutrigen-agent/internal/models"
	"github.com/BerylCAtieno/nutrigen-agent/internal/prompt"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (tc *TestClient) runAllTests() bool {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Empty Input", tc.testEmptyInput},
		{"REST Report", tc.testReport},
		{"A2A Report", tc.testA2AReport},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	return failed == 0
}

func (tc *TestClient) get(path string) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	url := tc.baseURL + path
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.get("/.well-known/agent.json")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testEmptyInput() bool {
	printTestHeader("Testing Empty Submission")

	status, body, err := tc.post(context.Background(), "/api/report", a2a.ReportRequest{RawData: "  \n "})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	var resp a2a.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error != "input_rejected" {
		printError(fmt.Sprintf("Expected input_rejected, got %s", string(body)))
		return false
	}

	printSuccess("Empty submission rejected: " + resp.Message)
	return true
}

func (tc *TestClient) testReport() bool {
	return tc.testCustomReport(prompt.SampleSubmission)
}

func (tc *TestClient) testCustomReport(raw string) bool {
	printTestHeader("Testing REST Report Generation")
	fmt.Printf("POST %s/api/report\n", tc.baseURL)

	r, err := tc.generate(context.Background(), raw)
	if err != nil {
		printError(err.Error())
		return false
	}

	ps := r.ProfileSummary
	printSuccess("Report generated")
	fmt.Printf("%sProfile:%s %s, %d anos, IMC %.1f (%s)\n", colorCyan, colorReset, ps.Name, ps.Age, ps.BMI, ps.BMICategory)
	for _, p := range r.Charts.WeightComparison {
		fmt.Printf("  %s: %v kg\n", p.Name, p.Value)
	}
	for _, w := range r.Warnings {
		fmt.Printf("%sWarning:%s %s\n", colorYellow, colorReset, w)
	}

	data, _ := json.Marshal(r)
	printJSON(data)
	return true
}

func (tc *TestClient) generate(ctx context.Context, raw string) (*models.Report, error) {
	status, body, err := tc.post(ctx, "/api/report", a2a.ReportRequest{RawData: raw})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if status != http.StatusOK {
		var resp a2a.ErrorResponse
		_ = json.Unmarshal(body, &resp)
		return nil, fmt.Errorf("expected status 200, got %d (%s: %s)", status, resp.Error, resp.Message)
	}

	var r models.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("invalid report JSON: %w", err)
	}
	return &r, nil
}

func (tc *TestClient) testA2AReport() bool {
	printTestHeader("Testing A2A Report Generation")

	url := fmt.Sprintf("%s/a2a/report", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	request := a2a.JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      fmt.Sprintf("test-%d", time.Now().Unix()),
		Method:  "message/send",
		Params: a2a.MessageParams{
			Message: a2a.A2AMessage{
				Kind:  "message",
				Role:  a2a.RoleUser,
				Parts: []a2a.MessagePart{a2a.TextPart(prompt.SampleSubmission)},
			},
			Configuration: a2a.MessageConfiguration{
				Blocking:            true,
				AcceptedOutputModes: []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.post(context.Background(), "/a2a/report", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response struct {
		Error  *a2a.JSONRPCError `json:"error"`
		Result a2a.TaskResult    `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if response.Error != nil {
		printError(fmt.Sprintf("Request returned an error: %d %s", response.Error.Code, response.Error.Message))
		return false
	}

	result := response.Result
	if result.Status.State != a2a.StateCompleted {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", result.Status.State))
		if msg := result.Status.Message; msg != nil {
			printMessage(msg)
		}
		return false
	}

	printSuccess("A2A report completed successfully")
	if msg := result.Status.Message; msg != nil {
		fmt.Printf("\n%sGenerated Report:%s\n", colorGreen, colorReset)
		printMessage(msg)
	}
	fmt.Printf("\n%sArtifacts:%s %d\n", colorPurple, colorReset, len(result.Artifacts))
	return true
}

// testConcurrent sends n submissions with distinct names at once and checks
// each report carries the name it was sent.
func (tc *TestClient) testConcurrent(n int) bool {
	printTestHeader(fmt.Sprintf("Testing %d Concurrent Reports", n))

	names := make([]string, n)
	got := make([]string, n)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		names[i] = fmt.Sprintf("Pessoa Teste %d", i+1)
		lines := strings.Split(prompt.SampleSubmission, "\n")
		lines[prompt.QName] = names[i]

		g.Go(func() error {
			r, err := tc.generate(ctx, strings.Join(lines, "\n"))
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			got[i] = r.ProfileSummary.Name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		printError(err.Error())
		return false
	}

	ok := true
	for i := range names {
		if got[i] != names[i] {
			printError(fmt.Sprintf("Report %d: expected name %q, got %q", i+1, names[i], got[i]))
			ok = false
		}
	}
	if ok {
		printSuccess("Every report matched its own submission")
	}
	return ok
}
