package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type scenario struct {
	ExamName      string   `json:"examName"`
	InstitutionID string   `json:"institutionId"`
	TotalStudents int      `json:"totalStudents"`
	RoomsCount    int      `json:"roomsCount"`
	SeatsPerRoom  int      `json:"seatsPerRoom"`
	InvigilatorID string   `json:"invigilatorId"`
	LookupRollNo  string   `json:"lookupRollNo"`
	ExportFormats []string `json:"exportFormats"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type step struct {
	Name     string
	Err      error
	Duration time.Duration
}

func main() {
	var (
		base         string
		scenarioPath string
		timeout      time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "Seating API base URL")
	flag.StringVar(&scenarioPath, "scenario", "scripts/seating_smoke/scenario.json", "Path to JSON scenario file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	sc, err := loadScenario(scenarioPath)
	if err != nil {
		log.Fatalf("failed to load scenario: %v", err)
	}

	runner := &runner{
		client: &http.Client{Timeout: timeout},
		base:   strings.TrimRight(base, "/"),
	}

	steps := runner.run(sc)
	failed := printReport(steps)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadScenario(path string) (scenario, error) {
	var sc scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := json.Unmarshal(data, &sc); err != nil {
		return sc, err
	}
	if sc.ExamName == "" || sc.InstitutionID == "" {
		return sc, fmt.Errorf("scenario %s must set examName and institutionId", path)
	}
	return sc, nil
}

type runner struct {
	client *http.Client
	base   string
}

func (r *runner) run(sc scenario) []step {
	var steps []step

	draftID, s := r.generate(sc)
	steps = append(steps, s)
	if s.Err != nil {
		return steps
	}

	for roomNo := 1; roomNo <= sc.RoomsCount; roomNo++ {
		steps = append(steps, r.bindInvigilator(draftID, roomNo, sc.InvigilatorID))
	}

	planID, s := r.commit(draftID)
	steps = append(steps, s)
	if s.Err != nil {
		return steps
	}

	if sc.LookupRollNo != "" {
		steps = append(steps, r.seatLookup(planID, sc.LookupRollNo))
	}

	for _, format := range sc.ExportFormats {
		steps = append(steps, r.export(planID, format))
	}

	return steps
}

func (r *runner) generate(sc scenario) (string, step) {
	payload := map[string]interface{}{
		"examName":      sc.ExamName,
		"institutionId": sc.InstitutionID,
		"totalStudents": sc.TotalStudents,
		"roomsCount":    sc.RoomsCount,
		"seatsPerRoom":  sc.SeatsPerRoom,
	}
	var draft struct {
		ID string `json:"id"`
	}
	s := r.call("generate draft", http.MethodPost, "/seating/plans/generate", payload, http.StatusCreated, &draft)
	return draft.ID, s
}

func (r *runner) bindInvigilator(draftID string, roomNo int, invigilatorID string) step {
	path := fmt.Sprintf("/seating/drafts/%s/rooms/%d/invigilator", draftID, roomNo)
	payload := map[string]string{"invigilatorId": invigilatorID}
	return r.call(fmt.Sprintf("bind invigilator room %d", roomNo), http.MethodPut, path, payload, http.StatusOK, nil)
}

func (r *runner) commit(draftID string) (string, step) {
	var plan struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/seating/drafts/%s/commit", draftID)
	s := r.call("commit draft", http.MethodPost, path, nil, http.StatusCreated, &plan)
	return plan.ID, s
}

func (r *runner) seatLookup(planID, rollNo string) step {
	path := fmt.Sprintf("/seating/plans/%s/seat?rollNo=%s", planID, rollNo)
	return r.call("seat lookup "+rollNo, http.MethodGet, path, nil, http.StatusOK, nil)
}

func (r *runner) export(planID, format string) step {
	path := fmt.Sprintf("/seating/plans/%s/exports", planID)
	payload := map[string]string{"format": format}
	var job struct {
		JobID string `json:"jobId"`
	}
	s := r.call("enqueue export "+format, http.MethodPost, path, payload, http.StatusAccepted, &job)
	if s.Err != nil {
		return s
	}
	return r.waitForExport(job.JobID, format)
}

func (r *runner) waitForExport(jobID, format string) step {
	name := "render export " + format
	deadline := time.Now().Add(30 * time.Second)
	start := time.Now()
	for time.Now().Before(deadline) {
		var job struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		s := r.call(name, http.MethodGet, "/seating/export-jobs/"+jobID, nil, http.StatusOK, &job)
		if s.Err != nil {
			return s
		}
		switch job.Status {
		case "DONE":
			return step{Name: name, Duration: time.Since(start)}
		case "FAILED":
			return step{Name: name, Err: fmt.Errorf("export failed: %s", job.Error), Duration: time.Since(start)}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return step{Name: name, Err: fmt.Errorf("export %s not finished in time", jobID), Duration: time.Since(start)}
}

func (r *runner) call(name, method, path string, payload interface{}, wantStatus int, out interface{}) step {
	s := step{Name: name}
	start := time.Now()
	defer func() { s.Duration = time.Since(start) }()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			s.Err = err
			return s
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, r.base+path, body)
	if err != nil {
		s.Err = err
		return s
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		s.Err = err
		return s
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.Err = err
		return s
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			s.Err = fmt.Errorf("invalid response body: %w", err)
			return s
		}
	}

	if resp.StatusCode != wantStatus {
		msg := ""
		if env.Error != nil {
			msg = fmt.Sprintf(" (%s: %s)", env.Error.Code, env.Error.Message)
		}
		s.Err = fmt.Errorf("status %d, want %d%s", resp.StatusCode, wantStatus, msg)
		return s
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			s.Err = fmt.Errorf("decode data: %w", err)
		}
	}
	return s
}

func printReport(steps []step) int {
	fmt.Println("Seating Smoke Report")
	fmt.Println("====================")
	failed := 0
	for _, s := range steps {
		status := "OK"
		if s.Err != nil {
			status = "FAIL"
			failed++
		}
		fmt.Printf("[%s] %s (%s)\n", status, s.Name, s.Duration.Round(time.Millisecond))
		if s.Err != nil {
			fmt.Printf("  Error: %v\n", s.Err)
		}
	}
	fmt.Printf("Steps: %d, Failed: %d\n", len(steps), failed)
	return failed
}
