package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/model"
)

// HttpExecutor talks to the execution backend over its HTTP API. It performs
// at most one round trip per call and holds no locks.
type HttpExecutor struct {
	baseUrl string
	client  *http.Client
}

var _ Executor = new(HttpExecutor)

func NewHttpExecutor(baseUrl string) *HttpExecutor {
	return &HttpExecutor{
		baseUrl: baseUrl,
		client:  http.DefaultClient,
	}
}

func (e *HttpExecutor) CreateOrGetRunnerJob(ctx context.Context, project string, name string, image string) (*model.RunnerJob, error) {
	runner := model.RunnerJob{
		Project: project,
		Name:    name,
		Image:   image,
		Kind:    model.RUNNER_JOB_KIND,
	}
	var created model.RunnerJob
	url := fmt.Sprintf("%s/functions", e.baseUrl)
	if err := e.post(ctx, url, runner, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *HttpExecutor) TriggerRun(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) (string, error) {
	var res struct {
		UID string `json:"uid"`
	}
	url := fmt.Sprintf("%s/functions/%s/%s/run", e.baseUrl, runner.Project, runner.Name)
	if err := e.post(ctx, url, payload, &res); err != nil {
		return "", err
	}
	return res.UID, nil
}

func (e *HttpExecutor) RegisterSchedule(ctx context.Context, runner *model.RunnerJob, payload *model.WorkflowRequest) error {
	url := fmt.Sprintf("%s/functions/%s/%s/schedule", e.baseUrl, runner.Project, runner.Name)
	return e.post(ctx, url, payload, nil)
}

func (e *HttpExecutor) GetRunRecord(ctx context.Context, project string, uid string) (*model.RunRecord, error) {
	url := fmt.Sprintf("%s/runs/%s/%s", e.baseUrl, project, uid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, api_v1.NotFoundError{Kind: "run", Name: uid}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("execution backend returned status %d", resp.StatusCode)
	}
	var record model.RunRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (e *HttpExecutor) post(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("execution backend returned status %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
