package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/model"
)

// Forwarder relays a submission to the elected leader node. The original
// request body is sent verbatim and the leader's response is returned
// unchanged, the forwarding node performs no normalization or job creation.
type Forwarder interface {
	SubmitWorkflow(ctx context.Context, project string, name string, body []byte, authCtx auth.Context) (*model.WorkflowResponse, error)
}

type leaderForwarder struct {
	cluster *Cluster
	client  *http.Client
}

var _ Forwarder = new(leaderForwarder)

func NewLeaderForwarder(cluster *Cluster) *leaderForwarder {
	return &leaderForwarder{
		cluster: cluster,
		client:  http.DefaultClient,
	}
}

// relayError carries the leader's failure back to the caller with the
// leader's own status code.
type relayError struct {
	Status  int
	Message string
}

func (e relayError) Error() string {
	return e.Message
}

func (e relayError) HTTPStatus() int {
	return e.Status
}

func (f *leaderForwarder) SubmitWorkflow(ctx context.Context, project string, name string, body []byte, authCtx auth.Context) (*model.WorkflowResponse, error) {
	addr, err := f.cluster.LeaderAddr()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("http://%s/projects/%s/workflows/%s/submit", addr, project, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	authCtx.SetHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		var payload struct {
			Error string `json:"error"`
		}
		message := string(data)
		if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
			message = payload.Error
		}
		return nil, relayError{Status: resp.StatusCode, Message: message}
	}

	var response model.WorkflowResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}
	return &response, nil
}
