package model

const RUNNER_JOB_KIND string = "runner"

// RunnerJob is the auxiliary execution backend job that loads a project and
// starts a workflow engine run. It is owned and persisted by the backend,
// this service only requests its creation and reads its identity back.
type RunnerJob struct {
	Project string `json:"project"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Kind    string `json:"kind"`
}

type RunRecord struct {
	UID     string         `json:"uid"`
	Status  string         `json:"status"`
	Outputs map[string]any `json:"outputs,omitempty"`
}
