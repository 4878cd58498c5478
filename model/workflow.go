package model

const STATUS_RUNNING string = "running"
const STATUS_SCHEDULED string = "scheduled"

// WorkflowSpec is a named workflow definition stored as part of a project.
// Name is non-empty and unique within a project's workflow list.
type WorkflowSpec struct {
	Name       string         `json:"name"`
	Engine     string         `json:"engine,omitempty"`
	Handler    string         `json:"handler,omitempty"`
	Path       string         `json:"path,omitempty"`
	Image      string         `json:"image,omitempty"`
	Schedule   string         `json:"schedule,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Copy returns a deep copy of the spec. Stored project definitions are never
// handed out directly so that a merge cannot alias caller-owned state.
func (s *WorkflowSpec) Copy() *WorkflowSpec {
	cp := *s
	cp.Args = copyMap(s.Args)
	cp.Parameters = copyMap(s.Parameters)
	return &cp
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if m, ok := v.(map[string]any); ok {
			out[k] = copyMap(m)
		} else {
			out[k] = v
		}
	}
	return out
}

// WorkflowRequest is a client submitted envelope, it exists only for the
// duration of one submission.
type WorkflowRequest struct {
	Spec      *WorkflowSpec  `json:"spec,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	RunName   string         `json:"run_name,omitempty"`
	Source    string         `json:"source,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
}

// WorkflowResponse is returned once the runner job is triggered, not once the
// workflow completes. RunId identifies the runner job's own run, the workflow
// run id is discovered later through the reference.
type WorkflowResponse struct {
	Project   string `json:"project"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	RunId     string `json:"run_id,omitempty"`
	Schedule  string `json:"schedule,omitempty"`
	Reference string `json:"reference,omitempty"`
}
