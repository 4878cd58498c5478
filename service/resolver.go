package service

import (
	"context"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/backend"
	"github.com/flowgate/flowgate/ref"
	"github.com/oliveagle/jsonpath"
)

const ENGINE_REMOTE string = "remote"

const workflowIdPath string = "$.workflow_id"

type ResolutionState string

const RESOLUTION_PENDING ResolutionState = "pending"
const RESOLUTION_RESOLVED ResolutionState = "resolved"

// Resolution is the explicit two state result of a reference lookup. A run
// that has not yet reported its workflow id is pending, not missing.
type Resolution struct {
	State      ResolutionState
	WorkflowId string
}

// ReferenceResolver recovers the workflow run id behind a reference token.
// The immediate run path only returns the runner job's own run uid, the true
// workflow id becomes known once the runner starts the engine run and writes
// it into its run record outputs. Callers poll until then.
type ReferenceResolver struct {
	executor backend.Executor
	verifier auth.Verifier
}

func NewReferenceResolver(executor backend.Executor, verifier auth.Verifier) *ReferenceResolver {
	return &ReferenceResolver{
		executor: executor,
		verifier: verifier,
	}
}

func (r *ReferenceResolver) Resolve(ctx context.Context, project string, workflowName string, reference string, engine string, authCtx auth.Context) (*Resolution, error) {
	kind, uid, err := ref.Decode(reference)
	if err != nil {
		return nil, err
	}
	if kind != ref.KIND_RUN {
		return nil, api_v1.BadReferenceError{Reference: reference}
	}

	if err := r.verifier.CheckPermission(ctx, auth.RESOURCE_RUN, project, uid, auth.ACTION_READ, authCtx); err != nil {
		return nil, err
	}
	if err := r.verifier.CheckPermission(ctx, auth.RESOURCE_WORKFLOW, project, workflowName, auth.ACTION_READ, authCtx); err != nil {
		return nil, err
	}

	// Only runs driven by the out of process engine report their workflow id
	// through the run record.
	if engine != ENGINE_REMOTE {
		return nil, api_v1.UnsupportedEngineError{Engine: engine}
	}

	record, err := r.executor.GetRunRecord(ctx, project, uid)
	if err != nil {
		return nil, err
	}
	if len(record.Outputs) == 0 {
		return &Resolution{State: RESOLUTION_PENDING}, nil
	}
	value, err := jsonpath.JsonPathLookup(record.Outputs, workflowIdPath)
	if err != nil || value == nil {
		return &Resolution{State: RESOLUTION_PENDING}, nil
	}
	workflowId, ok := value.(string)
	if !ok || workflowId == "" {
		return &Resolution{State: RESOLUTION_PENDING}, nil
	}
	return &Resolution{State: RESOLUTION_RESOLVED, WorkflowId: workflowId}, nil
}
