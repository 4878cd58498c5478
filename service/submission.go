package service

import (
	"context"

	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/cluster"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/metadata"
	"github.com/flowgate/flowgate/model"
	"go.uber.org/zap"
)

// WorkflowSubmissionService drives one submission end to end: permission
// checks, leader delegation, normalization and runner orchestration.
type WorkflowSubmissionService struct {
	projects     metadata.ProjectService
	verifier     auth.Verifier
	cluster      *cluster.Cluster
	forwarder    cluster.Forwarder
	orchestrator *RunnerOrchestrator
}

func NewWorkflowSubmissionService(projects metadata.ProjectService, verifier auth.Verifier,
	cl *cluster.Cluster, forwarder cluster.Forwarder, orchestrator *RunnerOrchestrator) *WorkflowSubmissionService {
	return &WorkflowSubmissionService{
		projects:     projects,
		verifier:     verifier,
		cluster:      cl,
		forwarder:    forwarder,
		orchestrator: orchestrator,
	}
}

// Submit accepts a request to execute the named workflow of a project. The
// rawBody is the submission exactly as received, kept for verbatim forwarding
// when the schedule mutation must happen on the leader node.
func (s *WorkflowSubmissionService) Submit(ctx context.Context, projectName string, workflowName string,
	request *model.WorkflowRequest, rawBody []byte, authCtx auth.Context) (*model.WorkflowResponse, error) {
	project, err := s.projects.GetProject(projectName)
	if err != nil {
		return nil, err
	}

	// Three checks before any mutation: create on the run, read on the
	// existing workflow, create on the possibly renamed workflow.
	if err := s.verifier.CheckPermission(ctx, auth.RESOURCE_RUN, project.Name, request.RunName, auth.ACTION_CREATE, authCtx); err != nil {
		return nil, err
	}
	if err := s.verifier.CheckPermission(ctx, auth.RESOURCE_WORKFLOW, project.Name, workflowName, auth.ACTION_READ, authCtx); err != nil {
		return nil, err
	}
	target := workflowName
	if request.Spec != nil && request.Spec.Name != "" {
		target = request.Spec.Name
	}
	if err := s.verifier.CheckPermission(ctx, auth.RESOURCE_WORKFLOW, project.Name, target, auth.ACTION_CREATE, authCtx); err != nil {
		return nil, err
	}

	delegate, err := RequiresDelegation(workflowName, request.Spec, project, s.cluster.Role())
	if err != nil {
		return nil, err
	}
	if delegate {
		logger.Info("forwarding schedule request to leader",
			zap.String("workflow", workflowName),
			zap.String("project", project.Name))
		return s.forwarder.SubmitWorkflow(ctx, project.Name, workflowName, rawBody, authCtx)
	}

	spec, err := NormalizeWorkflow(project, workflowName, request.Spec, request.Arguments)
	if err != nil {
		return nil, err
	}

	logger.Info("starting workflow",
		zap.String("workflow", spec.Name),
		zap.String("project", project.Name))
	return s.orchestrator.Execute(ctx, spec, project, request)
}
