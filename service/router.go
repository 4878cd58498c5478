package service

import (
	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/model"
)

// RequiresDelegation decides whether this submission must be forwarded to the
// elected leader. Schedule registration is single-writer: only the leader may
// create schedules, any node may accept the request. The decision is taken on
// the raw input, before normalization.
func RequiresDelegation(name string, override *model.WorkflowSpec, project *model.Project, role config.ClusterRole) (bool, error) {
	requested, err := isScheduleRequested(name, override, project)
	if err != nil {
		return false, err
	}
	return requested && role != config.ROLE_LEADER, nil
}

// isScheduleRequested checks the override spec when one is present, otherwise
// falls back to the project's stored definition for the name.
func isScheduleRequested(name string, override *model.WorkflowSpec, project *model.Project) (bool, error) {
	if override != nil {
		return override.Schedule != "", nil
	}
	stored := project.GetWorkflow(name)
	if stored == nil {
		return false, api_v1.NotFoundError{Kind: "workflow", Name: name}
	}
	return stored.Schedule != "", nil
}
