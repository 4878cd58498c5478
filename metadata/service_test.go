package metadata

import (
	"testing"

	"github.com/flowgate/flowgate/model"
	"github.com/stretchr/testify/require"
)

func TestValidateProject(t *testing.T) {
	projects := NewProjectService(NewInmemProjectStorage())

	require.NoError(t, projects.SaveProject(model.Project{
		Name: "demo",
		Spec: model.ProjectSpec{
			Workflows: []model.WorkflowSpec{{Name: "wf1"}, {Name: "wf2"}},
		},
	}))

	require.Error(t, projects.SaveProject(model.Project{}))

	require.Error(t, projects.SaveProject(model.Project{
		Name: "demo",
		Spec: model.ProjectSpec{
			Workflows: []model.WorkflowSpec{{Name: ""}},
		},
	}))

	require.Error(t, projects.SaveProject(model.Project{
		Name: "demo",
		Spec: model.ProjectSpec{
			Workflows: []model.WorkflowSpec{{Name: "wf1"}, {Name: "wf1"}},
		},
	}))
}
