package metadata

import (
	"fmt"

	"github.com/flowgate/flowgate/model"
)

type ProjectService interface {
	GetProject(name string) (*model.Project, error)
	SaveProject(project model.Project) error
	DeleteProject(name string) error
	ValidateProject(project model.Project) error
}

type ProjectServiceImpl struct {
	storage ProjectStorage
}

func NewProjectService(storage ProjectStorage) ProjectService {
	return &ProjectServiceImpl{
		storage: storage,
	}
}

func (s *ProjectServiceImpl) GetProject(name string) (*model.Project, error) {
	return s.storage.GetProject(name)
}

func (s *ProjectServiceImpl) SaveProject(project model.Project) error {
	if err := s.ValidateProject(project); err != nil {
		return err
	}
	return s.storage.SaveProject(project)
}

func (s *ProjectServiceImpl) DeleteProject(name string) error {
	return s.storage.DeleteProject(name)
}

// ValidateProject enforces that every stored workflow carries a name and that
// names are unique within the project.
func (s *ProjectServiceImpl) ValidateProject(project model.Project) error {
	if project.Name == "" {
		return fmt.Errorf("project name is required")
	}
	seen := make(map[string]bool, len(project.Spec.Workflows))
	for _, wf := range project.Spec.Workflows {
		if wf.Name == "" {
			return fmt.Errorf("project %s contains a workflow without a name", project.Name)
		}
		if seen[wf.Name] {
			return fmt.Errorf("project %s contains duplicate workflow %s", project.Name, wf.Name)
		}
		seen[wf.Name] = true
	}
	return nil
}
