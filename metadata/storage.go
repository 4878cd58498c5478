package metadata

import "github.com/flowgate/flowgate/model"

// ProjectStorage holds project metadata, including each project's stored
// workflow definitions. The submission path only ever reads it.
type ProjectStorage interface {
	SaveProject(project model.Project) error
	DeleteProject(name string) error
	GetProject(name string) (*model.Project, error)
}
