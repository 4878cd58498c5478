package metadata

import (
	"sync"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/model"
)

type inmemProjectStorage struct {
	mu       sync.RWMutex
	projects map[string]model.Project
}

var _ ProjectStorage = new(inmemProjectStorage)

func NewInmemProjectStorage() *inmemProjectStorage {
	return &inmemProjectStorage{
		projects: make(map[string]model.Project),
	}
}

func (s *inmemProjectStorage) SaveProject(project model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.Name] = project
	return nil
}

func (s *inmemProjectStorage) DeleteProject(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, name)
	return nil
}

func (s *inmemProjectStorage) GetProject(name string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[name]
	if !ok {
		return nil, api_v1.NotFoundError{Kind: "project", Name: name}
	}
	return &project, nil
}
