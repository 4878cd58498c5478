package metadata

import (
	"time"

	"github.com/flowgate/flowgate/model"
	c "github.com/patrickmn/go-cache"
)

// cachedProjectStorage fronts another ProjectStorage with a short lived read
// cache. Writes go through and invalidate the cached entry.
type cachedProjectStorage struct {
	storage ProjectStorage
	cache   *c.Cache
}

var _ ProjectStorage = new(cachedProjectStorage)

func NewCachedProjectStorage(storage ProjectStorage, ttl time.Duration) *cachedProjectStorage {
	return &cachedProjectStorage{
		storage: storage,
		cache:   c.New(ttl, 10*time.Minute),
	}
}

func (s *cachedProjectStorage) SaveProject(project model.Project) error {
	if err := s.storage.SaveProject(project); err != nil {
		return err
	}
	s.cache.Delete(project.Name)
	return nil
}

func (s *cachedProjectStorage) DeleteProject(name string) error {
	if err := s.storage.DeleteProject(name); err != nil {
		return err
	}
	s.cache.Delete(name)
	return nil
}

func (s *cachedProjectStorage) GetProject(name string) (*model.Project, error) {
	if cached, found := s.cache.Get(name); found {
		project := cached.(model.Project)
		return &project, nil
	}
	project, err := s.storage.GetProject(name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, *project, c.DefaultExpiration)
	return project, nil
}
