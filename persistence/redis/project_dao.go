package redis

import (
	"context"
	"errors"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/model"
	"github.com/flowgate/flowgate/persistence"
	"github.com/flowgate/flowgate/util"
	rd "github.com/go-redis/redis/v9"
	"go.uber.org/zap"
)

const PROJECT_DEF string = "PROJECT"

type redisProjectStorage struct {
	*baseDao
	projectEncoderDecoder util.EncoderDecoder[model.Project]
}

func NewRedisProjectStorage(conf Config) *redisProjectStorage {
	return &redisProjectStorage{
		baseDao:               newBaseDao(conf),
		projectEncoderDecoder: util.NewJsonEncoderDecoder[model.Project](),
	}
}

func (rps *redisProjectStorage) SaveProject(project model.Project) error {
	key := rps.baseDao.getNamespaceKey(PROJECT_DEF, project.Name)
	ctx := context.Background()
	data, err := rps.projectEncoderDecoder.Encode(project)
	if err != nil {
		return err
	}
	if err := rps.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		logger.Error("error in saving project", zap.String("project", project.Name), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rps *redisProjectStorage) DeleteProject(name string) error {
	key := rps.baseDao.getNamespaceKey(PROJECT_DEF, name)
	ctx := context.Background()
	if err := rps.redisClient.Del(ctx, key).Err(); err != nil {
		logger.Error("error in deleting project", zap.String("project", name), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rps *redisProjectStorage) GetProject(name string) (*model.Project, error) {
	key := rps.baseDao.getNamespaceKey(PROJECT_DEF, name)
	ctx := context.Background()
	val, err := rps.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, api_v1.NotFoundError{Kind: "project", Name: name}
		}
		logger.Error("error in getting project", zap.String("project", name), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rps.projectEncoderDecoder.Decode([]byte(val))
}
