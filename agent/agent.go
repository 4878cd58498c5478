package agent

import (
	"sync"
	"time"

	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/backend"
	"github.com/flowgate/flowgate/cluster"
	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/metadata"
	"github.com/flowgate/flowgate/persistence/redis"
	"github.com/flowgate/flowgate/rest"
	"github.com/flowgate/flowgate/service"
)

type Agent struct {
	Config config.Config

	storage           metadata.ProjectStorage
	projectService    metadata.ProjectService
	verifier          auth.Verifier
	cluster           *cluster.Cluster
	forwarder         cluster.Forwarder
	executor          backend.Executor
	orchestrator      *service.RunnerOrchestrator
	submissionService *service.WorkflowSubmissionService
	resolver          *service.ReferenceResolver
	httpServer        *rest.Server

	shutdown     bool
	shutdowns    chan struct{}
	shutdownLock sync.Mutex
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupStorage,
		a.setupCluster,
		a.setupExecutor,
		a.setupServices,
		a.setupHttpServer,
	}
	for _, fn := range setup {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Agent) setupStorage() error {
	switch a.Config.StorageType {
	case config.STORAGE_TYPE_REDIS:
		a.storage = redis.NewRedisProjectStorage(redis.Config{
			Addrs:     a.Config.RedisConfig.Addrs,
			Namespace: a.Config.RedisConfig.Namespace,
		})
	default:
		a.storage = metadata.NewInmemProjectStorage()
	}
	a.storage = metadata.NewCachedProjectStorage(a.storage, 30*time.Second)
	a.projectService = metadata.NewProjectService(a.storage)
	return nil
}

func (a *Agent) setupCluster() error {
	a.cluster = cluster.NewCluster(a.Config.Cluster)
	if err := a.cluster.Start(); err != nil {
		return err
	}
	a.forwarder = cluster.NewLeaderForwarder(a.cluster)
	return nil
}

func (a *Agent) setupExecutor() error {
	switch a.Config.BackendType {
	case config.BACKEND_TYPE_HTTP:
		a.executor = backend.NewHttpExecutor(a.Config.BackendAddr)
	default:
		a.executor = backend.NewInmemExecutor()
	}
	return nil
}

func (a *Agent) setupServices() error {
	a.verifier = auth.OpenVerifier{}
	a.orchestrator = service.NewRunnerOrchestrator(a.executor, a.Config)
	a.submissionService = service.NewWorkflowSubmissionService(a.projectService, a.verifier, a.cluster, a.forwarder, a.orchestrator)
	a.resolver = service.NewReferenceResolver(a.executor, a.verifier)
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.projectService, a.submissionService, a.resolver)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil {
			_ = a.Shutdown()
			panic(err)
		}
	}()
	return nil
}

func (a *Agent) Shutdown() error {
	logger.Info("shutting down server")
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	a.shutdown = true
	close(a.shutdowns)

	shutdown := []func() error{
		a.cluster.Stop,
		a.httpServer.Stop,
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
