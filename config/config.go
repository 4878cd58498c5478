package config

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type BackendType string

const BACKEND_TYPE_HTTP BackendType = "http"
const BACKEND_TYPE_INMEM BackendType = "memory"

// ClusterRole is supplied by deployment configuration and gossiped to peers.
// Leader election itself is external to this service.
type ClusterRole string

const ROLE_LEADER ClusterRole = "leader"
const ROLE_WORKER ClusterRole = "worker"

type Config struct {
	RedisConfig      RedisStorageConfig
	HttpPort         int
	StorageType      StorageType
	BackendType      BackendType
	BackendAddr      string
	DefaultBaseImage string
	RunnerNameFormat string
	Cluster          ClusterConfig
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}

type ClusterConfig struct {
	NodeName       string
	BindAddr       string
	AdvertiseAddr  string
	StartJoinAddrs []string
	Role           ClusterRole
}
