package cluster

import (
	"fmt"
	"sync"

	"github.com/flowgate/flowgate/config"
	"github.com/flowgate/flowgate/logger"
	"go.uber.org/zap"
)

type Node struct {
	Name     string
	HttpAddr string
	Role     config.ClusterRole
}

// Cluster tracks the nodes gossiped through serf membership and answers who
// the elected leader is. The role of each node comes from its deployment
// configuration, this service never runs an election itself.
type Cluster struct {
	mu         sync.RWMutex
	conf       config.ClusterConfig
	nodes      map[string]Node
	membership *Membership
}

var _ Handler = new(Cluster)

func NewCluster(conf config.ClusterConfig) *Cluster {
	return &Cluster{
		conf:  conf,
		nodes: make(map[string]Node),
	}
}

func (c *Cluster) Start() error {
	membership, err := NewMembership(c, MembershipConfig{
		NodeName: c.conf.NodeName,
		BindAddr: c.conf.BindAddr,
		Tags: map[string]string{
			"http_addr": c.conf.AdvertiseAddr,
			"role":      string(c.conf.Role),
		},
		StartJoinAddrs: c.conf.StartJoinAddrs,
	})
	if err != nil {
		return err
	}
	c.membership = membership
	return nil
}

func (c *Cluster) Stop() error {
	if c.membership == nil {
		return nil
	}
	return c.membership.Leave()
}

func (c *Cluster) Join(name string, httpAddr string, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logger.Info("node joined cluster", zap.String("name", name), zap.String("role", role))
	c.nodes[name] = Node{
		Name:     name,
		HttpAddr: httpAddr,
		Role:     config.ClusterRole(role),
	}
	return nil
}

func (c *Cluster) Leave(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logger.Info("node left cluster", zap.String("name", name))
	delete(c.nodes, name)
	return nil
}

func (c *Cluster) Role() config.ClusterRole {
	return c.conf.Role
}

// LeaderAddr returns the advertised HTTP address of the elected leader node.
func (c *Cluster) LeaderAddr() (string, error) {
	if c.conf.Role == config.ROLE_LEADER {
		return c.conf.AdvertiseAddr, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, node := range c.nodes {
		if node.Role == config.ROLE_LEADER {
			return node.HttpAddr, nil
		}
	}
	return "", fmt.Errorf("no leader node in cluster")
}
