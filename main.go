package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flowgate/flowgate/agent"
	"github.com/flowgate/flowgate/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}

type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "flowgate", "namespace used in storage")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "redis", "implementation of underline storage")
	cmd.Flags().String("backend-impl", "http", "implementation of execution backend client")
	cmd.Flags().String("backend-addr", "http://localhost:8090", "base url of execution backend")
	cmd.Flags().String("default-image", "flowgate/runner:latest", "default image for workflow runner jobs")
	cmd.Flags().String("runner-name-format", "workflow-runner-%s", "name format of workflow runner jobs")
	cmd.Flags().String("node-name", "", "unique node name in the cluster")
	cmd.Flags().String("bind-addr", "127.0.0.1:8401", "serf bind addr host:port")
	cmd.Flags().String("advertise-addr", "127.0.0.1:8080", "http addr advertised to cluster peers")
	cmd.Flags().String("join-addrs", "", "comma separated serf addresses of existing cluster nodes")
	cmd.Flags().String("role", "leader", "cluster role of this node, leader or worker")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.BackendType = config.BackendType(viper.GetString("backend-impl"))
	c.cfg.BackendAddr = viper.GetString("backend-addr")
	c.cfg.DefaultBaseImage = viper.GetString("default-image")
	c.cfg.RunnerNameFormat = viper.GetString("runner-name-format")
	c.cfg.Cluster.NodeName = viper.GetString("node-name")
	if c.cfg.Cluster.NodeName == "" {
		c.cfg.Cluster.NodeName, _ = os.Hostname()
	}
	c.cfg.Cluster.BindAddr = viper.GetString("bind-addr")
	c.cfg.Cluster.AdvertiseAddr = viper.GetString("advertise-addr")
	if joinAddrs := viper.GetString("join-addrs"); joinAddrs != "" {
		c.cfg.Cluster.StartJoinAddrs = strings.Split(joinAddrs, ",")
	}
	c.cfg.Cluster.Role = config.ClusterRole(viper.GetString("role"))
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "flowgate",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
