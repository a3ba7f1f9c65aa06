package discovery

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hashicorp/consul/api"

	"progress-service/internal/config"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

// InitServiceDiscovery registers the service with Consul. It is optional:
// with no CONSUL_ADDR configured the service runs unregistered.
func InitServiceDiscovery(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.ConsulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	sr := &ServiceRegistry{client: client, config: cfg}
	if err := sr.Register(); err != nil {
		return nil, fmt.Errorf("failed to register service: %v", err)
	}
	log.Println("Service Discovery initialized successfully")
	return sr, nil
}

func (sr *ServiceRegistry) Register() error {
	httpPort, err := strconv.Atoi(sr.config.Port)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %v", err)
	}

	serviceID := fmt.Sprintf("%s-%s", sr.config.ServiceName, sr.config.ServiceAddress)

	registration := &api.AgentServiceRegistration{
		ID:      serviceID + "-http",
		Name:    sr.config.ServiceName,
		Port:    httpPort,
		Address: sr.config.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.ServiceAddress, sr.config.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"progress", "achievements", "http", "api"},
		Meta: map[string]string{
			"protocol": "http",
			"version":  "1.0",
		},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %v", err)
	}

	log.Printf("Successfully registered service %s with Consul at %s:%d",
		sr.config.ServiceName, sr.config.ServiceAddress, httpPort)
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	serviceID := fmt.Sprintf("%s-%s", sr.config.ServiceName, sr.config.ServiceAddress)

	if err := sr.client.Agent().ServiceDeregister(serviceID + "-http"); err != nil {
		log.Printf("Error deregistering HTTP service: %v", err)
		return err
	}

	log.Printf("Successfully deregistered service %s from Consul", sr.config.ServiceName)
	return nil
}
