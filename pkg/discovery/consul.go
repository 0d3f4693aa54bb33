package discovery

import (
	"fmt"
	"log"

	"github.com/hashicorp/consul/api"
)

// ServiceInfo describes how this instance registers with Consul.
type ServiceInfo struct {
	Name          string
	Address       string
	Port          int
	ConsulAddress string
}

type ServiceRegistry struct {
	client *api.Client
	info   ServiceInfo
}

func NewServiceRegistry(info ServiceInfo) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = info.ConsulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{client: client, info: info}, nil
}

func (sr *ServiceRegistry) serviceID() string {
	return fmt.Sprintf("%s-%s-http", sr.info.Name, sr.info.Address)
}

func (sr *ServiceRegistry) Register() error {
	registration := &api.AgentServiceRegistration{
		ID:      sr.serviceID(),
		Name:    sr.info.Name,
		Port:    sr.info.Port,
		Address: sr.info.Address,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", sr.info.Address, sr.info.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"practice", "scheduler", "http", "api"},
		Meta: map[string]string{
			"protocol": "http",
			"version":  "1.0",
		},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with Consul: %v", err)
	}

	log.Printf("Registered service %s with Consul at %s:%d", sr.info.Name, sr.info.Address, sr.info.Port)
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	if err := sr.client.Agent().ServiceDeregister(sr.serviceID()); err != nil {
		log.Printf("Error deregistering service: %v", err)
		return err
	}
	log.Printf("Deregistered service %s from Consul", sr.info.Name)
	return nil
}

// HealthCheck verifies both the Consul connection and our registration.
func (sr *ServiceRegistry) HealthCheck() error {
	if _, err := sr.client.Status().Leader(); err != nil {
		return fmt.Errorf("consul connection failed: %v", err)
	}

	services, err := sr.client.Agent().Services()
	if err != nil {
		return fmt.Errorf("failed to get services: %v", err)
	}
	if _, exists := services[sr.serviceID()]; !exists {
		return fmt.Errorf("service %s not registered", sr.serviceID())
	}
	return nil
}
