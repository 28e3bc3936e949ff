package status

import (
	"log"
	"time"

	"github.com/lixenwraith/drop-puzzle/service"
)

// ServiceName is the hub name dependents declare
const ServiceName = "status"

// Keys written by the status service itself
const (
	KeyUptime = "status.uptime_s"
)

// StatusService owns the process-wide metrics registry
// Audio and network declare it as a dependency and read Registry during Init
type StatusService struct {
	registry *Registry
	started  time.Time
}

// NewService creates a status service with an empty registry
func NewService() *StatusService {
	return &StatusService{registry: NewRegistry()}
}

func (s *StatusService) Name() string           { return ServiceName }
func (s *StatusService) Dependencies() []string { return nil }
func (s *StatusService) Init(args ...any) error { return nil }

// Start stamps the session start for the uptime metric
func (s *StatusService) Start() error {
	s.started = time.Now()
	return nil
}

// Stop records uptime and logs a one-line summary of every metric
func (s *StatusService) Stop() error {
	if s.started.IsZero() {
		return nil
	}
	s.registry.Floats.Get(KeyUptime).Set(time.Since(s.started).Seconds())
	s.started = time.Time{}
	log.Printf("status: %s", s.registry.Summary())
	return nil
}

// Registry returns the metrics registry
func (s *StatusService) Registry() *Registry {
	return s.registry
}

// RegistryFrom finds the *service.Hub among Init args and returns the status
// registry it holds. Without a hub it returns nil so a service can run alone
func RegistryFrom(args ...any) (*Registry, error) {
	for _, a := range args {
		h, ok := a.(*service.Hub)
		if !ok {
			continue
		}
		svc, err := service.Lookup[*StatusService](h, ServiceName)
		if err != nil {
			return nil, err
		}
		return svc.registry, nil
	}
	return nil, nil
}
