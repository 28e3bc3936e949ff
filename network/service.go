package network

import (
	"errors"
	"sync/atomic"

	"github.com/lixenwraith/drop-puzzle/board"
	"github.com/lixenwraith/drop-puzzle/status"
)

// Service wraps Server as a hub-managed service
type Service struct {
	config *Config
	server *Server

	disabled atomic.Bool
}

// NewService creates a network service (disabled by default)
func NewService() *Service {
	return &Service{
		config: DefaultConfig(),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
// Peer and drop counters live in the status registry
func (s *Service) Dependencies() []string {
	return []string{status.ServiceName}
}

// Init implements service.Service
// Picks *Config, Loop and *board.Board from args by type; the registry comes
// from the status service when a hub is among the args
func (s *Service) Init(args ...any) error {
	metrics, err := status.RegistryFrom(args...)
	if err != nil {
		return err
	}

	var (
		loop Loop
		b    *board.Board
	)
	for _, a := range args {
		switch v := a.(type) {
		case *Config:
			if v != nil {
				s.config = v
			}
		case *board.Board:
			b = v
		case Loop:
			loop = v
		}
	}

	if s.config.Address == "" {
		s.disabled.Store(true)
		return nil
	}
	if loop == nil || b == nil {
		return errors.New("network: loop and board are required")
	}

	s.server = NewServer(s.config, loop, b, metrics)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.server == nil {
		return nil
	}
	return s.server.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.server != nil {
		return s.server.Stop()
	}
	return nil
}

// IsDisabled returns true when no address is configured
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Server returns the server, nil when disabled
// Register it with the loop to mirror board events to clients
func (s *Service) Server() *Server {
	return s.server
}
