package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vidscribe/vidscribe/pkg/agent"
)

// State describes the runtime at a point in time.
type State struct {
	Status    string    `json:"status"`
	Agents    []string  `json:"agents"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

const (
	statusIdle    = "idle"
	statusRunning = "running"
	statusStopped = "stopped"
)

// Runtime owns the agent goroutines. Agents are added while idle, started
// together, and stopped by cancelling the context passed to Start.
type Runtime struct {
	mu      sync.Mutex
	agents  []agent.Agent
	started time.Time
	status  string
	wg      sync.WaitGroup
	logger  *slog.Logger
}

func New() *Runtime {
	return &Runtime{
		status: statusIdle,
		logger: slog.Default(),
	}
}

// Add registers an agent to be run. It fails once the runtime has started.
func (r *Runtime) Add(agents ...agent.Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == statusRunning {
		return fmt.Errorf("runtime already started")
	}
	r.agents = append(r.agents, agents...)
	return nil
}

// Start launches every registered agent in its own goroutine. The agents run
// until ctx is cancelled.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == statusRunning {
		return fmt.Errorf("runtime already started")
	}
	if len(r.agents) == 0 {
		return fmt.Errorf("no agents registered")
	}

	r.status = statusRunning
	r.started = time.Now()
	for _, a := range r.agents {
		r.wg.Add(1)
		go func(a agent.Agent) {
			defer r.wg.Done()
			a.Run(ctx)
		}(a)
	}
	r.logger.Info("runtime started", "agents", len(r.agents))
	return nil
}

// Wait blocks until every agent goroutine has returned.
func (r *Runtime) Wait() {
	r.wg.Wait()
	r.mu.Lock()
	r.status = statusStopped
	r.mu.Unlock()
	r.logger.Info("runtime stopped")
}

// GetState reports the current status and the registered agent IDs.
func (r *Runtime) GetState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.agents))
	for _, a := range r.agents {
		ids = append(ids, a.ID())
	}
	return State{
		Status:    r.status,
		Agents:    ids,
		StartedAt: r.started,
	}
}
