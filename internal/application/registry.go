package application

import (
	"fmt"
	"sync"

	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// Registry holds the gateways known to the process. It is built once at
// startup and handed to the services that need it.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
	names    []string
}

func NewRegistry(gateways ...Gateway) (*Registry, error) {
	r := &Registry{gateways: make(map[string]Gateway)}
	for _, g := range gateways {
		if err := r.Register(g); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(g Gateway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := g.Name()
	if name == "" {
		return fmt.Errorf("gateway name is required")
	}
	if _, exists := r.gateways[name]; exists {
		return fmt.Errorf("gateway %q already registered", name)
	}
	r.gateways[name] = g
	r.names = append(r.names, name)
	return nil
}

func (r *Registry) Get(name string) (Gateway, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gateways[name]
	return g, ok
}

// Enabled lists enabled gateways in registration order.
func (r *Registry) Enabled() []Gateway {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Gateway
	for _, name := range r.names {
		if g := r.gateways[name]; g.IsEnabled() {
			out = append(out, g)
		}
	}
	return out
}

// AvailableFor lists the gateways a buyer can use for course right now.
func (r *Registry) AvailableFor(course *domain.Course) []Gateway {
	var out []Gateway
	for _, g := range r.Enabled() {
		if g.ValidateSettings() != nil {
			continue
		}
		if course.AllowsGateway(g.Name()) {
			out = append(out, g)
		}
	}
	return out
}
