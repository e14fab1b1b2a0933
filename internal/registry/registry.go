package registry

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/retry"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// Registry manages the export sinks a run writes its season to
type Registry struct {
	sinks map[string]contracts.Sink
	order []string
}

// New creates an empty sink registry
func New() *Registry {
	return &Registry{
		sinks: make(map[string]contracts.Sink),
	}
}

// Register adds a sink; registering a name twice replaces the earlier sink
// but keeps its position
func (r *Registry) Register(sink contracts.Sink) {
	name := sink.Name()
	if _, exists := r.sinks[name]; !exists {
		r.order = append(r.order, name)
	}
	r.sinks[name] = sink
}

// GetSink retrieves a sink by name
func (r *Registry) GetSink(name string) (contracts.Sink, error) {
	sink, ok := r.sinks[name]
	if !ok {
		return nil, fmt.Errorf("sink not found: %s", name)
	}
	return sink, nil
}

// EnabledSinks returns enabled sinks in registration order
func (r *Registry) EnabledSinks() []contracts.Sink {
	var enabled []contracts.Sink
	for _, name := range r.order {
		if s := r.sinks[name]; s.IsEnabled() {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// AllSinkNames returns every registered sink name in registration order
func (r *Registry) AllSinkNames() []string {
	return append([]string(nil), r.order...)
}

// ExportAll writes snapshot to every enabled sink under policy. A failing
// sink does not stop the others; all failures are joined.
func (r *Registry) ExportAll(ctx context.Context, snapshot *models.SeasonSnapshot, policy *retry.Policy) error {
	var errs []error

	for _, sink := range r.EnabledSinks() {
		name := sink.Name()
		log.Printf("[%s] Exporting %d players (up to %d attempts)", name, len(snapshot.Players), policy.MaxAttempts())
		err := policy.Execute(ctx, func(ctx context.Context) error {
			return sink.Export(ctx, snapshot)
		})
		if err != nil {
			log.Printf("[%s] Export failed: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		log.Printf("[%s] Exported %d players (run %s)", name, len(snapshot.Players), snapshot.RunID)
	}

	return errors.Join(errs...)
}
