package dossier

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/oarkflow/gopool"
	"github.com/oarkflow/log"
	"github.com/oarkflow/xsync"
)

// SourceFunc fetches the records for one dataset. Load calls it once per
// configured dataset, possibly from several goroutines at once.
type SourceFunc func(ctx context.Context, name string, cfg DatasetConfig) ([]Record, error)

// Registry is an explicit handle over the live engines, one per dataset.
// Callers own the registry they build; nothing here lives in package
// state, so two registries with different configs can coexist in one
// process. All methods are safe for concurrent use.
type Registry struct {
	engines xsync.IMap[string, *Engine]
}

func NewRegistry() *Registry {
	return &Registry{engines: xsync.NewMap[string, *Engine]()}
}

// Add registers an engine under its name, replacing any previous engine
// with the same name.
func (r *Registry) Add(eng *Engine) {
	r.engines.Set(eng.Name(), eng)
}

// Get returns the engine for a dataset name.
func (r *Registry) Get(name string) (*Engine, bool) {
	return r.engines.Get(name)
}

// Del removes a dataset's engine.
func (r *Registry) Del(name string) {
	r.engines.Del(name)
}

// Len reports how many engines are registered.
func (r *Registry) Len() int {
	return r.engines.Size()
}

// Names lists the registered dataset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.engines.Size())
	r.engines.ForEach(func(name string, _ *Engine) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Load builds one engine per configured dataset, fetching records through
// source, and returns a registry holding all of them. Datasets build
// concurrently on a small worker pool. Any failure fails the whole load:
// the caller either gets a registry with every configured dataset in it
// or an error, never something half populated.
func Load(ctx context.Context, cfg Config, source SourceFunc) (*Registry, error) {
	reg := NewRegistry()
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	pool, err := gopool.NewPoolSimple(workers, func(job gopool.Job[string], workerID int) error {
		name := job.Payload
		if err := ctx.Err(); err != nil {
			fail(err)
			return err
		}
		start := time.Now()
		dcfg := cfg.Datasets[name]
		records, err := source(ctx, name, dcfg)
		if err != nil {
			err = fmt.Errorf("load dataset %s: %w", name, err)
			fail(err)
			return err
		}
		eng, err := New(name, records, dcfg.Options())
		if err != nil {
			fail(err)
			return err
		}
		reg.Add(eng)
		log.Info().
			Str("dataset", name).
			Int("records", eng.Len()).
			Str("latency", time.Since(start).String()).
			Msg("dataset indexed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.Names() {
		pool.Submit(name)
	}
	pool.StopAndWait()
	if firstErr != nil {
		return nil, firstErr
	}
	return reg, nil
}
