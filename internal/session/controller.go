package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/aggregate"
	"nqdsheat/internal/config"
	"nqdsheat/internal/errors"
	"nqdsheat/internal/filter"
	"nqdsheat/internal/store"
	"nqdsheat/ports"
)

// ViewRequest describes one pivoted view to build
type ViewRequest struct {
	Kind       misfit.ViewKind
	Iteration  int
	Mode       misfit.Mode
	Filters    misfit.Selection
	Order      misfit.Order
	Transposed bool
}

// Controller sequences load, aggregate, filter and order for one session.
//
// Loads are exclusive: a second Load while one runs fails with a
// CONCURRENT_LOAD error, and a load waits for in-flight views to finish
// before replacing the store. Views only read the store and may run
// concurrently with each other.
type Controller struct {
	id     string
	cfg    *config.Config
	logger *internal.Logger

	store      *store.IterationStore
	aggregator *aggregate.Engine
	filters    *filter.Engine

	// mu guards the fields below
	mu         sync.Mutex
	state      misfit.SessionState
	loading    bool
	views      int
	generation uint64

	// dataMu serializes store replacement against view reads
	dataMu sync.RWMutex
}

// NewController creates a controller in the Empty state. A nil cfg uses config.Default().
func NewController(cfg *config.Config, logger *internal.Logger) *Controller {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	c := &Controller{
		id:         uuid.New().String(),
		cfg:        cfg,
		logger:     logger,
		store:      store.NewIterationStore(cfg.Data.MaxModels, logger),
		aggregator: aggregate.NewEngine(logger),
		filters:    filter.NewEngine(logger),
		state:      misfit.StateEmpty,
	}
	logger.Info("[SessionController] Session %s initialized without data", c.id)
	return c
}

// ID returns the session identifier used in logs
func (c *Controller) ID() string {
	return c.id
}

// State returns the current state. It reports Loading while a load or view build is in flight.
func (c *Controller) State() misfit.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentStateLocked()
}

func (c *Controller) currentStateLocked() misfit.SessionState {
	if c.loading || c.views > 0 {
		return misfit.StateLoading
	}
	return c.state
}

func (c *Controller) setStateLocked(state misfit.SessionState) {
	c.state = state
	c.logger.Debug("[SessionController] Session %s state updated to: %s", c.id, state)
}

// Load reads every line of source and replaces the session data with it.
// On failure the session is left Empty.
func (c *Controller) Load(source ports.LineSource) error {
	gen, err := c.beginLoad()
	if err != nil {
		return err
	}
	c.logger.Info("[SessionController] Received data from %s. Processing...", source.Name())

	lines, err := source.Lines()
	if err != nil {
		err = errors.Wrapf(err, "reading %s", source.Name())
		c.finishLoad(gen, err)
		return err
	}
	return c.loadLines(gen, lines)
}

// LoadLines replaces the session data with already-read record lines
func (c *Controller) LoadLines(lines []string) error {
	gen, err := c.beginLoad()
	if err != nil {
		return err
	}
	return c.loadLines(gen, lines)
}

func (c *Controller) beginLoad() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		c.logger.Warn("[SessionController] Load rejected: another load is in progress")
		return 0, errors.ConcurrentLoad()
	}
	c.loading = true
	return c.generation, nil
}

func (c *Controller) loadLines(gen uint64, lines []string) error {
	c.dataMu.Lock()
	err := c.store.Load(lines)
	c.dataMu.Unlock()

	c.finishLoad(gen, err)
	return err
}

func (c *Controller) finishLoad(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if err != nil || gen != c.generation {
		// failed, or cleared while loading
		c.dataMu.Lock()
		c.store.Clear()
		c.dataMu.Unlock()
		c.setStateLocked(misfit.StateEmpty)
		return
	}
	c.generation++
	c.setStateLocked(misfit.StateReady)
	c.logger.Info("[SessionController] Data successfully processed (%d records)", c.store.Len())
}

// Clear discards all data and returns the session to Empty
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.dataMu.Lock()
	c.store.Clear()
	c.dataMu.Unlock()
	c.setStateLocked(misfit.StateEmpty)
}

// beginRead registers a reader and takes the data read lock. It fails with
// NOT_READY unless data is loaded and no load is running.
func (c *Controller) beginRead() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading || !c.state.HasData() {
		return 0, errors.NotReady(string(c.currentStateLocked()))
	}
	c.views++
	c.dataMu.RLock()
	return c.generation, nil
}

// endRead releases the read lock and, when kind is set and nothing reset the
// session meanwhile, moves the session into the view-kind state.
func (c *Controller) endRead(gen uint64, kind misfit.ViewKind) {
	c.dataMu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.views--
	if kind != "" && gen == c.generation && c.state.HasData() {
		c.setStateLocked(misfit.StateForView(kind))
	}
}

// Iterations returns the loaded iteration ids in ascending order
func (c *Controller) Iterations() ([]int, error) {
	gen, err := c.beginRead()
	if err != nil {
		return nil, err
	}
	defer c.endRead(gen, "")
	return c.store.Iterations(), nil
}

// DefaultIteration returns the smallest loaded iteration
func (c *Controller) DefaultIteration() (int, error) {
	iterations, err := c.Iterations()
	if err != nil {
		return 0, err
	}
	if len(iterations) == 0 {
		return 0, errors.NoData()
	}
	return iterations[0], nil
}

// Summary returns the distinct wells, attributes and model range of the loaded data
func (c *Controller) Summary() (misfit.IndexSummary, error) {
	gen, err := c.beginRead()
	if err != nil {
		return misfit.IndexSummary{}, err
	}
	defer c.endRead(gen, "")
	return c.store.Summary()
}

// BuildView aggregates one iteration, optionally transposes it, then filters and orders it
func (c *Controller) BuildView(req ViewRequest) (*misfit.Matrix, error) {
	req, err := c.withDefaults(req)
	if err != nil {
		return nil, err
	}

	gen, err := c.beginRead()
	if err != nil {
		c.logger.Warn("[SessionController] BuildView rejected: %v", err)
		return nil, err
	}

	m, err := c.build(req)
	if err != nil {
		c.endRead(gen, "")
		return nil, err
	}
	c.endRead(gen, req.Kind)
	return m, nil
}

// BuildViews builds the same view for several iterations concurrently.
// Results are returned in the order of iterations.
func (c *Controller) BuildViews(ctx context.Context, req ViewRequest, iterations []int) ([]*misfit.Matrix, error) {
	req, err := c.withDefaults(req)
	if err != nil {
		return nil, err
	}

	gen, err := c.beginRead()
	if err != nil {
		return nil, err
	}

	results := make([]*misfit.Matrix, len(iterations))
	g, ctx := errgroup.WithContext(ctx)
	for i, iteration := range iterations {
		i, r := i, req
		r.Iteration = iteration
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := c.build(r)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.endRead(gen, "")
		return nil, err
	}
	c.endRead(gen, req.Kind)
	return results, nil
}

// build runs the view pipeline. Callers hold the data read lock.
func (c *Controller) build(req ViewRequest) (*misfit.Matrix, error) {
	table, err := c.store.Table(req.Iteration)
	if err != nil {
		return nil, err
	}

	m, err := c.aggregator.Aggregate(table, req.Kind, req.Mode)
	if err != nil {
		return nil, err
	}
	if req.Transposed {
		m = c.filters.Transpose(m)
	}
	m, err = c.filters.Filter(m, req.Filters)
	if err != nil {
		return nil, err
	}
	m, err = c.filters.Order(m, req.Order)
	if err != nil {
		return nil, err
	}

	rows, cols := m.Dims()
	c.logger.Info("[SessionController] Built %s view for iteration %d (%dx%d, mode %s, order %s, transposed %t)",
		req.Kind, req.Iteration, rows, cols, req.Mode, req.Order, req.Transposed)
	return m, nil
}

// withDefaults fills unset request fields from configuration
func (c *Controller) withDefaults(req ViewRequest) (ViewRequest, error) {
	var err error
	if req.Kind == "" {
		if req.Kind, err = aggregate.ParseViewKind(c.cfg.View.DefaultKind); err != nil {
			return req, err
		}
	}
	if !req.Kind.Valid() {
		return req, errors.InvalidViewKind(string(req.Kind))
	}
	if req.Mode == "" {
		if req.Mode, err = aggregate.ParseMode(c.cfg.View.DefaultMode); err != nil {
			return req, err
		}
	}
	if req.Order == "" {
		if req.Order, err = filter.ParseOrder(c.cfg.View.DefaultOrder); err != nil {
			return req, err
		}
	}
	return req, nil
}
