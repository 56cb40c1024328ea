package store

import (
	"sort"
	"sync"

	"nqdsheat/adapters/nqds"
	"nqdsheat/domain/misfit"
	"nqdsheat/internal"
	"nqdsheat/internal/errors"
)

// IterationStore holds the records of one loaded file partitioned by iteration.
// Every Load fully replaces the previous contents.
type IterationStore struct {
	mu         sync.RWMutex
	records    []misfit.Record
	iterations map[int][]misfit.Record
	maxModels  int
	logger     *internal.Logger
}

// NewIterationStore creates an empty store. maxModels > 0 stops every load at
// the first record whose model exceeds it.
func NewIterationStore(maxModels int, logger *internal.Logger) *IterationStore {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &IterationStore{
		iterations: make(map[int][]misfit.Record),
		maxModels:  maxModels,
		logger:     logger,
	}
}

// Load parses lines and replaces the store contents with them. A malformed
// line aborts the load and leaves the store empty.
func (s *IterationStore) Load(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()

	records := make([]misfit.Record, 0, len(lines))
	iterations := make(map[int][]misfit.Record)
	for i, line := range lines {
		record, err := nqds.ParseLine(line)
		if err != nil {
			s.logger.Error("[IterationStore] Load aborted at line %d: %v", i+1, err)
			return errors.Wrapf(err, "load aborted at record line %d", i+1)
		}

		if s.maxModels > 0 && record.Model > s.maxModels {
			s.logger.Info("[IterationStore] Model %d exceeds limit %d, stopping after %d records",
				record.Model, s.maxModels, len(records))
			break
		}

		s.logger.Trace("[IterationStore] Line %d: iteration %d, model %d, %s/%s = %g",
			i+1, record.Iteration, record.Model, record.Attribute, record.Well, record.Value)
		records = append(records, record)
		iterations[record.Iteration] = append(iterations[record.Iteration], record)
	}

	s.records = records
	s.iterations = iterations
	s.logger.Info("[IterationStore] Loaded %d records across %d iterations", len(records), len(iterations))
	return nil
}

// Clear discards every record. Calling it on an empty store is a no-op.
func (s *IterationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *IterationStore) clearLocked() {
	s.records = nil
	s.iterations = make(map[int][]misfit.Record)
}

// Len returns the number of records held
func (s *IterationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Iterations returns the loaded iteration ids in ascending order
func (s *IterationStore) Iterations() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.iterations))
	for id := range s.iterations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Table returns a copy of the records of one iteration
func (s *IterationStore) Table(iteration int) (misfit.IterationTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.iterations[iteration]
	if !ok {
		return misfit.IterationTable{}, errors.UnknownIteration(iteration)
	}
	return misfit.IterationTable{
		Iteration: iteration,
		Records:   append([]misfit.Record(nil), records...),
	}, nil
}

// Summary derives distinct wells, attributes and the model range over all records
func (s *IterationStore) Summary() (misfit.IndexSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := misfit.Summarize(s.records)
	if !ok {
		return misfit.IndexSummary{}, errors.NoData()
	}
	return summary, nil
}
