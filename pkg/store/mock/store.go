// The package mock implements an in-memory SampleStore, used by default and in tests.
package mock

import (
	"context"
	"strconv"
	"sync"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

// the in-memory version of the SampleStore interface.
type SampleStore struct {
	mu sync.RWMutex

	// Associates a runID to the samples of the run, in insertion order.
	SampleIndex map[string][]models.Sample

	// Associates a runID to the record of the run.
	RunIndex map[string]models.RunRecord

	// the last run ID handed out by NewRunID()
	lastID int
}

// NewSampleStore() returns an empty in-memory SampleStore.
func NewSampleStore() *SampleStore {
	return &SampleStore{
		SampleIndex: make(map[string][]models.Sample),
		RunIndex:    make(map[string]models.RunRecord),
	}
}

// NewRunID() returns a new run ID, unique within the store.
func (s *SampleStore) NewRunID(ctx context.Context) (string, error) {
	if s == nil {
		return "", models.ErrNilSink
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	return strconv.Itoa(s.lastID), nil
}

// AddSamples() appends the samples to the run. Samples are copied.
func (s *SampleStore) AddSamples(ctx context.Context, runID string, samples []models.Sample) error {
	if s == nil {
		return models.ErrNilSink
	}

	if runID == "" {
		return models.ErrEmptyRunID
	}

	for _, sample := range samples {
		if err := sample.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sample := range samples {
		sample.End = sample.End.Clone()
		s.SampleIndex[runID] = append(s.SampleIndex[runID], sample)
	}
	return nil
}

// SaveRun() stores the record, overwriting any previous record of the same run.
func (s *SampleStore) SaveRun(ctx context.Context, record models.RunRecord) error {
	if s == nil {
		return models.ErrNilSink
	}

	if record.RunID == "" {
		return models.ErrEmptyRunID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.RunIndex[record.RunID] = record
	return nil
}

// Samples() returns a copy of the samples of the run.
func (s *SampleStore) Samples(ctx context.Context, runID string) ([]models.Sample, error) {
	if s == nil {
		return nil, models.ErrNilSink
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	samples, exist := s.SampleIndex[runID]
	if !exist {
		if _, exist := s.RunIndex[runID]; !exist {
			return nil, models.ErrRunNotFound
		}
		return []models.Sample{}, nil
	}

	return append([]models.Sample{}, samples...), nil
}

// Run() returns the record of the run.
func (s *SampleStore) Run(ctx context.Context, runID string) (models.RunRecord, error) {
	if s == nil {
		return models.RunRecord{}, models.ErrNilSink
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exist := s.RunIndex[runID]
	if !exist {
		return models.RunRecord{}, models.ErrRunNotFound
	}
	return record, nil
}

// SampleCount() returns the number of samples of the run (ignores errors).
func (s *SampleStore) SampleCount(runID string) int {
	if s == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.SampleIndex[runID])
}

// ------------------------------------HELPERS----------------------------------

// function that returns a SampleStore setup based on the storeType.
func SetupStore(storeType string) *SampleStore {
	switch storeType {
	case "nil":
		return nil

	case "empty":
		return NewSampleStore()

	case "one-run":
		store := NewSampleStore()
		store.SampleIndex["1"] = []models.Sample{
			{Trial: 0, Length: 3, SquaredDistance: 4, Weight: 1, End: lattice.Site{2, 0}},
			{Trial: 2, Length: 3, SquaredDistance: 2, Weight: 1, End: lattice.Site{1, 1}},
		}
		store.RunIndex["1"] = models.RunRecord{RunID: "1", Dim: 2, Steps: 3, WalkType: "saw", Trials: 2}
		store.lastID = 1
		return store

	default:
		return nil // Default to nil for unrecognized scenarios
	}
}
