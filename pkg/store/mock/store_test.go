package mock

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

func TestAddSamples(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name          string
		storeType     string
		runID         string
		samples       []models.Sample
		expectedError error
		expectedCount int
	}{
		{
			name:          "nil store",
			storeType:     "nil",
			runID:         "1",
			expectedError: models.ErrNilSink,
		},
		{
			name:          "empty run ID",
			storeType:     "empty",
			runID:         "",
			expectedError: models.ErrEmptyRunID,
		},
		{
			name:          "invalid sample",
			storeType:     "empty",
			runID:         "1",
			samples:       []models.Sample{{Length: 3, SquaredDistance: 4, Weight: 0}},
			expectedError: models.ErrInvalidSample,
		},
		{
			name:          "new run",
			storeType:     "empty",
			runID:         "1",
			samples:       []models.Sample{{Length: 3, SquaredDistance: 4, Weight: 1}},
			expectedCount: 1,
		},
		{
			name:          "existing run",
			storeType:     "one-run",
			runID:         "1",
			samples:       []models.Sample{{Length: 3, SquaredDistance: 4, Weight: 1}},
			expectedCount: 3,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			store := SetupStore(test.storeType)
			err := store.AddSamples(ctx, test.runID, test.samples)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("AddSamples(): expected %v, got %v", test.expectedError, err)
			}

			if count := store.SampleCount(test.runID); count != test.expectedCount {
				t.Errorf("AddSamples(): expected %v samples, got %v", test.expectedCount, count)
			}
		})
	}
}

func TestAddSamplesCopies(t *testing.T) {
	ctx := context.Background()
	store := SetupStore("empty")

	end := lattice.Site{1, 2}
	if err := store.AddSamples(ctx, "1", []models.Sample{{Length: 4, SquaredDistance: 5, Weight: 1, End: end}}); err != nil {
		t.Fatalf("AddSamples(): expected nil, got %v", err)
	}
	end[0] = 100

	samples, _ := store.Samples(ctx, "1")
	if !samples[0].End.Equal(lattice.Site{1, 2}) {
		t.Errorf("AddSamples(): expected the end site to be copied, got %v", samples[0].End)
	}
}

func TestSamples(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name            string
		storeType       string
		runID           string
		expectedError   error
		expectedSamples []models.Sample
	}{
		{
			name:          "nil store",
			storeType:     "nil",
			runID:         "1",
			expectedError: models.ErrNilSink,
		},
		{
			name:          "run not found",
			storeType:     "one-run",
			runID:         "7",
			expectedError: models.ErrRunNotFound,
		},
		{
			name:      "valid",
			storeType: "one-run",
			runID:     "1",
			expectedSamples: []models.Sample{
				{Trial: 0, Length: 3, SquaredDistance: 4, Weight: 1, End: lattice.Site{2, 0}},
				{Trial: 2, Length: 3, SquaredDistance: 2, Weight: 1, End: lattice.Site{1, 1}},
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			store := SetupStore(test.storeType)
			samples, err := store.Samples(ctx, test.runID)
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Samples(): expected %v, got %v", test.expectedError, err)
			}

			if !reflect.DeepEqual(samples, test.expectedSamples) {
				t.Errorf("Samples(): expected %v, got %v", test.expectedSamples, samples)
			}
		})
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	store := SetupStore("one-run")

	if _, err := store.Run(ctx, "2"); !errors.Is(err, models.ErrRunNotFound) {
		t.Fatalf("Run(): expected %v, got %v", models.ErrRunNotFound, err)
	}

	record := models.RunRecord{RunID: "2", Dim: 3, Steps: 12, WalkType: "biased", P: 0.6}
	if err := store.SaveRun(ctx, record); err != nil {
		t.Fatalf("SaveRun(): expected nil, got %v", err)
	}

	got, err := store.Run(ctx, "2")
	if err != nil {
		t.Fatalf("Run(): expected nil, got %v", err)
	}
	if got != record {
		t.Errorf("Run(): expected %v, got %v", record, got)
	}

	// a run with a record but no samples
	samples, err := store.Samples(ctx, "2")
	if err != nil || len(samples) != 0 {
		t.Errorf("Samples(): expected no samples and nil, got %v and %v", samples, err)
	}
}

func TestNewRunID(t *testing.T) {
	ctx := context.Background()
	store := SetupStore("one-run")

	IDs := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ID, err := store.NewRunID(ctx)
			if err != nil {
				t.Errorf("NewRunID(): expected nil, got %v", err)
				return
			}

			mu.Lock()
			IDs[ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(IDs) != 50 {
		t.Errorf("NewRunID(): expected 50 distinct IDs, got %d", len(IDs))
	}

	if IDs["1"] {
		t.Errorf("NewRunID(): expected the existing run ID to be skipped")
	}
}
