// The package redistore implements a SampleStore backed by Redis.
package redistore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/utils/redisutils"
)

/*
SampleStore fullfills the SampleStore interface defined in models.

Each run is stored as:
  - a hash "run:<runID>" with the fields of the models.RunRecord
  - a list "run:<runID>:samples" with one formatted sample per element

Run IDs are handed out by INCR on "runs:lastID".
*/
type SampleStore struct {
	client *redis.Client
}

// NewSampleStore() returns a SampleStore using the provided Redis client.
func NewSampleStore(cl *redis.Client) (*SampleStore, error) {
	if cl == nil {
		return nil, ErrNilClient
	}
	return &SampleStore{client: cl}, nil
}

// NewRunID() returns a new run ID, unique for the Redis database.
func (s *SampleStore) NewRunID(ctx context.Context) (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}

	ID, err := s.client.Incr(ctx, redisutils.KeyLastRunID()).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment %s: %w", redisutils.KeyLastRunID(), err)
	}
	return strconv.FormatInt(ID, 10), nil
}

// AddSamples() appends the samples to the list of the run in a single RPUSH.
func (s *SampleStore) AddSamples(ctx context.Context, runID string, samples []models.Sample) error {
	if err := s.validate(); err != nil {
		return err
	}

	if runID == "" {
		return models.ErrEmptyRunID
	}

	if len(samples) == 0 {
		return nil
	}

	strSamples := make([]interface{}, len(samples))
	for i, sample := range samples {
		if err := sample.Validate(); err != nil {
			return err
		}
		strSamples[i] = redisutils.FormatSample(sample)
	}

	if err := s.client.RPush(ctx, redisutils.KeySamples(runID), strSamples...).Err(); err != nil {
		return fmt.Errorf("failed to push %d samples of run %s: %w", len(samples), runID, err)
	}
	return nil
}

// SaveRun() writes the record in the hash of the run, overwriting existing fields.
func (s *SampleStore) SaveRun(ctx context.Context, record models.RunRecord) error {
	if err := s.validate(); err != nil {
		return err
	}

	if record.RunID == "" {
		return models.ErrEmptyRunID
	}

	if err := s.client.HSet(ctx, redisutils.KeyRun(record.RunID), record).Err(); err != nil {
		return fmt.Errorf("failed to save run %s: %w", record.RunID, err)
	}
	return nil
}

// Samples() returns all the samples of the run, in insertion order.
func (s *SampleStore) Samples(ctx context.Context, runID string) ([]models.Sample, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	strSamples, err := s.client.LRange(ctx, redisutils.KeySamples(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the samples of run %s: %w", runID, err)
	}

	if len(strSamples) == 0 {
		exists, err := s.client.Exists(ctx, redisutils.KeyRun(runID)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, models.ErrRunNotFound
		}
		return []models.Sample{}, nil
	}

	samples := make([]models.Sample, len(strSamples))
	for i, strSample := range strSamples {
		samples[i], err = redisutils.ParseSample(strSample)
		if err != nil {
			return nil, err
		}
	}
	return samples, nil
}

// Run() returns the record of the run.
func (s *SampleStore) Run(ctx context.Context, runID string) (models.RunRecord, error) {
	if err := s.validate(); err != nil {
		return models.RunRecord{}, err
	}

	cmd := s.client.HGetAll(ctx, redisutils.KeyRun(runID))
	fields, err := cmd.Result()
	if err != nil {
		return models.RunRecord{}, fmt.Errorf("failed to fetch run %s: %w", runID, err)
	}

	if len(fields) == 0 {
		return models.RunRecord{}, models.ErrRunNotFound
	}

	var record models.RunRecord
	if err := cmd.Scan(&record); err != nil {
		return models.RunRecord{}, fmt.Errorf("failed to parse run %s: %w", runID, err)
	}
	return record, nil
}

// validate() returns ErrNilClient if the store or its client is nil.
func (s *SampleStore) validate() error {
	if s == nil || s.client == nil {
		return ErrNilClient
	}
	return nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNilClient = errors.New("nil redis client")
