package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/store/mock"
)

type failingSink struct{}

var errFailing = errors.New("failing sink")

func (failingSink) AddSamples(ctx context.Context, runID string, samples []models.Sample) error {
	return errFailing
}

func (failingSink) SaveRun(ctx context.Context, record models.RunRecord) error {
	return errFailing
}

func TestNewFanout(t *testing.T) {
	assert.Nil(t, NewFanout())
	assert.Nil(t, NewFanout(nil, nil))

	store := mock.NewSampleStore()
	assert.Same(t, store, NewFanout(nil, store))
	assert.Len(t, NewFanout(store, mock.NewSampleStore()), 2)
}

func TestFanout(t *testing.T) {
	ctx := context.Background()
	first, second := mock.NewSampleStore(), mock.NewSampleStore()
	sink := NewFanout(first, second)

	samples := []models.Sample{{Trial: 1, Length: 5, SquaredDistance: 4, Weight: 1}}
	require.NoError(t, sink.AddSamples(ctx, "1", samples))
	require.NoError(t, sink.SaveRun(ctx, models.RunRecord{RunID: "1"}))

	for _, store := range []*mock.SampleStore{first, second} {
		assert.Equal(t, 1, store.SampleCount("1"))
		_, err := store.Run(ctx, "1")
		assert.NoError(t, err)
	}

	// a failing sink doesn't stop the others
	third := mock.NewSampleStore()
	sink = NewFanout(failingSink{}, third)
	assert.ErrorIs(t, sink.AddSamples(ctx, "1", samples), errFailing)
	assert.Equal(t, 1, third.SampleCount("1"))
}
