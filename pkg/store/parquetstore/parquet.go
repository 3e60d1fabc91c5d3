// The package parquetstore writes the samples of a run to zstd compressed
// Parquet files, and reads them back.
package parquetstore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

const (
	schemaKey     = "schema"
	schemaVersion = "sample_row_v1"

	// runKey is the metadata key holding the JSON encoded RunRecord.
	runKey = "run"
)

// SampleRow is a single accepted walk.
type SampleRow struct {
	RunID           string  `parquet:"run_id,dict"`
	Trial           int64   `parquet:"trial"`
	Length          int32   `parquet:"length"`
	SquaredDistance float64 `parquet:"squared_distance"`
	Weight          float64 `parquet:"weight"`
	End             []int32 `parquet:"end"`
}

// NewSampleRow() returns the row of the sample.
func NewSampleRow(runID string, sample models.Sample) SampleRow {
	row := SampleRow{
		RunID:           runID,
		Trial:           int64(sample.Trial),
		Length:          int32(sample.Length),
		SquaredDistance: sample.SquaredDistance,
		Weight:          sample.Weight,
	}

	if sample.End != nil {
		row.End = make([]int32, len(sample.End))
		for i, x := range sample.End {
			row.End[i] = int32(x)
		}
	}
	return row
}

// Sample() returns the sample of the row.
func (r SampleRow) Sample() models.Sample {
	sample := models.Sample{
		Trial:           int(r.Trial),
		Length:          int(r.Length),
		SquaredDistance: r.SquaredDistance,
		Weight:          r.Weight,
	}

	if len(r.End) > 0 {
		sample.End = make(lattice.Site, len(r.End))
		for i, x := range r.End {
			sample.End[i] = int(x)
		}
	}
	return sample
}

// ReadSamples() reads all the samples of the Parquet file at path.
func ReadSamples(path string) ([]models.Sample, error) {
	var samples []models.Sample
	err := readFile(path, func(pf *parquet.File) error {
		reader := parquet.NewGenericReader[SampleRow](pf)
		defer reader.Close()

		samples = make([]models.Sample, 0, reader.NumRows())
		rows := make([]SampleRow, 1024)
		for {
			n, err := reader.Read(rows)
			for _, row := range rows[:n] {
				samples = append(samples, row.Sample())
			}

			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read rows: %w", err)
			}
		}
	})
	return samples, err
}

// ReadRun() reads the RunRecord stored in the metadata of the Parquet file at path.
func ReadRun(path string) (models.RunRecord, error) {
	var record models.RunRecord
	err := readFile(path, func(pf *parquet.File) error {
		encoded, ok := pf.Lookup(runKey)
		if !ok {
			return models.ErrRunNotFound
		}

		if err := json.Unmarshal([]byte(encoded), &record); err != nil {
			return fmt.Errorf("decode run record: %w", err)
		}
		return nil
	})
	return record, err
}

func readFile(path string, read func(pf *parquet.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return fmt.Errorf("open parquet: %w", err)
	}

	if schema, ok := pf.Lookup(schemaKey); ok && schema != schemaVersion {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}
	return read(pf)
}
