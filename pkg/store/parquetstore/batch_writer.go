package parquetstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/vertex-lab/sawsim/pkg/models"
)

/*
BatchWriter is a SampleSink that streams the samples of one run into a Parquet
file. The file is written in outDir/tmp/ and moved to outDir by Finalize(), so
that readers of outDir never see a partial file.

The RunRecord passed to SaveRun() is stored as key-value metadata of the file.
*/
type BatchWriter struct {
	mu sync.Mutex

	outDir  string
	tmpDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[SampleRow]

	bufferedRows int
}

// NewBatchWriter() creates the temporary file of the run in outDir/tmp/.
func NewBatchWriter(outDir, runID string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	if runID == "" {
		return nil, models.ErrEmptyRunID
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("run_%s_%d.parquet", runID, time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)
	outPath := filepath.Join(absOut, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[SampleRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata(schemaKey, schemaVersion)

	return &BatchWriter{
		outDir:  absOut,
		tmpDir:  tmpDir,
		tmpPath: tmpPath,
		outPath: outPath,
		file:    f,
		writer:  w,
	}, nil
}

func (b *BatchWriter) TmpPath() string { return b.tmpPath }
func (b *BatchWriter) OutPath() string { return b.outPath }

// BufferedRows() returns the number of rows written so far.
func (b *BatchWriter) BufferedRows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bufferedRows
}

// AddSamples() writes the samples as rows of the file.
func (b *BatchWriter) AddSamples(ctx context.Context, runID string, samples []models.Sample) error {
	if runID == "" {
		return models.ErrEmptyRunID
	}

	rows := make([]SampleRow, len(samples))
	for i, sample := range samples {
		if err := sample.Validate(); err != nil {
			return err
		}
		rows[i] = NewSampleRow(runID, sample)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writer == nil || b.file == nil {
		return ErrWriterClosed
	}
	if len(rows) == 0 {
		return nil
	}

	if _, err := b.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	b.bufferedRows += len(rows)
	return nil
}

// SaveRun() stores the record in the metadata of the file.
func (b *BatchWriter) SaveRun(ctx context.Context, record models.RunRecord) error {
	if record.RunID == "" {
		return models.ErrEmptyRunID
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writer == nil {
		return ErrWriterClosed
	}
	b.writer.SetKeyValueMetadata(runKey, string(encoded))
	return nil
}

// Finalize closes the parquet writer and moves the file from tmp/ to outDir.
// If no rows were written, the tmp file is removed and outPath is returned empty.
func (b *BatchWriter) Finalize() (outPath string, rows int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writer == nil && b.file == nil {
		return "", 0, nil
	}

	rows = b.bufferedRows
	outPath = b.outPath

	var closeErr error
	if b.writer != nil {
		closeErr = b.writer.Close()
		b.writer = nil
	}
	var fileErr error
	if b.file != nil {
		_ = b.file.Sync()
		fileErr = b.file.Close()
		b.file = nil
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(b.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return outPath, rows, nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrWriterClosed = errors.New("batch writer is closed")
var ErrUnknownSchema = errors.New("unknown parquet schema")
