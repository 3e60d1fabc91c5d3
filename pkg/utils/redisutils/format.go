package redisutils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

// KeyRun() returns the key of the hash holding the record of the run.
func KeyRun(runID string) string {
	return "run:" + runID
}

// KeySamples() returns the key of the list holding the samples of the run.
func KeySamples(runID string) string {
	return "run:" + runID + ":samples"
}

// KeyLastRunID() returns the key of the counter of the run IDs.
func KeyLastRunID() string {
	return "runs:lastID"
}

/*
FormatSample() formats a Sample into a string ready to be stored in Redis:

	"trial,length,squaredDistance,weight"

followed by "|" and the lattice key of the end site, if the sample has one.
*/
func FormatSample(sample models.Sample) string {
	strSample := strings.Join([]string{
		strconv.Itoa(sample.Trial),
		strconv.Itoa(sample.Length),
		FormatFloat(sample.SquaredDistance),
		FormatFloat(sample.Weight),
	}, ",")

	if sample.End == nil {
		return strSample
	}
	return strSample + "|" + sample.End.Key()
}

// ParseSample() parses a string to a Sample
func ParseSample(strSample string) (models.Sample, error) {
	strFields, strEnd, hasEnd := strings.Cut(strSample, "|")

	fields := strings.Split(strFields, ",")
	if len(fields) != 4 {
		return models.Sample{}, fmt.Errorf("%w: %q", ErrInvalidFormat, strSample)
	}

	var sample models.Sample
	var err error

	if sample.Trial, err = strconv.Atoi(fields[0]); err != nil {
		return models.Sample{}, fmt.Errorf("%w: trial: %v", ErrInvalidFormat, err)
	}

	if sample.Length, err = strconv.Atoi(fields[1]); err != nil {
		return models.Sample{}, fmt.Errorf("%w: length: %v", ErrInvalidFormat, err)
	}

	if sample.SquaredDistance, err = ParseFloat64(fields[2]); err != nil {
		return models.Sample{}, fmt.Errorf("%w: squared distance: %v", ErrInvalidFormat, err)
	}

	if sample.Weight, err = ParseFloat64(fields[3]); err != nil {
		return models.Sample{}, fmt.Errorf("%w: weight: %v", ErrInvalidFormat, err)
	}

	if hasEnd {
		if sample.End, err = lattice.ParseKey(strEnd); err != nil {
			return models.Sample{}, fmt.Errorf("%w: end site: %v", ErrInvalidFormat, err)
		}
	}

	return sample, nil
}

// FormatFloat() formats a float64 with the fewest digits that parse back to it.
func FormatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// ParseFloat64() parses a float64 from the specified string
func ParseFloat64(strVal string) (float64, error) {
	return strconv.ParseFloat(strVal, 64)
}

// ParseInt64() parses an int64 from the specified string
func ParseInt64(strVal string) (int64, error) {
	return strconv.ParseInt(strVal, 10, 64)
}

//---------------------------------ERROR-CODES---------------------------------

var ErrInvalidFormat = errors.New("invalid redis format")
