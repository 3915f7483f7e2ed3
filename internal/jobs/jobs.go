// Package jobs loads manifests describing several file transforms to run in one invocation.
package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/filecrypt/internal/encryption"
)

// ErrInvalidManifest is returned when a manifest is structurally valid JSON but describes unusable jobs.
var ErrInvalidManifest = errors.New("invalid jobs manifest")

// Job is a single transform request.
type Job struct {
	// Mode is "encrypt" or "decrypt".
	Mode string `json:"mode"`

	// Input file path.
	Input string `json:"input"`

	// Output file path.
	Output string `json:"output"`

	// Algorithm overrides the configured transformation for this job.
	Algorithm string `json:"algorithm,omitempty"`
}

// Direction returns the encryption mode named by Mode.
func (j Job) Direction() (encryption.Mode, error) {
	switch strings.ToLower(j.Mode) {
	case encryption.ModeEncrypt.String():
		return encryption.ModeEncrypt, nil
	case encryption.ModeDecrypt.String():
		return encryption.ModeDecrypt, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidManifest, j.Mode)
	}
}

// Load reads a JSONC file holding an array of jobs and validates it.
// Relative paths are resolved against the directory of the manifest.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var jobs []Job
	if err := json.Unmarshal(clean, &jobs); err != nil {
		return nil, fmt.Errorf("parsing jobs file %q: %w", path, err)
	}

	base := filepath.Dir(path)

	for i := range jobs {
		jobs[i].Input = resolve(base, jobs[i].Input)
		jobs[i].Output = resolve(base, jobs[i].Output)
	}

	if err := Validate(jobs); err != nil {
		return nil, fmt.Errorf("validating jobs file %q: %w", path, err)
	}

	return jobs, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(base, path)
}

// Validate checks that every job is complete and that no two jobs write the
// same output or read another job's output, so jobs can run in any order.
func Validate(jobs []Job) error {
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidManifest)
	}

	outputs := make(map[string]int, len(jobs))

	for i, job := range jobs {
		if _, err := job.Direction(); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}

		if job.Input == "" || job.Output == "" {
			return fmt.Errorf("%w: job %d: input and output are required", ErrInvalidManifest, i)
		}

		out := filepath.Clean(job.Output)

		if out == filepath.Clean(job.Input) {
			return fmt.Errorf("%w: job %d: input and output are the same file", ErrInvalidManifest, i)
		}

		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("%w: jobs %d and %d write %q", ErrInvalidManifest, prev, i, job.Output)
		}

		outputs[out] = i
	}

	for i, job := range jobs {
		if producer, ok := outputs[filepath.Clean(job.Input)]; ok {
			return fmt.Errorf("%w: job %d reads %q written by job %d", ErrInvalidManifest, i, job.Input, producer)
		}
	}

	return nil
}
