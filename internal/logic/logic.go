// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/encryption"
	"github.com/idelchi/filecrypt/internal/fileutil"
	"github.com/idelchi/filecrypt/internal/jobs"
)

// Result represents the outcome of a single job.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Any error that occurred during processing
	Error error
}

// Run executes the single transform configured by the encrypt or decrypt command.
func Run(cfg *config.Config, logger zerolog.Logger, stats io.Writer) error {
	list := []jobs.Job{{Mode: cfg.Mode.String(), Input: cfg.Input, Output: cfg.Output}}

	return execute(cfg, logger, stats, list)
}

// RunJobs executes every job of the manifest named by cfg.Jobs.
func RunJobs(cfg *config.Config, logger zerolog.Logger, stats io.Writer) error {
	list, err := jobs.Load(cfg.Jobs)
	if err != nil {
		return fmt.Errorf("loading jobs: %w", err)
	}

	return execute(cfg, logger, stats, list)
}

// execute runs the jobs on up to cfg.Parallel workers.
// Every job runs even if another one fails; the first error is returned.
//
//nolint:cyclop // parallel processing pipeline with printer goroutine
func execute(cfg *config.Config, logger zerolog.Logger, stats io.Writer, list []jobs.Job) error {
	start := time.Now()

	key, err := cfg.ResolveKey()
	if err != nil {
		return fmt.Errorf("resolving key: %w", err)
	}

	transformation, err := cfg.Transformation()
	if err != nil {
		return fmt.Errorf("building transformation: %w", err)
	}

	results := make(chan Result, len(list))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var (
		processed, errored int
		totalSize          int64
	)

	go func() {
		defer close(printed)

		for res := range results {
			if res.Error != nil {
				errored++

				logger.Error().
					Err(res.Error).
					Str("input", res.Input).
					Stringer("kind", encryption.KindOf(res.Error)).
					Msg("processing failed")

				continue
			}

			processed++

			totalSize += res.OutputSize

			logger.Info().
				Str("input", res.Input).
				Str("output", res.Output).
				Str("size", humanize.IBytes(uint64(max(0, res.OutputSize)))). //nolint:gosec // clamped
				Msg("processed")
		}
	}()

	for _, job := range list {
		group.Go(func() error {
			size, err := runJob(job, key, transformation, cfg.PreserveTimestamps, logger)
			if err != nil {
				results <- Result{Input: job.Input, Error: err}

				return err
			}

			results <- Result{Input: job.Input, Output: job.Output, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		printStats(stats, len(list), processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running jobs: %w", err)
	}

	return nil
}

// runJob performs one transform and returns the size of the written output.
func runJob(
	job jobs.Job,
	key string,
	transformation encryption.Transformation,
	preserveTimestamps bool,
	logger zerolog.Logger,
) (int64, error) {
	mode, err := job.Direction()
	if err != nil {
		return 0, err
	}

	if job.Algorithm != "" {
		pinned := transformation.KeySize

		transformation, err = encryption.ParseTransformation(job.Algorithm)
		if err != nil {
			return 0, fmt.Errorf("job transformation: %w", err)
		}

		transformation.KeySize = pinned
	}

	logger.Debug().
		Stringer("mode", mode).
		Stringer("transformation", transformation).
		Str("input", job.Input).
		Str("output", job.Output).
		Msg("starting")

	tr := encryption.New(transformation)

	switch mode {
	case encryption.ModeEncrypt:
		err = tr.Encrypt(key, job.Input, job.Output)
	case encryption.ModeDecrypt:
		err = tr.Decrypt(key, job.Input, job.Output)
	}

	if err != nil {
		return 0, err
	}

	var modTime time.Time

	if preserveTimestamps {
		info, err := os.Stat(job.Input)
		if err != nil {
			return 0, fmt.Errorf("getting input file info: %w", err)
		}

		modTime = info.ModTime()
	}

	size, err := fileutil.FinalizeOutput(job.Output, preserveTimestamps, modTime)
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

func printStats(w io.Writer, total, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Jobs:      %d\n", total)
	fmt.Fprintf(w, "  Processed: %d\n", processed)
	fmt.Fprintf(w, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
