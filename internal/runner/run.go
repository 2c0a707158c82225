package runner

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	v1 "github.com/adrien-f/unpack/apis/v1"
	"github.com/adrien-f/unpack/internal/extract"
	"github.com/adrien-f/unpack/internal/extract/formats"
	"github.com/adrien-f/unpack/internal/source"
)

var (
	defaultValidator = validator.New(validator.WithRequiredStructEnabled())
)

// ParseExtractJob parses a YAML or JSON manifest and validates it against
// the v1.ExtractJob schema. It returns a validated job or an error if
// parsing or validation fails.
func ParseExtractJob(data []byte) (v1.ExtractJob, error) {
	var job v1.ExtractJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return v1.ExtractJob{}, fmt.Errorf("failed to unmarshal job data: %w", err)
	}

	if err := defaultValidator.Struct(job); err != nil {
		return v1.ExtractJob{}, fmt.Errorf("failed to validate job: %w", err)
	}

	return job, nil
}

// Runner drives the archives of a job through source resolution, format
// detection and extraction, in manifest order.
type Runner struct {
	logger   *zap.Logger
	job      v1.ExtractJob
	registry *extract.Registry
	fs       afero.Fs
}

type Option func(*Runner)

// WithFs sets the filesystem extracted entries are written to.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithRegistry replaces the built-in format registry.
func WithRegistry(registry *extract.Registry) Option {
	return func(r *Runner) {
		r.registry = registry
	}
}

func New(logger *zap.Logger, job v1.ExtractJob, opts ...Option) *Runner {
	r := &Runner{
		logger:   logger,
		job:      job,
		registry: formats.NewRegistry(),
		fs:       afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run extracts every archive in the job. The first failing archive aborts
// the remaining ones.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("running extract job",
		zap.String("job_name", r.job.Metadata.Name),
		zap.Int("archives", len(r.job.Spec.Archives)))

	for _, archive := range r.job.Spec.Archives {
		if err := r.runArchive(ctx, archive); err != nil {
			return fmt.Errorf("failed to extract %s: %w", archive.Source, err)
		}
	}

	return nil
}

func (r *Runner) runArchive(ctx context.Context, archive v1.Archive) error {
	logger := r.logger.With(
		zap.String("source", archive.Source),
		zap.String("target", archive.Target))
	logger.Debug("extracting archive")

	enc, err := EncodingByName(archive.Encoding)
	if err != nil {
		return err
	}

	var s3cfg source.S3Config
	if archive.S3 != nil {
		s3cfg = source.S3Config{
			Region:          archive.S3.Region,
			Endpoint:        archive.S3.Endpoint,
			AccessKeyID:     archive.S3.AccessKeyID,
			SecretAccessKey: archive.S3.SecretAccessKey,
			ForcePathStyle:  archive.S3.ForcePathStyle,
		}
	}

	stream, err := source.Resolve(ctx, archive.Source, s3cfg)
	if err != nil {
		return err
	}

	// Open owns the stream from here: it closes it on construction failure,
	// and hands it to the extractor otherwise.
	ex, err := extract.Open(r.registry,
		extract.Stream(stream),
		extract.Options{Format: archive.Format, Encoding: enc},
		extract.WithFs(r.fs),
		extract.WithLogger(logger))
	if err != nil {
		return err
	}

	return ex.Extract(archive.Target, archive.StripComponents, GlobFilter(archive.Include, archive.Exclude))
}
