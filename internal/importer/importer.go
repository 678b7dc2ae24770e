package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/candidate"
	"github.com/spigell/hf-importer/internal/checkpoint"
	"github.com/spigell/hf-importer/internal/huntflow"
	"github.com/spigell/hf-importer/internal/logger"
)

// Directory is the part of the Huntflow API the import needs.
type Directory interface {
	candidate.Uploader
	candidate.StatusLister
	candidate.VacancyLister
	CreateApplicant(ctx context.Context, payload *huntflow.ApplicantRequest) (*huntflow.Applicant, error)
	AttachToVacancy(ctx context.Context, applicantID int, payload *huntflow.VacancyLinkRequest) (*huntflow.VacancyLink, error)
}

// Deps aggregates dependencies shared across all import steps.
type Deps struct {
	Directory  Directory
	Checkpoint *checkpoint.Store
	FS         afero.Fs
	Logger     *zap.Logger
}

// Config contains settings consumed by the steps.
type Config struct {
	// ResumeDir holds one sub directory per position with resume files.
	ResumeDir string
}

// Result describes how far a run went.
type Result struct {
	Total     int
	Skipped   int
	Processed int
}

type Runner struct {
	cfg   Config
	deps  Deps
	steps []Step
}

// New creates a runner with the default steps: resume, create, attach.
func New(cfg *Config, deps *Deps) (*Runner, error) {
	if deps == nil || deps.Directory == nil {
		return nil, errors.New("huntflow directory is required")
	}

	if deps.Checkpoint == nil {
		return nil, errors.New("checkpoint store is required")
	}

	r := &Runner{deps: *deps}
	if cfg != nil {
		r.cfg = *cfg
	}

	if r.deps.FS == nil {
		r.deps.FS = afero.NewOsFs()
	}

	r.deps.Logger = logger.WithFields(r.deps.Logger)
	r.steps = DefaultSteps(r.cfg, r.deps)

	return r, nil
}

// Run resolves reference ids and imports the candidates.
func (r *Runner) Run(ctx context.Context, candidates []*candidate.Candidate) (Result, error) {
	if err := r.Resolve(ctx, candidates); err != nil {
		return Result{Total: len(candidates)}, err
	}

	return r.Process(ctx, candidates)
}

// Resolve assigns status and vacancy ids to all candidates with one request each.
func (r *Runner) Resolve(ctx context.Context, candidates []*candidate.Candidate) error {
	if err := candidate.ResolveStatusIDs(ctx, r.deps.Directory, candidates); err != nil {
		return fmt.Errorf("resolving statuses: %w", err)
	}

	if err := candidate.ResolveVacancyIDs(ctx, r.deps.Directory, candidates); err != nil {
		return fmt.Errorf("resolving vacancies: %w", err)
	}

	unresolved := candidate.Unresolved(candidates)
	r.deps.Logger.Info("resolved reference ids",
		zap.Int("candidates", len(candidates)),
		zap.Int("unresolved", len(unresolved)),
	)

	for _, c := range unresolved {
		r.deps.Logger.Warn("candidate will be attached with an unspecified reference",
			zap.String("candidate", c.FullName()),
			zap.String("position", c.Position),
			zap.String("status", c.Status),
			zap.Bool("status_resolved", c.StatusID != nil),
			zap.Bool("vacancy_resolved", c.VacancyID != nil),
		)
	}

	return nil
}

// Process imports candidates one by one starting at the checkpoint, if any.
// A network failure on record i > 0 stores i as the new checkpoint before the
// error is returned. A complete run removes the checkpoint.
func (r *Runner) Process(ctx context.Context, candidates []*candidate.Candidate) (Result, error) {
	result := Result{Total: len(candidates)}

	start, resumed, err := r.deps.Checkpoint.Load()
	if err != nil {
		return result, err
	}

	if resumed {
		r.deps.Logger.Info("resuming from checkpoint",
			zap.String("path", r.deps.Checkpoint.Path()),
			zap.Int("start", start),
		)

		if start >= len(candidates) {
			r.deps.Logger.Warn("checkpoint is past the last record",
				zap.Int("start", start),
				zap.Int("records", len(candidates)),
			)
		}
	}

	for i, c := range candidates {
		if i < start {
			result.Skipped++
			continue
		}

		rec := &Record{
			Index:     i,
			Candidate: c,
			Logger:    logger.WithCandidate(r.deps.Logger, i, c.Position, c.FullName()),
		}

		if err := r.apply(ctx, rec); err != nil {
			return result, r.fail(rec, err)
		}

		result.Processed++
	}

	if err := r.deps.Checkpoint.Remove(); err != nil {
		return result, err
	}

	r.deps.Logger.Info("import finished",
		zap.Int("total", result.Total),
		zap.Int("skipped", result.Skipped),
		zap.Int("processed", result.Processed),
	)

	return result, nil
}

func (r *Runner) apply(ctx context.Context, rec *Record) error {
	for _, step := range r.steps {
		if err := step.Apply(ctx, rec); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		rec.Logger.Debug("import step", zap.String("name", step.Name()))
	}

	return nil
}

// fail stores the checkpoint for network failures and wraps the error with the record.
func (r *Runner) fail(rec *Record, err error) error {
	wrapped := fmt.Errorf("record %d (%s): %w", rec.Index, rec.Candidate.FullName(), err)

	var netErr *huntflow.NetworkError
	if !errors.As(err, &netErr) {
		return wrapped
	}

	// Restarting at zero needs no checkpoint.
	if rec.Index == 0 {
		return wrapped
	}

	if saveErr := r.deps.Checkpoint.Save(rec.Index); saveErr != nil {
		return errors.Join(wrapped, saveErr)
	}

	rec.Logger.Warn("checkpoint saved",
		zap.String("path", r.deps.Checkpoint.Path()),
		zap.Int("resume_from", rec.Index),
	)

	return wrapped
}
