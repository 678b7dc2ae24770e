package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/candidate"
)

const (
	StepResume = "resume"
	StepCreate = "create"
	StepAttach = "attach"
)

var errNotCreated = errors.New("applicant was not created")

// Record is the unit of work passed through the steps.
type Record struct {
	Index     int
	Candidate *candidate.Candidate
	Logger    *zap.Logger
}

// Step represents a single action applied to a record.
type Step interface {
	Name() string
	Apply(ctx context.Context, rec *Record) error
}

// DefaultSteps returns the import sequence for a record.
func DefaultSteps(cfg Config, deps Deps) []Step {
	return []Step{
		&resumeStep{fs: deps.FS, dir: deps.Directory, baseDir: cfg.ResumeDir},
		&createStep{dir: deps.Directory},
		&attachStep{dir: deps.Directory},
	}
}

type resumeStep struct {
	fs      afero.Fs
	dir     candidate.Uploader
	baseDir string
}

func (s *resumeStep) Name() string { return StepResume }

func (s *resumeStep) Apply(ctx context.Context, rec *Record) error {
	path, err := rec.Candidate.LocateResumeFile(s.fs, s.baseDir)
	if err != nil {
		return err
	}

	if path == "" {
		rec.Logger.Info("resume file not found, skipping enrichment")
		return nil
	}

	if err := rec.Candidate.EnrichFromResume(ctx, s.dir, path); err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}

	rec.Logger.Info("resume uploaded",
		zap.String("path", path),
		zap.Bool("parsed", rec.Candidate.ResumeID != nil),
	)

	return nil
}

type createStep struct {
	dir Directory
}

func (s *createStep) Name() string { return StepCreate }

func (s *createStep) Apply(ctx context.Context, rec *Record) error {
	applicant, err := s.dir.CreateApplicant(ctx, rec.Candidate.ApplicantPayload())
	if err != nil {
		return err
	}

	if applicant == nil || applicant.ID == 0 {
		return errNotCreated
	}

	id := applicant.ID
	rec.Candidate.ApplicantID = &id

	rec.Logger.Info("applicant created", zap.Int("applicant_id", id))

	return nil
}

type attachStep struct {
	dir Directory
}

func (s *attachStep) Name() string { return StepAttach }

func (s *attachStep) Apply(ctx context.Context, rec *Record) error {
	if rec.Candidate.ApplicantID == nil {
		return errNotCreated
	}

	link, err := s.dir.AttachToVacancy(ctx, *rec.Candidate.ApplicantID, rec.Candidate.VacancyLinkPayload())
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.Int("applicant_id", *rec.Candidate.ApplicantID)}
	if link != nil {
		fields = append(fields, zap.Int("link_id", link.ID))
	}
	if rec.Candidate.VacancyID != nil {
		fields = append(fields, zap.Int("vacancy_id", *rec.Candidate.VacancyID))
	}
	rec.Logger.Info("applicant attached to vacancy", fields...)

	return nil
}
