package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
	"github.com/tunahan/uniplanner/internal/pkg/procrun"
	"github.com/tunahan/uniplanner/internal/pkg/solverio"
	"github.com/tunahan/uniplanner/internal/pkg/workspace"
)

// artifactFile is the rendered timetable produced by the renderer inside
// the workspace.
const artifactFile = "output.pdf"

// RecordSource provides read access to the record store. Implemented by
// repositories.Repositories; substituted by a fake in tests.
type RecordSource interface {
	ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error)
	ListInstructors(ctx context.Context) ([]models.Instructor, error)
	ListBatches(ctx context.Context) ([]models.Batch, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListSlots(ctx context.Context) ([]models.Slot, error)
}

// SolverConfig locates the external executables and bounds their runtime.
type SolverConfig struct {
	// EnginePath is the pre-built scheduling engine binary.
	EnginePath string
	// RendererScript is the script that turns a schedule into a PDF.
	RendererScript string
	// PythonBin is the interpreter used to run the renderer script.
	PythonBin string

	EngineTimeout   time.Duration
	RendererTimeout time.Duration
}

// TimetableArtifact is the rendered timetable returned on success.
type TimetableArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TimetableService generates timetables via the external solver pipeline.
type TimetableService interface {
	Generate(ctx context.Context, sel models.SemesterSelector) (*TimetableArtifact, error)
}

type timetableServiceImpl struct {
	records    RecordSource
	workspaces *workspace.Manager
	runner     procrun.Runner
	solver     SolverConfig
	logger     zerolog.Logger
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(records RecordSource, workspaces *workspace.Manager, runner procrun.Runner, solver SolverConfig, lgr zerolog.Logger) TimetableService {
	return &timetableServiceImpl{
		records:    records,
		workspaces: workspaces,
		runner:     runner,
		solver:     solver,
		logger:     lgr,
	}
}

// Generate runs the full pipeline: aggregate records, derive the solver
// tables, run the engine and the renderer inside a private workspace, and
// return the rendered artifact. The workspace is removed on every exit path.
func (s *timetableServiceImpl) Generate(ctx context.Context, sel models.SemesterSelector) (*TimetableArtifact, error) {
	s.logger.Info().Str("selector", sel.Describe()).Msg("Generating timetable")

	rec, err := s.aggregateRecords(ctx, sel)
	if err != nil {
		return nil, err
	}

	tables := solverio.Build(*rec)
	files, err := tables.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode solver tables: %w", err)
	}

	ws, err := s.workspaces.Acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire workspace: %w", err)
	}
	defer ws.Release()

	for name, data := range files {
		if err := ws.WriteFile(name, data); err != nil {
			return nil, err
		}
	}
	if err := ws.Stage(s.solver.EnginePath, s.solver.RendererScript); err != nil {
		return nil, err
	}

	if err := s.runEngine(ctx, ws); err != nil {
		return nil, err
	}
	if err := s.runRenderer(ctx, ws); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ws.Path(artifactFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered timetable: %w", err)
	}

	s.logger.Info().Str("selector", sel.Describe()).Int("bytes", len(data)).Msg("Timetable generated")
	return &TimetableArtifact{
		Filename:    sel.ArtifactFilename(),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// aggregateRecords fetches the five collections concurrently and enforces
// minimum completeness before any subprocess work starts.
func (s *timetableServiceImpl) aggregateRecords(ctx context.Context, sel models.SemesterSelector) (*solverio.Records, error) {
	rec := &solverio.Records{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rec.Courses, err = s.records.ListCourses(gctx, sel)
		return err
	})
	g.Go(func() (err error) {
		rec.Instructors, err = s.records.ListInstructors(gctx)
		return err
	})
	g.Go(func() (err error) {
		rec.Batches, err = s.records.ListBatches(gctx)
		return err
	})
	g.Go(func() (err error) {
		rec.Rooms, err = s.records.ListRooms(gctx)
		return err
	})
	g.Go(func() (err error) {
		rec.Slots, err = s.records.ListSlots(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	switch {
	case len(rec.Courses) == 0:
		if sel.IsAll() {
			return nil, apperrors.NewPreconditionError("No courses found.")
		}
		return nil, apperrors.NewPreconditionError(fmt.Sprintf("No courses found for %s.", sel.Describe()))
	case len(rec.Instructors) == 0:
		return nil, apperrors.NewPreconditionError("No instructors found in the record store.")
	case len(rec.Batches) == 0:
		return nil, apperrors.NewPreconditionError("No batches configured. Please configure batches first.")
	case len(rec.Rooms) == 0:
		return nil, apperrors.NewPreconditionError("No rooms configured. Please configure rooms first.")
	case len(rec.Slots) == 0:
		return nil, apperrors.NewPreconditionError("No time slots configured. Please configure time slots first.")
	}

	return rec, nil
}

// runEngine executes the staged engine and classifies the outcome.
func (s *timetableServiceImpl) runEngine(ctx context.Context, ws *workspace.Workspace) error {
	engine := "./" + filepath.Base(s.solver.EnginePath)
	s.logger.Info().Str("engine", engine).Dur("timeout", s.solver.EngineTimeout).Msg("Running scheduling engine")

	res := s.runner.Run(ctx, ws.Dir(), s.solver.EngineTimeout, engine)

	if res.TimedOut {
		return apperrors.NewCustomError(apperrors.ErrEngineTimedOut,
			"Timetable generation timed out. The problem might be too complex or unsolvable with current constraints.")
	}
	if res.Err != nil {
		return fmt.Errorf("failed to run scheduling engine: %w", res.Err)
	}

	rows, exists := s.scheduleRows(ws)

	if res.ExitCode == 0 {
		if !exists {
			// A zero exit without a schedule file means the engine broke
			// its own contract.
			return apperrors.NewCustomError(apperrors.ErrEngineContractViolation,
				"Solver did not generate a schedule file.").WithDetails(res.Output())
		}
		if rows == 0 {
			return apperrors.NewCustomError(apperrors.ErrNoFeasibleSolution,
				"No feasible timetable solution found. Please review constraints (instructor availability, room capacity, etc.).").WithDetails(res.Output())
		}
		return nil
	}

	// The engine may report non-fatal diagnostics through a non-zero exit
	// while still having produced a usable plan.
	if exists && rows > 0 {
		s.logger.Warn().Int("exitCode", res.ExitCode).Str("output", res.Output()).Msg("Engine exited non-zero but produced a schedule, continuing")
		return nil
	}

	return apperrors.NewCustomError(apperrors.ErrNoFeasibleSolution,
		"No feasible timetable solution found. Please review constraints (instructor availability, room capacity, etc.).").WithDetails(res.Output())
}

// scheduleRows reports whether the schedule file exists and how many data
// rows it carries beyond the header.
func (s *timetableServiceImpl) scheduleRows(ws *workspace.Workspace) (int, bool) {
	data, err := os.ReadFile(ws.Path(solverio.ScheduleFile))
	if err != nil {
		return 0, false
	}
	return solverio.CountDataRows(data), true
}

// runRenderer executes the renderer against the validated schedule.
func (s *timetableServiceImpl) runRenderer(ctx context.Context, ws *workspace.Workspace) error {
	script := filepath.Base(s.solver.RendererScript)
	s.logger.Info().Str("script", script).Dur("timeout", s.solver.RendererTimeout).Msg("Rendering timetable")

	res := s.runner.Run(ctx, ws.Dir(), s.solver.RendererTimeout, s.solver.PythonBin, script, solverio.ScheduleFile, artifactFile)

	if res.TimedOut {
		return apperrors.NewCustomError(apperrors.ErrRenderingFailed, "Report rendering timed out.")
	}
	if res.Err != nil {
		return fmt.Errorf("failed to run renderer: %w", res.Err)
	}
	if res.ExitCode != 0 {
		return apperrors.NewCustomError(apperrors.ErrRenderingFailed,
			rendererFailureMessage(res.Output())).WithDetails(res.Output())
	}

	if _, err := os.Stat(ws.Path(artifactFile)); err != nil {
		return apperrors.NewCustomError(apperrors.ErrRenderingFailed,
			"Renderer did not create an output file.").WithDetails(res.Output())
	}

	return nil
}

// rendererFailureMessage maps known renderer diagnostics to actionable
// messages, falling back to a generic one.
func rendererFailureMessage(output string) string {
	switch {
	case strings.Contains(output, "No pages"):
		return "Schedule contains malformed slot data; the renderer could not lay out any day pages."
	case strings.Contains(output, "must contain header"):
		return "Schedule file could not be parsed by the renderer."
	default:
		return "Failed to generate PDF from schedule."
	}
}
