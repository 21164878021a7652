package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
	"github.com/tunahan/uniplanner/internal/pkg/procrun"
	"github.com/tunahan/uniplanner/internal/pkg/workspace"
)

type fakeRecords struct {
	courses     []models.Course
	instructors []models.Instructor
	batches     []models.Batch
	rooms       []models.Room
	slots       []models.Slot
	err         error
}

func (f *fakeRecords) ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error) {
	return f.courses, f.err
}
func (f *fakeRecords) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	return f.instructors, f.err
}
func (f *fakeRecords) ListBatches(ctx context.Context) ([]models.Batch, error) {
	return f.batches, f.err
}
func (f *fakeRecords) ListRooms(ctx context.Context) ([]models.Room, error) {
	return f.rooms, f.err
}
func (f *fakeRecords) ListSlots(ctx context.Context) ([]models.Slot, error) {
	return f.slots, f.err
}

// fakeRunner substitutes the engine and renderer subprocesses. The engine is
// recognized by its "./" prefix, matching how the service invokes it.
type fakeRunner struct {
	engine   func(dir string) procrun.Result
	renderer func(dir string) procrun.Result
	lastDir  string
}

func (f *fakeRunner) Run(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) procrun.Result {
	f.lastDir = dir
	if strings.HasPrefix(name, "./") {
		return f.engine(dir)
	}
	return f.renderer(dir)
}

func completeRecords() *fakeRecords {
	return &fakeRecords{
		courses: []models.Course{
			{
				Code: "CS301", Name: "Algorithms", Lecture: 3, Semester: 3,
				Assignments: []models.InstructorAssignment{{Email: "a.kaya@uni.edu"}},
				BatchIDs:    []string{"CS-3A"},
			},
		},
		instructors: []models.Instructor{{ID: 1, Email: "a.kaya@uni.edu", Name: "Ayse Kaya"}},
		batches:     []models.Batch{{BatchID: "CS-3A", Programme: "CS", Size: 40}},
		rooms:       []models.Room{{RoomID: "R101", Capacity: 60}},
		slots:       []models.Slot{{SlotID: "MON1", Day: "Monday", StartTime: "09:00", EndTime: "10:00"}},
	}
}

func writeInDir(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestService(t *testing.T, records RecordSource, runner procrun.Runner) TimetableService {
	t.Helper()

	stageDir := t.TempDir()
	enginePath := filepath.Join(stageDir, "timetable_engine")
	rendererPath := filepath.Join(stageDir, "csv_to_pdf.py")
	require.NoError(t, os.WriteFile(enginePath, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(rendererPath, []byte("# renderer\n"), 0o644))

	workspaces, err := workspace.NewManager(t.TempDir())
	require.NoError(t, err)

	cfg := SolverConfig{
		EnginePath:      enginePath,
		RendererScript:  rendererPath,
		PythonBin:       "python3",
		EngineTimeout:   time.Minute,
		RendererTimeout: time.Minute,
	}
	return NewTimetableService(records, workspaces, runner, cfg, zerolog.Nop())
}

func TestGenerate_Success(t *testing.T) {
	runner := &fakeRunner{
		engine: func(dir string) procrun.Result {
			// Engine sees all five input tables and the staged executables.
			for _, name := range []string{"teachers.csv", "courses.csv", "batches.csv", "rooms.csv", "slots.csv", "timetable_engine", "csv_to_pdf.py"} {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("expected %s in workspace: %v", name, err)
				}
			}
			writeInDir(t, dir, "schedule.csv", "Course,Slot,Room\nCS301_CS-3A,MON1,R101\n")
			return procrun.Result{ExitCode: 0}
		},
		renderer: func(dir string) procrun.Result {
			writeInDir(t, dir, "output.pdf", "%PDF-fake")
			return procrun.Result{ExitCode: 0}
		},
	}
	svc := newTestService(t, completeRecords(), runner)

	sel, err := models.NewSemesterSelector(3, "")
	require.NoError(t, err)

	artifact, err := svc.Generate(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, "timetable_semester_3.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, []byte("%PDF-fake"), artifact.Data)

	// The per-run workspace is gone once Generate returns.
	_, err = os.Stat(runner.lastDir)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_PreconditionFailures(t *testing.T) {
	runner := &fakeRunner{
		engine:   func(dir string) procrun.Result { t.Fatal("engine must not run"); return procrun.Result{} },
		renderer: func(dir string) procrun.Result { t.Fatal("renderer must not run"); return procrun.Result{} },
	}

	t.Run("no courses for selector", func(t *testing.T) {
		records := completeRecords()
		records.courses = nil
		svc := newTestService(t, records, runner)

		sel, err := models.NewSemesterSelector(3, "")
		require.NoError(t, err)

		_, err = svc.Generate(context.Background(), sel)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPreconditionFailed))
		assert.Contains(t, err.Error(), "semester 3")
	})

	t.Run("no instructors", func(t *testing.T) {
		records := completeRecords()
		records.instructors = nil
		svc := newTestService(t, records, runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPreconditionFailed))
	})

	t.Run("no batches", func(t *testing.T) {
		records := completeRecords()
		records.batches = nil
		svc := newTestService(t, records, runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPreconditionFailed))
	})

	t.Run("record store failure", func(t *testing.T) {
		records := completeRecords()
		records.err = errors.New("connection refused")
		svc := newTestService(t, records, runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.False(t, errors.Is(err, apperrors.ErrPreconditionFailed))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGenerate_EngineOutcomes(t *testing.T) {
	renderOK := func(dir string) procrun.Result {
		writeInDir(t, dir, "output.pdf", "%PDF-fake")
		return procrun.Result{ExitCode: 0}
	}

	t.Run("timeout", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   func(dir string) procrun.Result { return procrun.Result{TimedOut: true, ExitCode: -1} },
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrEngineTimedOut))

		_, statErr := os.Stat(runner.lastDir)
		assert.True(t, os.IsNotExist(statErr), "workspace must be removed on timeout too")
	})

	t.Run("zero exit without schedule file", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   func(dir string) procrun.Result { return procrun.Result{ExitCode: 0, Stdout: "done"} },
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrEngineContractViolation))
	})

	t.Run("zero exit with header-only schedule", func(t *testing.T) {
		runner := &fakeRunner{
			engine: func(dir string) procrun.Result {
				writeInDir(t, dir, "schedule.csv", "Course,Slot,Room\n")
				return procrun.Result{ExitCode: 0, Stderr: "INFEASIBLE"}
			},
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNoFeasibleSolution))

		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom))
		assert.Contains(t, custom.Details, "INFEASIBLE")
	})

	t.Run("non-zero exit with usable schedule continues", func(t *testing.T) {
		runner := &fakeRunner{
			engine: func(dir string) procrun.Result {
				writeInDir(t, dir, "schedule.csv", "Course,Slot,Room\nCS301_CS-3A,MON1,R101\n")
				return procrun.Result{ExitCode: 1, Stderr: "warning: relaxed a soft constraint"}
			},
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		artifact, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.NoError(t, err)
		assert.Equal(t, "timetable_all_semesters.pdf", artifact.Filename)
	})

	t.Run("non-zero exit without schedule", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   func(dir string) procrun.Result { return procrun.Result{ExitCode: 2, Stderr: "model invalid"} },
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNoFeasibleSolution))
	})

	t.Run("runner failure", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   func(dir string) procrun.Result { return procrun.Result{ExitCode: -1, Err: errors.New("exec format error")} },
			renderer: renderOK,
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec format error")
	})
}

func TestGenerate_RendererOutcomes(t *testing.T) {
	engineOK := func(dir string) procrun.Result {
		writeInDir(t, dir, "schedule.csv", "Course,Slot,Room\nCS301_CS-3A,MON1,R101\n")
		return procrun.Result{ExitCode: 0}
	}

	t.Run("non-zero exit maps known diagnostics", func(t *testing.T) {
		runner := &fakeRunner{
			engine: engineOK,
			renderer: func(dir string) procrun.Result {
				return procrun.Result{ExitCode: 1, Stderr: "Error: No pages (no Mon-Fri day slots found)"}
			},
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrRenderingFailed))

		var custom *apperrors.CustomError
		require.True(t, errors.As(err, &custom))
		assert.Contains(t, custom.Message, "malformed slot data")
	})

	t.Run("timeout", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   engineOK,
			renderer: func(dir string) procrun.Result { return procrun.Result{TimedOut: true, ExitCode: -1} },
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrRenderingFailed))
	})

	t.Run("zero exit without artifact", func(t *testing.T) {
		runner := &fakeRunner{
			engine:   engineOK,
			renderer: func(dir string) procrun.Result { return procrun.Result{ExitCode: 0} },
		}
		svc := newTestService(t, completeRecords(), runner)

		_, err := svc.Generate(context.Background(), models.SemesterSelector{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrRenderingFailed))
	})
}
