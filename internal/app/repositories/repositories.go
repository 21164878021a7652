package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunahan/uniplanner/internal/app/models"
)

// ErrNotFound is the shared not-found error for all repositories.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all repository instances.
type Repositories struct {
	CourseRepository     *CourseRepository
	InstructorRepository *InstructorRepository
	BatchRepository      *BatchRepository
	RoomRepository       *RoomRepository
	SlotRepository       *SlotRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		InstructorRepository: NewInstructorRepository(db),
		BatchRepository:      NewBatchRepository(db),
		RoomRepository:       NewRoomRepository(db),
		SlotRepository:       NewSlotRepository(db),
	}
}

// The delegation methods below make Repositories satisfy the record source
// interface the timetable service fetches through.

func (r *Repositories) ListCourses(ctx context.Context, sel models.SemesterSelector) ([]models.Course, error) {
	return r.CourseRepository.ListCourses(ctx, sel)
}

func (r *Repositories) ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	return r.InstructorRepository.ListInstructors(ctx)
}

func (r *Repositories) ListBatches(ctx context.Context) ([]models.Batch, error) {
	return r.BatchRepository.ListBatches(ctx)
}

func (r *Repositories) ListRooms(ctx context.Context) ([]models.Room, error) {
	return r.RoomRepository.ListRooms(ctx)
}

func (r *Repositories) ListSlots(ctx context.Context) ([]models.Slot, error) {
	return r.SlotRepository.ListSlots(ctx)
}
