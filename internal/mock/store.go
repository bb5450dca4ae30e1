package mock

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/studiowebux/examcli/internal/types"
)

// ErrNotFound is returned for unknown exam ids
var ErrNotFound = errors.New("exam not found")

// Store is the in-memory exam table behind the mock backend
type Store struct {
	mu     sync.RWMutex
	exams  map[int64]types.Exam
	nextID int64
	now    func() time.Time
}

// NewStore creates a store seeded with exams
func NewStore(seed []types.Exam) *Store {
	s := &Store{
		exams:  make(map[int64]types.Exam, len(seed)),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
	for _, exam := range seed {
		if exam.Status == "" {
			exam.Status = types.StatusPreparing
		}
		s.exams[exam.ID] = exam
		if exam.ID >= s.nextID {
			s.nextID = exam.ID + 1
		}
	}
	return s
}

// List returns exams in ascending id order, filtered by status when non-empty
func (s *Store) List(status types.Status) []types.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Exam, 0, len(s.exams))
	for _, exam := range s.exams {
		if status != "" && exam.Status != status {
			continue
		}
		result = append(result, exam)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns a single exam
func (s *Store) Get(id int64) (types.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exam, ok := s.exams[id]
	if !ok {
		return types.Exam{}, ErrNotFound
	}
	return exam, nil
}

// Create inserts a new preparing exam
func (s *Store) Create(req types.CreateExamRequest) (types.Exam, error) {
	if err := req.Validate(); err != nil {
		return types.Exam{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	exam := types.Exam{
		ID:              s.nextID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Subject:         req.Subject,
		Status:          types.StatusPreparing,
		DurationMinutes: req.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.exams[exam.ID] = exam
	s.nextID++
	return exam, nil
}

// SetStatus moves an exam to status
func (s *Store) SetStatus(id int64, status types.Status) (types.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam, ok := s.exams[id]
	if !ok {
		return types.Exam{}, ErrNotFound
	}
	exam.Status = status
	exam.UpdatedAt = s.now()
	s.exams[id] = exam
	return exam, nil
}

// Len returns the number of stored exams
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exams)
}
