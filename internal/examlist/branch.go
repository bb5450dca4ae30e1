package examlist

import "github.com/studiowebux/examcli/internal/types"

// Branch is the single thing the list area shows
type Branch int

const (
	BranchLoading Branch = iota
	BranchError
	BranchPopulated
	BranchEmpty
)

func (b Branch) String() string {
	switch b {
	case BranchLoading:
		return "loading"
	case BranchError:
		return "error"
	case BranchPopulated:
		return "populated"
	case BranchEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

const (
	// LoadingText accompanies the spinner
	LoadingText = "Loading exams..."

	// ErrorNotice replaces the list on any fetch failure
	ErrorNotice = "Failed to load exams. Please try again later."

	// CreateFirstExamLabel is the empty-state call-to-action
	CreateFirstExamLabel = "Create Your First Exam"
)

// SelectBranch picks the branch in priority order: loading, error, populated, empty
func SelectBranch(loading bool, err error, count int) Branch {
	switch {
	case loading:
		return BranchLoading
	case err != nil:
		return BranchError
	case count > 0:
		return BranchPopulated
	default:
		return BranchEmpty
	}
}

// EmptyState is the copy shown when a tab has no exams
type EmptyState struct {
	Heading          string
	Message          string
	ShowCreateAction bool
}

// EmptyStateFor returns the empty-state copy for tab
func EmptyStateFor(tab types.Status) EmptyState {
	if tab == types.StatusPrepared {
		return EmptyState{
			Heading: "No prepared exams",
			Message: "No exams have been marked as prepared yet. Finish preparing an exam to see it here.",
		}
	}
	return EmptyState{
		Heading:          "No exams in preparation",
		Message:          "Create your first exam to get started with building comprehensive assessments.",
		ShowCreateAction: true,
	}
}
