package importer

import (
	"fmt"
	"time"

	apperrors "hearth/internal/errors"
	"hearth/internal/uuid"
)

// State is a wizard step. The wizard is a plain value object so it can be
// serialized into a client session and driven by tests without any HTTP
// layer.
type State string

const (
	StateUpload     State = "upload"
	StatePreview    State = "preview"
	StateCategorize State = "categorize"
	StateCommitting State = "committing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// CommitRow is one selected, categorized row ready to persist.
type CommitRow struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
}

// Committer persists a batch of rows as a single atomic unit and reports
// how many rows the batch holds. A batch with an already-seen idempotency
// key must succeed as a no-op so a retried commit never double-inserts.
type Committer interface {
	Commit(householdID, idempotencyKey, fileName string, rows []CommitRow) (int, error)
}

// Wizard sequences upload, preview, categorize and commit for one import.
// Nothing is persisted before Commit; cancelling at any earlier point has no
// side effects.
type Wizard struct {
	State          State          `json:"state"`
	HouseholdID    string         `json:"household_id"`
	FileName       string         `json:"file_name"`
	IdempotencyKey string         `json:"idempotency_key"`
	Result         *ParseResult   `json:"result,omitempty"`
	Selected       []int          `json:"selected,omitempty"`
	Assignments    map[int]string `json:"assignments,omitempty"`
	Inserted       int            `json:"inserted,omitempty"`
	FailureReason  string         `json:"failure_reason,omitempty"`
}

// NewWizard starts a wizard for the household. Categories are a hard
// precondition for import, so the wizard refuses to start without one.
func NewWizard(householdID string, categoryCount int64) (*Wizard, error) {
	if categoryCount == 0 {
		return nil, apperrors.ErrNoCategories
	}
	return &Wizard{
		State:          StateUpload,
		HouseholdID:    householdID,
		IdempotencyKey: uuid.New(),
		Assignments:    make(map[int]string),
	}, nil
}

// Upload attaches a parse result and advances to Preview. It requires at
// least one valid row; rows with errors are carried along for display but
// can never be selected.
func (w *Wizard) Upload(result *ParseResult, fileName string) error {
	if w.State != StateUpload {
		return w.badTransition("upload")
	}
	if result == nil || len(result.Transactions) == 0 {
		return apperrors.ErrImportEmpty
	}
	w.Result = result
	w.FileName = fileName
	w.State = StatePreview
	return nil
}

// SelectRows records which parsed rows to keep and advances to Categorize.
func (w *Wizard) SelectRows(indexes []int) error {
	if w.State != StatePreview {
		return w.badTransition("select rows")
	}
	if len(indexes) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "select at least one row to import")
	}
	seen := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(w.Result.Transactions) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row index %d out of range", idx))
		}
		if seen[idx] {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row index %d selected twice", idx))
		}
		seen[idx] = true
	}
	w.Selected = indexes
	w.State = StateCategorize
	return nil
}

// AssignCategory sets the category for a selected row. Assignments are
// pre-filled from suggestions by the caller and remain overridable until
// commit.
func (w *Wizard) AssignCategory(index int, categoryID string) error {
	if w.State != StateCategorize {
		return w.badTransition("assign category")
	}
	if !w.isSelected(index) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row index %d is not selected", index))
	}
	if categoryID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	w.Assignments[index] = categoryID
	return nil
}

// Commit persists all selected rows as one batch. On a persistence error
// the wizard returns to Categorize so the commit can be retried with the
// same idempotency key; no partial state is ever assumed.
func (w *Wizard) Commit(committer Committer) error {
	if w.State != StateCategorize {
		return w.badTransition("commit")
	}
	for _, idx := range w.Selected {
		if w.Assignments[idx] == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("row index %d has no category assigned", idx))
		}
	}

	rows := make([]CommitRow, 0, len(w.Selected))
	for _, idx := range w.Selected {
		c := w.Result.Transactions[idx]
		rows = append(rows, CommitRow{
			Date:        c.Date,
			AmountCents: c.AmountCents(),
			Description: c.Description,
			CategoryID:  w.Assignments[idx],
		})
	}

	w.State = StateCommitting
	inserted, err := committer.Commit(w.HouseholdID, w.IdempotencyKey, w.FileName, rows)
	if err != nil {
		w.State = StateCategorize
		return apperrors.Wrap(apperrors.ErrImportCommitFailed, err)
	}
	w.Inserted = inserted
	w.State = StateDone
	return nil
}

// Cancel discards all candidate state. Permitted from any non-terminal
// state; nothing was persisted before Committing, so there is nothing to
// undo.
func (w *Wizard) Cancel() error {
	if w.terminal() {
		return w.badTransition("cancel")
	}
	w.State = StateUpload
	w.FileName = ""
	w.Result = nil
	w.Selected = nil
	w.Assignments = make(map[int]string)
	w.IdempotencyKey = uuid.New()
	return nil
}

// Fail marks the wizard terminally failed. Reachable from any non-terminal
// state.
func (w *Wizard) Fail(reason string) error {
	if w.terminal() {
		return w.badTransition("fail")
	}
	w.State = StateFailed
	w.FailureReason = reason
	return nil
}

func (w *Wizard) terminal() bool {
	return w.State == StateDone || w.State == StateFailed
}

func (w *Wizard) isSelected(index int) bool {
	for _, idx := range w.Selected {
		if idx == index {
			return true
		}
	}
	return false
}

func (w *Wizard) badTransition(op string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("cannot %s in state %q", op, w.State))
}
