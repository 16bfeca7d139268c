package task

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

const msPerDay = 24 * 60 * 60 * 1000

// Validate checks a task at the mutation boundary. Anything it rejects
// never reaches the categorization engine, so the engine itself can
// assume well-formed input. The returned error wraps ErrInvalid and
// carries per-field detail.
func Validate(t Task) error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(t.Description) == "" {
		errs = errs.Append("description", fmt.Errorf("must not be empty"))
	}

	if t.Recurring && !t.Recurrence.Valid() {
		errs = errs.Append("recurrence", fmt.Errorf("required for recurring tasks, got %q", t.Recurrence))
	}
	if !t.Recurring && t.Recurrence != "" {
		errs = errs.Append("recurrence", fmt.Errorf("only valid on recurring tasks"))
	}

	if t.DueTime != nil && (*t.DueTime < 0 || *t.DueTime >= msPerDay) {
		errs = errs.Append("due_time", fmt.Errorf("must be within [0, %d) ms since midnight, got %d", msPerDay, *t.DueTime))
	}

	if t.ReminderLead != nil && *t.ReminderLead < 0 {
		errs = errs.Append("reminder_lead", fmt.Errorf("must be >= 0 minutes, got %d", *t.ReminderLead))
	}

	// A reminder-day mask only means something for daily recurrence.
	if !t.ReminderDays.IsEmpty() && !t.IsDaily() {
		errs = errs.Append("reminder_days", fmt.Errorf("only valid on daily recurring tasks"))
	}

	if t.ManualPosition != nil && *t.ManualPosition < 0 {
		errs = errs.Append("manual_position", fmt.Errorf("must be >= 0, got %d", *t.ManualPosition))
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
