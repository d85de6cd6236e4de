package ledger

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
)

// RecurringType is the cadence of a recurring template.
type RecurringType string

const (
	Weekly     RecurringType = "weekly"
	Biweekly   RecurringType = "biweekly"
	Monthly    RecurringType = "monthly"
	Bimonthly  RecurringType = "bimonthly"
	Quarterly  RecurringType = "quarterly"
	Semiannual RecurringType = "semiannual"
	Annual     RecurringType = "annual"
)

// ValidRecurringType reports whether t is a known cadence.
func ValidRecurringType(t RecurringType) bool {
	switch t {
	case Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Semiannual, Annual:
		return true
	}
	return false
}

// Recurrence marks an entry or task as a recurring template. It is metadata
// only; nothing materializes occurrences on a schedule.
type Recurrence struct {
	IsRecurring bool          `json:"isRecurring"`
	Type        RecurringType `json:"recurringType,omitempty"`
	Day         *int          `json:"recurringDay,omitempty"`
	EndDate     *time.Time    `json:"recurringEndDate,omitempty"`
}

// Normalize validates r. A non-recurring descriptor is reset to its zero
// value so stale cadence fields are never stored.
func (r *Recurrence) Normalize() error {
	if !r.IsRecurring {
		*r = Recurrence{}
		return nil
	}
	if !ValidRecurringType(r.Type) {
		return domain.Validationf("unknown recurring type %q", r.Type)
	}
	if r.Day != nil {
		day := *r.Day
		if r.Type == Weekly {
			if day < 0 || day > 6 {
				return domain.Validationf("weekly recurring day must be between 0 and 6")
			}
		} else if day < 1 || day > 31 {
			return domain.Validationf("recurring day must be between 1 and 31")
		}
	}
	return nil
}
