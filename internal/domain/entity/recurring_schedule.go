package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeekdaySet is a set of ISO weekday numbers (1 = Monday .. 7 = Sunday),
// persisted as a comma-separated string.
type WeekdaySet []int

// Value implements driver.Valuer
func (w WeekdaySet) Value() (driver.Value, error) {
	if len(w) == 0 {
		return "", nil
	}
	parts := make([]string, len(w))
	for i, d := range w {
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("weekday out of range: %d", d)
		}
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner
func (w *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return errors.New(fmt.Sprint("failed to scan weekday set:", value))
	}

	if raw == "" {
		*w = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid weekday %q: %w", p, err)
		}
		days = append(days, d)
	}
	sort.Ints(days)
	*w = days
	return nil
}

// Contains reports whether the set includes the given ISO weekday.
func (w WeekdaySet) Contains(isoWeekday int) bool {
	for _, d := range w {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// IsValid reports whether the set is non-empty with all days in 1..7.
func (w WeekdaySet) IsValid() bool {
	if len(w) == 0 {
		return false
	}
	for _, d := range w {
		if d < 1 || d > 7 {
			return false
		}
	}
	return true
}

// ISOWeekday converts a time.Time weekday to ISO numbering, 1 = Monday
// through 7 = Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// RecurringSchedule is a weekly recurrence template owned by a trainer. It
// never holds signups itself; the generator expands it into concrete
// Session instances.
type RecurringSchedule struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TrainerID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Location        string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	DaysOfWeek      WeekdaySet `gorm:"type:varchar(20);not null" json:"days_of_week"`
	StartTime       string     `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime         string     `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM"
	Capacity        int        `gorm:"not null" json:"capacity"`
	WaitlistEnabled bool       `gorm:"not null;default:false" json:"waitlist_enabled"`
	Price           float64    `gorm:"not null;default:0" json:"price"`
	ValidFrom       time.Time  `gorm:"not null" json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	Active          bool       `gorm:"not null;default:true;index" json:"active"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Trainer  User      `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Sessions []Session `gorm:"foreignKey:ScheduleID" json:"sessions,omitempty"`
}

func (RecurringSchedule) TableName() string {
	return "recurring_schedules"
}

func (s *RecurringSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AppliesOn reports whether the template produces an instance on the given
// calendar date: the weekday must match and the date must fall inside the
// validity window.
func (s *RecurringSchedule) AppliesOn(date time.Time) bool {
	if !s.DaysOfWeek.Contains(ISOWeekday(date)) {
		return false
	}
	if date.Before(s.ValidFrom) {
		return false
	}
	if s.ValidUntil != nil && date.After(*s.ValidUntil) {
		return false
	}
	return true
}
