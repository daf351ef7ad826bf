package field

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultDatePlaceholder is shown before a date is picked.
	DefaultDatePlaceholder = "Select a date"
	// ISOLayout is the millisecond precision UTC layout the picker emits.
	ISOLayout = "2006-01-02T15:04:05.000Z"
	// DisplayLayout renders the picked date for humans.
	DisplayLayout = "2 January 2006"
)

// Weekdays are the calendar column headers, Sunday first.
var Weekdays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// DatePickerConfig describes a calendar date field. Value, when set, must be
// an RFC 3339 timestamp; Location is the zone whose midnight is picked and
// defaults to time.Local.
type DatePickerConfig struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Required    bool
	Location    *time.Location
}

// DatePicker picks a calendar day and emits it as an ISO-8601 UTC timestamp.
type DatePicker struct {
	base
	loc *time.Location
	now func() time.Time

	mu       sync.Mutex
	selected time.Time
	hasDate  bool
	view     time.Time
	open     bool
}

// NewDatePicker constructs the picker. The calendar opens on the month of
// the initial value, or on the current month.
func NewDatePicker(cfg DatePickerConfig, opts ...Option) (*DatePicker, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = DefaultDatePlaceholder
	}

	o := newOptions(DefaultDelay, opts)
	dp := &DatePicker{
		base: newBase(cfg.Name, cfg.Label, placeholder, WidgetDate, cfg.Required),
		loc:  loc,
		now:  o.now,
	}

	initial := strings.TrimSpace(cfg.Value)
	dp.view = monthStart(o.now().In(loc))
	if initial != "" {
		parsed, err := time.Parse(time.RFC3339Nano, initial)
		if err != nil {
			return nil, fmt.Errorf("field: parse date %q: %w", initial, err)
		}
		local := parsed.In(loc)
		dp.selected = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		dp.hasDate = true
		dp.view = monthStart(local)
		initial = dp.selected.UTC().Format(ISOLayout)
	}

	ctrlOpts := append(o.controllerOptions(), WithInitialValue(initial))
	dp.ctrl = NewController(dp.name, requiredChecker(cfg.Required), ctrlOpts...)
	return dp, nil
}

// Select picks a day of the given month. The emitted value is the UTC
// instant of local midnight, so it may fall on the previous calendar day in
// UTC for zones east of Greenwich.
func (dp *DatePicker) Select(year int, month time.Month, day int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("field: invalid month %d", month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return fmt.Errorf("field: invalid day %d for %s %d", day, month, year)
	}

	picked := time.Date(year, month, day, 0, 0, 0, 0, dp.loc)
	dp.mu.Lock()
	dp.selected = picked
	dp.hasDate = true
	dp.view = monthStart(picked)
	dp.open = false
	dp.mu.Unlock()

	dp.ctrl.Commit(picked.UTC().Format(ISOLayout))
	return nil
}

// Clear removes the picked date.
func (dp *DatePicker) Clear() {
	dp.mu.Lock()
	dp.selected = time.Time{}
	dp.hasDate = false
	dp.mu.Unlock()
	dp.ctrl.Commit("")
}

// Selected returns the picked local date.
func (dp *DatePicker) Selected() (time.Time, bool) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.selected, dp.hasDate
}

// Display renders the picked date as "15 January 2024", or "" when empty.
func (dp *DatePicker) Display() string {
	selected, ok := dp.Selected()
	if !ok {
		return ""
	}
	return selected.Format(DisplayLayout)
}

// SetView moves the calendar to another month without picking a date.
func (dp *DatePicker) SetView(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("field: invalid month %d", month)
	}
	dp.mu.Lock()
	dp.view = time.Date(year, month, 1, 0, 0, 0, 0, dp.loc)
	dp.mu.Unlock()
	return nil
}

// View returns the month the calendar shows.
func (dp *DatePicker) View() (int, time.Month) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.view.Year(), dp.view.Month()
}

// OpenCalendar shows the calendar.
func (dp *DatePicker) OpenCalendar() {
	dp.mu.Lock()
	dp.open = true
	dp.mu.Unlock()
}

// CloseCalendar hides the calendar; dismissing it counts as a blur.
func (dp *DatePicker) CloseCalendar() {
	dp.mu.Lock()
	dp.open = false
	dp.mu.Unlock()
	dp.ctrl.Blur()
}

// CalendarOpen reports whether the calendar is shown.
func (dp *DatePicker) CalendarOpen() bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.open
}

// Grid returns the day cells of the viewed month.
func (dp *DatePicker) Grid() []int {
	year, month := dp.View()
	return Calendar(year, month, dp.loc)
}

// Years lists the selectable years around the current one.
func (dp *DatePicker) Years() []int {
	return Years(dp.now().In(dp.loc).Year())
}

// State returns the presentational snapshot; Value holds the display text.
func (dp *DatePicker) State() State {
	return dp.state(dp.Display())
}

// Calendar returns the cells of a month grid starting on Sunday: zero marks
// a leading blank, then 1..DaysIn(year, month).
func Calendar(year int, month time.Month, loc *time.Location) []int {
	if loc == nil {
		loc = time.Local
	}
	lead := int(time.Date(year, month, 1, 0, 0, 0, 0, loc).Weekday())
	days := DaysIn(year, month)
	cells := make([]int, lead, lead+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	return cells
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Years returns the ten years before current through the nine after it.
func Years(current int) []int {
	out := make([]int, 0, 20)
	for y := current - 10; y < current+10; y++ {
		out = append(out, y)
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
