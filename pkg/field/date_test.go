package field_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestDatePicker_SelectEmitsISOAndDisplay(t *testing.T) {
	dp, err := field.NewDatePicker(field.DatePickerConfig{Name: "dob", Location: time.UTC}, field.WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	defer dp.Close()

	if year, month := dp.View(); year != 2024 || month != time.March {
		t.Fatalf("expected view on current month, got %d %s", year, month)
	}

	if err := dp.Select(2024, time.January, 15); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := dp.Value(); got != "2024-01-15T00:00:00.000Z" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := dp.Display(); got != "15 January 2024" {
		t.Fatalf("unexpected display %q", got)
	}
	if !dp.Touched() || dp.CalendarOpen() {
		t.Fatalf("select should touch and close the calendar")
	}
	if st := dp.State(); st.Value != "15 January 2024" {
		t.Fatalf("state should carry display text, got %q", st.Value)
	}
}

func TestDatePicker_LocalMidnightInUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	dp, err := field.NewDatePicker(field.DatePickerConfig{Name: "d", Location: cet}, field.WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	defer dp.Close()

	if err := dp.Select(2024, time.January, 15); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := dp.Value(); got != "2024-01-14T23:00:00.000Z" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := dp.Display(); got != "15 January 2024" {
		t.Fatalf("display should stay local, got %q", got)
	}
}

func TestDatePicker_InitialValue(t *testing.T) {
	dp, err := field.NewDatePicker(field.DatePickerConfig{
		Name:     "d",
		Value:    "2023-07-04T00:00:00Z",
		Location: time.UTC,
	}, field.WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	defer dp.Close()

	if year, month := dp.View(); year != 2023 || month != time.July {
		t.Fatalf("expected view on initial month, got %d %s", year, month)
	}
	if got := dp.Value(); got != "2023-07-04T00:00:00.000Z" {
		t.Fatalf("unexpected normalised value %q", got)
	}

	if _, err := field.NewDatePicker(field.DatePickerConfig{Name: "bad", Value: "yesterday"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDatePicker_RejectsInvalidDays(t *testing.T) {
	dp, err := field.NewDatePicker(field.DatePickerConfig{Name: "d", Location: time.UTC}, field.WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	defer dp.Close()

	if err := dp.Select(2023, time.February, 29); err == nil {
		t.Fatalf("expected error for 29 February 2023")
	}
	if err := dp.Select(2024, time.Month(13), 1); err == nil {
		t.Fatalf("expected error for month 13")
	}
	if dp.Touched() || dp.Value() != "" {
		t.Fatalf("rejected select must not change state")
	}
}

func TestDatePicker_RequiredAfterDismiss(t *testing.T) {
	dp, err := field.NewDatePicker(field.DatePickerConfig{Name: "d", Required: true, Location: time.UTC}, field.WithNow(fixedNow))
	if err != nil {
		t.Fatalf("new date picker: %v", err)
	}
	defer dp.Close()

	dp.OpenCalendar()
	dp.CloseCalendar()
	if got := dp.Error(); got != "This field is required" {
		t.Fatalf("expected required after dismiss, got %q", got)
	}
}

func TestCalendarGrid(t *testing.T) {
	cells := field.Calendar(2024, time.February, time.UTC)
	if len(cells) != 4+29 {
		t.Fatalf("expected 33 cells, got %d", len(cells))
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 1, 2}, cells[:6]); diff != "" {
		t.Fatalf("leading cells mismatch (-want +got):\n%s", diff)
	}
	if cells[len(cells)-1] != 29 {
		t.Fatalf("expected last day 29, got %d", cells[len(cells)-1])
	}

	if got := field.Calendar(2024, time.September, time.UTC)[0]; got != 1 {
		t.Fatalf("September 2024 starts on Sunday, got leading %d", got)
	}
}

func TestDaysInAndYears(t *testing.T) {
	for _, tc := range []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.February, 28},
		{2024, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	} {
		if got := field.DaysIn(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysIn(%d, %s) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}

	years := field.Years(2024)
	if len(years) != 20 || years[0] != 2014 || years[19] != 2033 {
		t.Fatalf("unexpected years %v", years)
	}
}
