// Package field implements the per-field units of a form: text style inputs,
// password, dropdown, searchable dropdown, radio group, date picker, file
// upload and button.
//
// Every unit owns a Controller, an explicit finite-state record holding the
// touched flag, the debounced value and the current issues. A field starts
// Pristine and moves to Touched on its first blur (text controls) or first
// committed selection (choice controls); it never returns to Pristine. While
// Pristine no issue is ever surfaced. Once Touched, every settled value is
// re-checked and the result drives State, the presentational snapshot a
// renderer consumes.
//
// OnChange listeners run synchronously on every change; validation runs on
// the debounced value only.
package field
