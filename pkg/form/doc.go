// Package form aggregates field units into a submittable form.
//
// The Form is the submission gate: Submit settles every pending value,
// checks that each required field carries a non-blank value and only then
// hands the collected values to the submit callback. A blocked submission
// returns a *SubmitError listing one "{label} is required" message per empty
// required field, in the order the fields were added.
package form
