// Package validation evaluates a single field value against its rule set.
//
// Two policies coexist. Validate applies a fixed precedence (required,
// minimum length, maximum length, format) and returns only the first failing
// rule, which is what text, email and number inputs surface. CheckPassword
// evaluates every password constraint independently and reports all active
// violations at once. CheckFile runs the synchronous upload checks (required,
// type, size) with first-failure-wins semantics.
//
// Outcomes are values (Issue) rather than errors: a failing rule is normal
// user feedback, never an exceptional condition.
package validation
