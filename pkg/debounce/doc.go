// Package debounce delays propagation of a rapidly changing value until it has
// been stable for a fixed window. Each new value cancels the pending timer and
// schedules a fresh one, so at most one timer is outstanding per Debouncer and
// listeners only ever observe the value that survived a full quiet window.
package debounce
