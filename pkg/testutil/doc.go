// Package testutil provides helpers for tests that exercise testdrop
// failures.
//
// Every fatal testdrop condition panics with a *errors.DropError. The helpers
// here recover that panic and check its code, so a test can assert that a
// failure happens at the exact call that breaks an invariant.
package testutil
