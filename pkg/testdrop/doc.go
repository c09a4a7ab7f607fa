// Package testdrop helps test release-related issues:
//
//   - Assert that an item was released
//   - Assert that an item was not released
//   - Assert that an item was not released more than once (checked implicitly)
//
// This kind of test is useful for code that manages the lifetime of other
// values, like reference-counted handles, pools and containers.
//
// Go has no destructors, so an *Item is released by calling its Release
// method. Code under test owns that call; the registry only records it.
// Releasing an item twice, directly or through a copy of the value, panics
// with a DOUBLE_DROP error.
//
// Typical usage:
//
//	td := testdrop.New()
//	id, item := td.NewItem()
//	rc := NewShared(item) // Release is called when the last reference goes
//	clone := rc.Clone()
//	clone.Release()
//	td.AssertNoDrop(id)
//	rc.Release()
//	td.AssertDrop(id)
//
// All failures panic with a *errors.DropError. A TestDrop is not safe for
// concurrent use.
package testdrop
