package testdrop

import "github.com/arthur-debert/testdrop/pkg/logging"

// Scope creates a TestDrop, runs fn with it and closes it when fn returns or
// panics. Items that escape fn cannot be released afterwards. The closed
// registry is returned for assertions.
func Scope(fn func(td *TestDrop), opts ...Option) *TestDrop {
	td := New(opts...)
	done := logging.LogOperationStart(td.logger, "scope")
	defer done()
	defer td.Close()

	fn(td)
	return td
}

// Track creates an item, runs fn with it and releases it when fn returns.
// fn may pass the item around but must not release it itself.
func (td *TestDrop) Track(fn func(id int, item *Item)) int {
	id, item := td.NewItem()
	defer item.Release()

	fn(id, item)
	return id
}
