package testdrop

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/testdrop/pkg/errors"
)

// Item is a value tracked by a TestDrop, created by TestDrop.NewItem.
//
// Calling Release marks the item as dropped. It must happen exactly once;
// a second call, including one on a copy of the Item, panics.
type Item struct {
	id     int
	parent *TestDrop
}

// ID returns the id of this item.
func (i Item) ID() int {
	return i.id
}

// Equal reports whether both items share the id and the owning TestDrop.
func (i *Item) Equal(other *Item) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.id == other.id && i.parent == other.parent
}

// Release records the item as dropped in its TestDrop.
func (i *Item) Release() {
	if i.parent == nil {
		panic(errors.Newf(errors.ErrInternal, "%v was not created by a TestDrop", i).
			WithDetail("id", i.id))
	}
	var site string
	if i.parent.trackCallers {
		site = callerSite(2)
	}
	i.parent.addDrop(i.id, site)
}

func (i Item) String() string {
	return fmt.Sprintf("Item { id: %d }", i.id)
}

// GoString makes %#v match %v.
func (i Item) GoString() string {
	return i.String()
}

func callerSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
