package menu

import "fmt"

// NotFoundError is returned when an operation names a menu item id
// that is not present in the store. Through normal editing flows this
// is a programming error, not an expected runtime event.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.ID)
}

// IndexOutOfRangeError is returned when a category or add-on item
// position does not exist.
type IndexOutOfRangeError struct {
	Kind  string // "category" or "item"
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (len %d)", e.Kind, e.Index, e.Len)
}
