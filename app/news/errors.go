package news

import (
	"errors"
	"fmt"
)

// ErrRegionNotFound is returned when a region id does not resolve.
var ErrRegionNotFound = errors.New("region not found")

// NotFoundError carries the region id that failed to resolve. It matches
// ErrRegionNotFound with errors.Is.
type NotFoundError struct {
	RegionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("region %q not found", e.RegionID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRegionNotFound
}
