package hierarchy

import "fmt"

// RemoteListError is returned when page ids could not be listed. No
// partial hierarchy is produced in that case.
type RemoteListError struct {
	Err error
}

func (e *RemoteListError) Error() string {
	return fmt.Sprintf("failed to load pages: %v", e.Err)
}

func (e *RemoteListError) Unwrap() error {
	return e.Err
}

// RemoteResolveError describes a single page that could not be resolved.
// It is logged and the page is left out of the hierarchy.
type RemoteResolveError struct {
	PageID string
	Err    error
}

func (e *RemoteResolveError) Error() string {
	return fmt.Sprintf("failed to resolve page %s: %v", e.PageID, e.Err)
}

func (e *RemoteResolveError) Unwrap() error {
	return e.Err
}
