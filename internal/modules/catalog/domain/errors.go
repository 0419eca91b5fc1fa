package domain

import "fmt"

// RefreshError reports which collection broke a refresh. The cache keeps its
// previous snapshot whenever one is returned.
type RefreshError struct {
	Collection Collection
	Err        error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh %s: %v", e.Collection, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
