package traindata

import (
	"fmt"
	"io/fs"
)

// ResourceNotFoundError reports a training data path that does not exist.
type ResourceNotFoundError struct {
	Path string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("training data resource %q does not exist", e.Path)
}

// Unwrap makes the error match fs.ErrNotExist in errors.Is checks.
func (e *ResourceNotFoundError) Unwrap() error {
	return fs.ErrNotExist
}
