// Package safe wraps gocv.Mat with a validity flag and a finalizer so a
// leaked Close() does not leak native OpenCV memory, matching the
// teacher's internal/opencv/safe package (grounded in
// resoltico-y/internal/opencv/safe).
package safe

import "fmt"

// ValidateMatForOperation rejects a nil, invalidated, empty, or
// zero-dimensioned Mat before an OpenCV call touches it, naming the
// calling operation in the error for easier tracing.
func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return nil
}