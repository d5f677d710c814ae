package frame

import "fmt"

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d for operation: %s",
			ErrInvalidArgument, width, height, operation)
	}

	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d exceed maximum size for operation: %s",
			ErrInvalidArgument, width, height, operation)
	}

	return nil
}

// ValidateForOperation rejects nil or malformed frames.
func ValidateForOperation(f *Frame, operation string) error {
	if f == nil {
		return fmt.Errorf("%w: frame is nil for operation: %s", ErrInvalidArgument, operation)
	}

	if f.width <= 0 || f.height <= 0 || len(f.pix) != f.width*f.height {
		return fmt.Errorf("%w: frame has invalid layout %dx%d (len %d) for operation: %s",
			ErrInvalidArgument, f.width, f.height, len(f.pix), operation)
	}

	return nil
}

// ValidatePair checks that src and dst are both usable and the same size.
func ValidatePair(src, dst *Frame, operation string) error {
	return ValidateSameSize(operation, src, dst)
}

// ValidateSameSize checks every frame for validity and that all of them match
// the first one's dimensions.
func ValidateSameSize(operation string, frames ...*Frame) error {
	for _, f := range frames {
		if err := ValidateForOperation(f, operation); err != nil {
			return err
		}
	}

	if len(frames) == 0 {
		return nil
	}

	ref := frames[0]
	for _, f := range frames[1:] {
		if !ref.SameSize(f) {
			return fmt.Errorf("%w: dimension mismatch %dx%d vs %dx%d for operation: %s",
				ErrInvalidArgument, ref.width, ref.height, f.width, f.height, operation)
		}
	}

	return nil
}
