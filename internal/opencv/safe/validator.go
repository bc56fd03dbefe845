package safe

import (
	"fmt"
)

// MaxDimension caps width and height accepted by the frame path.
const MaxDimension = 32768

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

// ValidateChannels checks the Mat is usable and carries exactly want channels.
func ValidateChannels(mat *Mat, want int, operation string) error {
	if err := ValidateMatForOperation(mat, operation); err != nil {
		return err
	}

	if got := mat.Channels(); got != want {
		return fmt.Errorf("%s requires %d channels, got %d", operation, want, got)
	}

	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

// ValidateFrame checks an interleaved buffer against its declared geometry.
func ValidateFrame(length, width, height, channels int) error {
	if err := ValidateDimensions(width, height, "frame"); err != nil {
		return err
	}

	if want := width * height * channels; length != want {
		return fmt.Errorf("frame buffer holds %d bytes, %dx%dx%d needs %d",
			length, width, height, channels, want)
	}

	return nil
}
