package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestValidateFrame(t *testing.T) {
	assert.NoError(t, ValidateFrame(5*3*4, 5, 3, 4))
	assert.ErrorContains(t, ValidateFrame(59, 5, 3, 4), "needs 60")
	assert.ErrorContains(t, ValidateFrame(0, 0, 3, 4), "invalid dimensions")
	assert.ErrorContains(t, ValidateFrame(0, -1, 3, 4), "invalid dimensions")
	assert.ErrorContains(t, ValidateFrame(0, MaxDimension+1, 1, 4), "exceed maximum")
}

func TestValidateChannels(t *testing.T) {
	mat, err := NewMat(2, 2, gocv.MatTypeCV8UC3, "bgr")
	if err != nil {
		t.Fatal(err)
	}
	defer mat.Close()

	assert.NoError(t, ValidateChannels(mat, 3, "bgr to gray"))
	assert.ErrorContains(t, ValidateChannels(mat, 1, "canny"), "requires 1 channels, got 3")
	assert.ErrorContains(t, ValidateChannels(nil, 1, "canny"), "nil")
}
