package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0 VND", FormatVND(0))
	assert.Equal(t, "350.000 VND", FormatVND(350000))
	assert.Equal(t, "-1.250.000 VND", FormatVND(-1250000))
}
