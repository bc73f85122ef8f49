package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidDeviceID(t *testing.T) {
	for _, id := range []string{"dev1", "my-phone", "a.b_c-D", "0", "___"} {
		assert.True(t, ValidDeviceID(id), id)
	}
	for _, id := range []string{"", "my phone", "a/b", "dev!", "é", "a\nb", "dev1?x"} {
		assert.False(t, ValidDeviceID(id), id)
	}
}

func TestStringToInt64(t *testing.T) {
	assert.Equal(t, int64(1700000000), StringToInt64("1700000000"))
	assert.Equal(t, int64(0), StringToInt64(""))
	assert.Equal(t, int64(0), StringToInt64("abc"))
	assert.Equal(t, int64(0), StringToInt64("-5"))
}
