package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales("en-US")
	assert.Equal("line 3 '0x10' failed", From("line %d '%v' failed", 3, "0x10"))
	assert.Equal("invalid", From("invalid"))
}

func TestSetLocales(t *testing.T) {
	assert := assert.New(t)

	SetLocales("en-US")
	tag := Language()

	SetLocales()
	assert.Equal(tag, Language())
}
