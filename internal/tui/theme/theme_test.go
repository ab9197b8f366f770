package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	assert.Equal(t, "dark", ByName("dark").Name)
	assert.Equal(t, "light", ByName("light").Name)
	assert.Equal(t, "light", ByName("solarized").Name)
}

func TestSet(t *testing.T) {
	t.Cleanup(func() { Active = Light })

	Set("dark")
	assert.Equal(t, Dark, Active)
	Set("")
	assert.Equal(t, Light, Active)
}
