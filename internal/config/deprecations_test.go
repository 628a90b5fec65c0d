package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeprecatedConfigWarnings(t *testing.T) {
	warnings := DeprecatedConfigWarnings(`
[resize]
border = 2

[window]
min_width = 10
`)
	assert.Len(t, warnings, 2)
	assert.Empty(t, DeprecatedConfigWarnings("[resize]\nmin_width = 20\n"))
	assert.Empty(t, DeprecatedConfigWarnings("not toml ["))
}
