package guard_test

import (
	"errors"
	"testing"

	"foodorders/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Constructed(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("should not be returned")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_ZeroValue(t *testing.T) {
	var g guard.ConstructorGuard

	sentinel := errors.New("command must be created via its constructor")
	assert.Equal(t, sentinel, g.Validate(sentinel))
	assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
}
