package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/varstack/varstack/util"
)

func TestRemoveDuplicatesFromList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, util.RemoveDuplicatesFromList([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, util.RemoveDuplicatesFromList([]string{}))
}
