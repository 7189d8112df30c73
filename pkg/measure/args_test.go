package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedArgs(t *testing.T) {
	args := NamedArgs([]string{"x", "y"}, []any{1, "two"})
	assert.Equal(t, Args{{Name: "x", Value: 1}, {Name: "y", Value: "two"}}, args)
}

func TestNamedArgs_DegradesWhenNamesUnavailable(t *testing.T) {
	// Name discovery failing must yield an empty snapshot, never an
	// error that could affect the call.
	assert.Empty(t, NamedArgs(nil, []any{1, 2}))
	assert.Empty(t, NamedArgs([]string{"x"}, []any{1, 2}))
	assert.Empty(t, NamedArgs([]string{"x", "y"}, nil))
}

func TestStructArgs(t *testing.T) {
	type request struct {
		UserID int
		Query  string
		secret string
	}

	args := StructArgs(request{UserID: 7, Query: "q", secret: "hidden"})
	assert.Equal(t, Args{{Name: "UserID", Value: 7}, {Name: "Query", Value: "q"}}, args)

	// Pointers are followed; unexported fields are skipped.
	args = StructArgs(&request{UserID: 9})
	assert.Equal(t, Args{{Name: "UserID", Value: 9}, {Name: "Query", Value: ""}}, args)
}

func TestStructArgs_NonStructDegrades(t *testing.T) {
	assert.Empty(t, StructArgs(nil))
	assert.Empty(t, StructArgs(42))
	assert.Empty(t, StructArgs((*struct{ A int })(nil)))
}
