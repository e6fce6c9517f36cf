package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{"no change", []string{"a", "b"}, []string{"b", "a"}, nil, nil},
		{"replace all", []string{"a"}, []string{"b", "c"}, []string{"b", "c"}, []string{"a"}},
		{"clear", []string{"a", "b"}, []string{}, nil, []string{"a", "b"}},
		{"from empty", nil, []string{"x"}, []string{"x"}, nil},
		{"duplicates ignored", []string{"a", "a"}, []string{"b", "b"}, []string{"b"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffIDs(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}

func TestDiffNamed(t *testing.T) {
	current := []namedRow{
		{ID: "t1", Name: "magic"},
		{ID: "t2", Name: "isekai"},
		{ID: "t3", Name: "magic"},
	}

	create, drop := diffNamed(current, []string{"magic", "school"})

	assert.Equal(t, []string{"school"}, create)
	// first "magic" row keeps its identity, its duplicate and "isekai" go
	assert.Equal(t, []string{"t2", "t3"}, drop)
}

func TestDiffNamed_EmptyDesiredDropsEverything(t *testing.T) {
	create, drop := diffNamed([]namedRow{{ID: "t1", Name: "a"}}, nil)
	assert.Empty(t, create)
	assert.Equal(t, []string{"t1"}, drop)
}
