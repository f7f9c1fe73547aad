package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	names := []string{
		"app.users.UserTest.test_create",
		"app.users.UserTest.test_delete",
		"app.billing.PaymentTest.test_charge",
		"app.billing.PaymentServiceTest.test_refund",
	}

	tests := []struct {
		name     string
		pattern  string
		expected int
	}{
		{name: "empty pattern returns all", pattern: "", expected: 4},
		{name: "wildcard pattern matches suffix", pattern: "*.test_create", expected: 1},
		{name: "wildcard pattern matches substring", pattern: "*Payment*", expected: 2},
		{name: "simple contains match", pattern: "UserTest", expected: 2},
		{name: "ordered parts", pattern: "*billing*refund", expected: 1},
		{name: "no matches", pattern: "*NonExistent*", expected: 0},
		{name: "parts out of order", pattern: "*refund*billing*", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(names, tt.pattern)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty name list", func(t *testing.T) {
		assert.Empty(t, filter.FilterByName([]string{}, "*Test*"))
	})

	t.Run("only wildcards", func(t *testing.T) {
		assert.Len(t, filter.FilterByName([]string{"a.B.test_c"}, "*"), 1)
	})
}
