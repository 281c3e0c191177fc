package repositorycontract

import (
	"slices"

	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// ScalarValue certifies the single column queries over the seeded divisions.
func ScalarValue(subject repository.ScalarValue, opts ...Option[hr.Division]) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)

	s.Test("the name of a seed division resolves back to its key", func(t *testcase.T) {
		for _, key := range c.SeedKeys {
			name, found, err := subject.GetDivisionName(c.MakeContext(t), key)
			assert.NoError(t, err)
			assert.True(t, found, assert.MessageF("step: GetDivisionName(%d)", key))
			assert.NotEmpty(t, name)

			got, found, err := subject.GetDivisionKey(c.MakeContext(t), name)
			assert.NoError(t, err)
			assert.True(t, found, assert.MessageF("step: GetDivisionKey(%q)", name))
			assert.Equal(t, key, got)
		}
	})

	s.Test("division names are listed in order", func(t *testcase.T) {
		names, err := subject.GetDivisionNames(c.MakeContext(t))
		assert.NoError(t, err)
		assert.True(t, len(c.SeedKeys) <= len(names))
		assert.True(t, slices.IsSorted(names), assert.MessageF("names are not ordered: %v", names))
		for _, key := range c.SeedKeys {
			name, _, err := subject.GetDivisionName(c.MakeContext(t), key)
			assert.NoError(t, err)
			assert.Contain(t, names, name)
		}
	})

	s.Test("unknown values are reported as absent", func(t *testcase.T) {
		_, found, err := subject.GetDivisionKey(c.MakeContext(t), "Unknown "+uuid.NewString())
		assert.NoError(t, err)
		assert.False(t, found)

		_, found, err = subject.GetDivisionName(c.MakeContext(t), -1)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	return s.AsSuite("ScalarValue")
}
