package repositorycontract

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/frameless/port/option"
)

type Option[M any] option.Option[Config[M]]

type Config[M any] struct {
	// MakeContext is responsible to return back a background context for testing with the repository contract subject.
	MakeContext func(testing.TB) context.Context
	// Scenario builds and changes the classification fixtures.
	// It is required for the classification based suites.
	Scenario Scenario[M]
	// People builds the fixtures of the Sorting suite.
	People PersonScenario[M]
	// MakeName [optional] returns a unique classification name.
	//
	// default: "Test " followed by a random UUID
	MakeName func(testing.TB) string
	// KeyThreshold [optional] is the lowest key which the subject may generate.
	//
	// default: repository.GeneratedKeyThreshold
	KeyThreshold int
	// SeedKeys [optional] are the keys of the rows that the subject's store must always hold.
	//
	// default: repository.SeedKeys
	SeedKeys []int
	// MissingKeyPolicy tells the contract how DeleteByKey behaves with a key that doesn't exist.
	MissingKeyPolicy repository.MissingKeyPolicy
	// Concurrency [optional] is the number of concurrent writers in the key uniqueness tests.
	//
	// default: 8
	Concurrency int
}

func (c *Config[M]) Init() {
	c.MakeContext = func(testing.TB) context.Context { return context.Background() }
	c.MakeName = func(testing.TB) string { return "Test " + uuid.NewString() }
	c.KeyThreshold = repository.GeneratedKeyThreshold
	c.SeedKeys = repository.SeedKeys
	c.Concurrency = 8
}

func (c Config[M]) Configure(config *Config[M]) {
	if c.MakeContext != nil {
		config.MakeContext = c.MakeContext
	}
	if c.Scenario != nil {
		config.Scenario = c.Scenario
	}
	if c.People != nil {
		config.People = c.People
	}
	if c.MakeName != nil {
		config.MakeName = c.MakeName
	}
	if c.KeyThreshold != 0 {
		config.KeyThreshold = c.KeyThreshold
	}
	if c.SeedKeys != nil {
		config.SeedKeys = c.SeedKeys
	}
	if c.MissingKeyPolicy != repository.MissingKeyNoOp {
		config.MissingKeyPolicy = c.MissingKeyPolicy
	}
	if c.Concurrency != 0 {
		config.Concurrency = c.Concurrency
	}
}

// MissingKey is a shorthand option to declare the subject's MissingKeyPolicy.
func MissingKey[M any](policy repository.MissingKeyPolicy) Option[M] {
	return option.Func[Config[M]](func(c *Config[M]) { c.MissingKeyPolicy = policy })
}

func (c Config[M]) scenario(tb testing.TB) Scenario[M] {
	tb.Helper()
	if c.Scenario == nil {
		tb.Fatalf("repositorycontract: missing Scenario for %T", *new(M))
	}
	return c.Scenario
}

func (c Config[M]) people(tb testing.TB) PersonScenario[M] {
	tb.Helper()
	if c.People == nil {
		tb.Fatalf("repositorycontract: missing People scenario for %T", *new(M))
	}
	return c.People
}
