// Package repositorytest contains assertion helpers for working with repository contract subjects.
package repositorytest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/testcase/assert"
)

func IsPresent[M any](tb testing.TB, r repository.KeyFinder[M], ctx context.Context, key int) M {
	tb.Helper()
	m, found, err := r.GetByKey(ctx, key)
	assert.NoError(tb, err)
	assert.True(tb, found, assert.MessageF("it was expected that %T with key %d will be findable", m, key))
	return m
}

func IsAbsent[M any](tb testing.TB, r repository.KeyFinder[M], ctx context.Context, key int) {
	tb.Helper()
	_, found, err := r.GetByKey(ctx, key)
	assert.NoError(tb, err)
	assert.False(tb, found, assert.MessageF("it was expected that %T with key %d will be absent", *new(M), key))
}

// NotListed asserts that GetAll doesn't yield the given key.
func NotListed[M hr.Keyed](tb testing.TB, r repository.AllFinder[M], ctx context.Context, key int) {
	tb.Helper()
	all, err := r.GetAll(ctx)
	assert.NoError(tb, err)
	for _, m := range all {
		assert.NotEqual(tb, key, m.EntityKey(), assert.Message("deleted key is still listed by GetAll"))
	}
}

type creator[M any] interface {
	repository.Creator[M]
	repository.KeyDeleter
}

// Create persists the model and registers a cleanup that removes the row at the end of the test.
func Create[M any](tb testing.TB, r creator[M], ctx context.Context, m M) int {
	tb.Helper()
	key, err := r.Create(ctx, m)
	assert.NoError(tb, err, assert.Message("step: Create"))
	tb.Cleanup(func() { TryDelete(tb, r, context.Background(), key) })
	return key
}

// IsGenerated asserts that the key is from the store's generated key range.
func IsGenerated(tb testing.TB, threshold, key int) {
	tb.Helper()
	assert.True(tb, threshold <= key,
		assert.MessageF("generated key expected to be at least %d, but got %d", threshold, key))
}

// TryDelete removes the row by key and tolerates when it is already gone.
func TryDelete(tb testing.TB, r repository.KeyDeleter, ctx context.Context, key int) {
	tb.Helper()
	err := r.DeleteByKey(ctx, key)
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return
	}
	tb.Logf("cleanup of key %d failed: %v", key, err)
}

// HasValues asserts the classification's state.
func HasValues[M hr.Classification](tb testing.TB, m M, key int, name string, isExempt, isEmployee bool) {
	tb.Helper()
	assert.Equal(tb, key, m.EntityKey(), assert.Message("key"))
	assert.Equal(tb, name, m.EntityName(), assert.Message("name"))
	gotExempt, gotEmployee := m.Flags()
	assert.Equal(tb, isExempt, gotExempt, assert.Message("IsExempt"))
	assert.Equal(tb, isEmployee, gotEmployee, assert.Message("IsEmployee"))
}

// Keys maps a model list to their keys, preserving order.
func Keys[M hr.Keyed](ms []M) []int {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.EntityKey())
	}
	return out
}

func Describe[M hr.Classification](m M) string {
	isExempt, isEmployee := m.Flags()
	return fmt.Sprintf("#%d %q exempt=%t employee=%t", m.EntityKey(), m.EntityName(), isExempt, isEmployee)
}
