package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ormcookbook/recipes/port/repository/async"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestFuture(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		release = testcase.Let(s, func(t *testcase.T) chan struct{} { return make(chan struct{}) })
		value   = testcase.Let(s, func(t *testcase.T) int { return t.Random.Int() })
		expErr  = testcase.LetValue[error](s, nil)
		future  = testcase.Let(s, func(t *testcase.T) *async.Future[int] {
			ch, v, err := release.Get(t), value.Get(t), expErr.Get(t)
			return async.Go(func() (int, error) {
				<-ch
				return v, err
			})
		})
	)

	s.Test("Await yields the result once the operation finished", func(t *testcase.T) {
		close(release.Get(t))
		got, err := future.Get(t).Await(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, value.Get(t), got)
	})

	s.Test("Done is closed after the result is available", func(t *testcase.T) {
		f := future.Get(t)
		select {
		case <-f.Done():
			t.Fatal("future resolved before the operation finished")
		default:
		}
		close(release.Get(t))
		t.Eventually(func(t *testcase.T) {
			select {
			case <-f.Done():
			default:
				t.FailNow()
			}
		})
	})

	s.When("the operation fails", func(s *testcase.Spec) {
		expErr.Let(s, func(t *testcase.T) error { return errors.New(t.Random.String()) })

		s.Then("the error is returned by Await", func(t *testcase.T) {
			close(release.Get(t))
			_, err := future.Get(t).Await(context.Background())
			assert.ErrorIs(t, err, expErr.Get(t))
		})
	})

	s.When("the await context is done before the result", func(s *testcase.Spec) {
		s.Then("Await returns the context error", func(t *testcase.T) {
			ch := release.Get(t)
			t.Defer(func() { close(ch) })
			ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
			defer cancel()
			_, err := future.Get(t).Await(ctx)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})
	})
}

func TestAwaitAll(t *testing.T) {
	var fs []*async.Future[int]
	for i := 0; i < 5; i++ {
		fs = append(fs, async.Go(func() (int, error) { return i, nil }))
	}
	got, err := async.AwaitAll(context.Background(), fs...)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)

	expErr := errors.New("boom")
	fs = append(fs, async.Go(func() (int, error) { return 0, expErr }))
	_, err = async.AwaitAll(context.Background(), fs...)
	assert.ErrorIs(t, err, expErr)
}
