package hrsql_test

//go:generate mockgen -destination mock_connection_test.go -package hrsql_test go.llib.dev/frameless/pkg/flsql Connection

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/ormcookbook/recipes/internal/hrsql"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

type rowStub struct {
	key int
	err error
}

func (r rowStub) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int)) = r.key
	return nil
}

type txKey struct{}

type resultStub int64

func (r resultStub) RowsAffected() (int64, error) { return int64(r), nil }

func TestClassificationRepository_nilArgumentsNeverReachTheConnection(t *testing.T) {
	s := testcase.NewSpec(t)

	// the mock has no expectations, so any call on it fails the test
	conn := testcase.Let(s, func(t *testcase.T) *MockConnection {
		return NewMockConnection(gomock.NewController(t))
	})
	dialect := testcase.Let(s, func(t *testcase.T) hrsql.Dialect {
		return t.Random.SliceElement([]hrsql.Dialect{hrsql.Postgres, hrsql.SQLite, hrsql.MySQL}).(hrsql.Dialect)
	})

	s.Describe("mutable", func(s *testcase.Spec) {
		subject := testcase.Let(s, func(t *testcase.T) *hrsql.ClassificationRepository {
			return hrsql.NewClassificationRepository(conn.Get(t), dialect.Get(t))
		})

		s.Test("Create", func(t *testcase.T) {
			_, err := subject.Get(t).Create(context.Background(), nil)
			assert.ErrorIs(t, err, repository.ErrInvalidArgument)
		})

		s.Test("Update", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).Update(context.Background(), nil), repository.ErrInvalidArgument)
		})

		s.Test("Delete", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).Delete(context.Background(), nil), repository.ErrInvalidArgument)
		})

		s.Test("UpdateName", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).UpdateName(context.Background(), nil), repository.ErrInvalidArgument)
		})

		s.Test("UpdateFlags", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).UpdateFlags(context.Background(), nil), repository.ErrInvalidArgument)
		})
	})

	s.Describe("immutable", func(s *testcase.Spec) {
		subject := testcase.Let(s, func(t *testcase.T) *hrsql.ReadOnlyClassificationRepository {
			return hrsql.NewReadOnlyClassificationRepository(conn.Get(t), dialect.Get(t))
		})

		s.Test("Create", func(t *testcase.T) {
			_, err := subject.Get(t).Create(context.Background(), nil)
			assert.ErrorIs(t, err, repository.ErrInvalidArgument)
		})

		s.Test("Update", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).Update(context.Background(), nil), repository.ErrInvalidArgument)
		})

		s.Test("Delete", func(t *testcase.T) {
			assert.ErrorIs(t, subject.Get(t).Delete(context.Background(), nil), repository.ErrInvalidArgument)
		})
	})

	s.Test("employee batch with a nil element", func(t *testcase.T) {
		subject := hrsql.EmployeeRepository{Connection: conn.Get(t), Dialect: dialect.Get(t)}
		err := subject.InsertBatch(context.Background(), []*hr.EmployeeSimple{{FirstName: "Ann"}, nil})
		assert.ErrorIs(t, err, repository.ErrInvalidArgument)
	})
}

func TestClassificationRepository_backendFailure(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		ctrl    = testcase.Let(s, func(t *testcase.T) *gomock.Controller { return gomock.NewController(t) })
		conn    = testcase.Let(s, func(t *testcase.T) *MockConnection { return NewMockConnection(ctrl.Get(t)) })
		expErr  = testcase.Let(s, func(t *testcase.T) error { return errors.New(t.Random.String()) })
		subject = testcase.Let(s, func(t *testcase.T) *hrsql.ClassificationRepository {
			return hrsql.NewClassificationRepository(conn.Get(t), hrsql.Postgres)
		})
	)

	s.Test("Update propagates the error unchanged", func(t *testcase.T) {
		conn.Get(t).EXPECT().
			ExecContext(gomock.Any(), gomock.Any(), "Name", false, true, 1042).
			Return(nil, expErr.Get(t))

		err := subject.Get(t).Update(context.Background(), &hr.EmployeeClassification{Key: 1042, Name: "Name", IsEmployee: true})
		assert.ErrorIs(t, err, expErr.Get(t))
	})

	s.Test("Create propagates the error unchanged", func(t *testcase.T) {
		conn.Get(t).EXPECT().
			QueryRowContext(gomock.Any(), gomock.Any(), "Name", true, false).
			Return(rowStub{err: expErr.Get(t)})

		ec := &hr.EmployeeClassification{Name: "Name", IsExempt: true}
		_, err := subject.Get(t).Create(context.Background(), ec)
		assert.ErrorIs(t, err, expErr.Get(t))
		assert.Equal(t, 0, ec.Key)
	})

	s.Test("DeleteByKey of a missing key is a no-op unless strict", func(t *testcase.T) {
		conn.Get(t).EXPECT().
			ExecContext(gomock.Any(), gomock.Any(), 7).
			Return(resultStub(0), nil).
			Times(2)

		assert.NoError(t, subject.Get(t).DeleteByKey(context.Background(), 7))
		subject.Get(t).StrictDelete = true
		assert.ErrorIs(t, subject.Get(t).DeleteByKey(context.Background(), 7), repository.ErrNotFound)
	})
}

func TestClassificationRepository_lastInsertID(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	gomock.InOrder(
		conn.EXPECT().BeginTx(ctx).Return(txCtx, nil),
		conn.EXPECT().ExecContext(txCtx, gomock.Any(), "Name", false, true).Return(resultStub(1), nil),
		conn.EXPECT().QueryRowContext(txCtx, hrsql.MySQL.LastInsertID).Return(rowStub{key: 1000}),
		conn.EXPECT().CommitTx(txCtx).Return(nil),
	)

	ec := &hr.EmployeeClassification{Name: "Name", IsEmployee: true}
	key, err := hrsql.NewClassificationRepository(conn, hrsql.MySQL).Create(ctx, ec)
	assert.NoError(t, err)
	assert.Equal(t, 1000, key)
	assert.Equal(t, 1000, ec.Key)
}

func TestClassificationRepository_lastInsertIDRollback(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := NewMockConnection(ctrl)
	ctx := context.Background()
	expErr := errors.New("boom")

	gomock.InOrder(
		conn.EXPECT().BeginTx(ctx).Return(ctx, nil),
		conn.EXPECT().ExecContext(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, expErr),
		conn.EXPECT().RollbackTx(ctx).Return(nil),
	)

	_, err := hrsql.NewClassificationRepository(conn, hrsql.MySQL).Create(ctx, &hr.EmployeeClassification{Name: "Name"})
	assert.ErrorIs(t, err, expErr)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"postgres", "sqlite", "mysql"} {
		d, ok := hrsql.Lookup(name)
		assert.True(t, ok)
		assert.Equal(t, name, d.Name)
	}
	_, ok := hrsql.Lookup("oracle")
	assert.False(t, ok)
}
