// Package instrumented decorates recipe repositories with prometheus metrics.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/prometheus/client_golang/prometheus"
	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrUnsupported errorkit.Error = "operation is not supported by the repository"

const namespace = "cookbook"

// Metrics holds the collectors shared by every instrumented repository.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_operations_total",
			Help:      "Number of repository operations by backend, operation and outcome.",
		}, []string{"backend", "operation", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_operation_duration_seconds",
			Help:      "Latency of repository operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
	}
	for _, c := range []prometheus.Collector{m.Operations, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// outcome classifies an operation result for the outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (m *Metrics) observe(backend, operation string, start time.Time, err error) {
	m.Operations.WithLabelValues(backend, operation, outcome(err)).Inc()
	m.Duration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

func Wrap[M any](backend string, next repository.SingleModelCrud[M], m *Metrics) *Repository[M] {
	return &Repository[M]{Backend: backend, Next: next, Metrics: m}
}

// Repository is a SingleModelCrud that records every call of Next.
// Partial updates are forwarded when Next supports them, otherwise they fail with ErrUnsupported,
// which is not recorded as an operation of the backend.
type Repository[M any] struct {
	Backend string
	Next    repository.SingleModelCrud[M]
	Metrics *Metrics
}

var (
	_ repository.SingleModelCrud[*hr.EmployeeClassification] = &Repository[*hr.EmployeeClassification]{}
	_ repository.PartialUpdate[*hr.EmployeeClassification]   = &Repository[*hr.EmployeeClassification]{}
)

func (r *Repository[M]) Create(ctx context.Context, model M) (_ int, rErr error) {
	defer r.observe("Create", time.Now(), &rErr)
	return r.Next.Create(ctx, model)
}

func (r *Repository[M]) GetByKey(ctx context.Context, key int) (_ M, _ bool, rErr error) {
	defer r.observe("GetByKey", time.Now(), &rErr)
	return r.Next.GetByKey(ctx, key)
}

func (r *Repository[M]) GetAll(ctx context.Context) (_ []M, rErr error) {
	defer r.observe("GetAll", time.Now(), &rErr)
	return r.Next.GetAll(ctx)
}

func (r *Repository[M]) FindByName(ctx context.Context, name string) (_ M, _ bool, rErr error) {
	defer r.observe("FindByName", time.Now(), &rErr)
	return r.Next.FindByName(ctx, name)
}

func (r *Repository[M]) Update(ctx context.Context, model M) (rErr error) {
	defer r.observe("Update", time.Now(), &rErr)
	return r.Next.Update(ctx, model)
}

func (r *Repository[M]) Delete(ctx context.Context, model M) (rErr error) {
	defer r.observe("Delete", time.Now(), &rErr)
	return r.Next.Delete(ctx, model)
}

func (r *Repository[M]) DeleteByKey(ctx context.Context, key int) (rErr error) {
	defer r.observe("DeleteByKey", time.Now(), &rErr)
	return r.Next.DeleteByKey(ctx, key)
}

func (r *Repository[M]) UpdateName(ctx context.Context, msg *hr.EmployeeClassificationNameUpdater) (rErr error) {
	defer r.observe("UpdateName", time.Now(), &rErr)
	nu, ok := r.Next.(repository.NameUpdater)
	if !ok {
		return ErrUnsupported.F("%s: UpdateName", r.Backend)
	}
	return nu.UpdateName(ctx, msg)
}

func (r *Repository[M]) UpdateFlags(ctx context.Context, msg *hr.EmployeeClassificationFlagsUpdater) (rErr error) {
	defer r.observe("UpdateFlags", time.Now(), &rErr)
	fu, ok := r.Next.(repository.FlagsUpdater)
	if !ok {
		return ErrUnsupported.F("%s: UpdateFlags", r.Backend)
	}
	return fu.UpdateFlags(ctx, msg)
}

func (r *Repository[M]) UpdateFlagsByKey(ctx context.Context, key int, isExempt, isEmployee bool) (rErr error) {
	defer r.observe("UpdateFlagsByKey", time.Now(), &rErr)
	fu, ok := r.Next.(repository.FlagsUpdater)
	if !ok {
		return ErrUnsupported.F("%s: UpdateFlagsByKey", r.Backend)
	}
	return fu.UpdateFlagsByKey(ctx, key, isExempt, isEmployee)
}

// MissingKeyPolicy reports the policy of Next, which is MissingKeyNoOp when Next doesn't declare one.
func (r *Repository[M]) MissingKeyPolicy() repository.MissingKeyPolicy {
	if p, ok := r.Next.(interface {
		MissingKeyPolicy() repository.MissingKeyPolicy
	}); ok {
		return p.MissingKeyPolicy()
	}
	return repository.MissingKeyNoOp
}

func (r *Repository[M]) observe(operation string, start time.Time, err *error) {
	if r.Metrics == nil || errors.Is(*err, ErrUnsupported) {
		return
	}
	r.Metrics.observe(r.Backend, operation, start, *err)
}
