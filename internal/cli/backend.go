package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ormcookbook/recipes/adapter/instrumented"
	"github.com/ormcookbook/recipes/adapter/localstorage"
	"github.com/ormcookbook/recipes/adapter/memory"
	"github.com/ormcookbook/recipes/adapter/mysql"
	"github.com/ormcookbook/recipes/adapter/postgresql"
	"github.com/ormcookbook/recipes/adapter/sqlite"
	"github.com/ormcookbook/recipes/internal/config"
	"github.com/ormcookbook/recipes/internal/hrsql"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/prometheus/client_golang/prometheus"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/flsql"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// Backend is an opened driver with its classification repository wrapped in metrics.
type Backend struct {
	Driver          string
	Classifications *instrumented.Repository[*hr.EmployeeClassification]
	Registry        *prometheus.Registry

	migrate func(ctx context.Context) error
	close   func() error
}

func (b *Backend) Migrate(ctx context.Context) error {
	if b.migrate == nil {
		return nil
	}
	return b.migrate(ctx)
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by c.Driver. SQL and bolt backends are migrated on open.
func Open(ctx context.Context, c config.Config) (*Backend, error) {
	b := &Backend{Driver: c.Driver, Registry: prometheus.NewRegistry()}
	metrics, err := instrumented.NewMetrics(b.Registry)
	if err != nil {
		return nil, err
	}

	sqlBackend := func(conn flsql.Connection, d hrsql.Dialect) {
		recipes := hrsql.NewRecipes(conn, d)
		b.Classifications = instrumented.Wrap[*hr.EmployeeClassification](c.Driver, recipes.Classifications, metrics)
		b.migrate = func(ctx context.Context) error { return hrsql.Migrate(ctx, conn, d) }
		b.close = conn.Close
	}

	switch c.Driver {
	case "memory":
		b.Classifications = instrumented.Wrap[*hr.EmployeeClassification](c.Driver, memory.NewClassificationRepository(memory.NewMemory()), metrics)

	case "bolt":
		l, err := localstorage.Open(c.Path)
		if err != nil {
			return nil, err
		}
		b.Classifications = instrumented.Wrap[*hr.EmployeeClassification](c.Driver, localstorage.ClassificationRepository{Local: l}, metrics)
		b.close = l.Close

	case "sqlite":
		conn, _, err := sqlite.Open(ctx, c.Path)
		if err != nil {
			return nil, err
		}
		sqlBackend(conn, hrsql.SQLite)

	case "mysql":
		conn, _, err := mysql.Open(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		sqlBackend(conn, hrsql.MySQL)

	case "postgres":
		conn, err := postgresql.ConnectSQL(c.DSN)
		if err != nil {
			return nil, err
		}
		if _, err := postgresql.Open(ctx, conn); err != nil {
			return nil, errorkit.Merge(err, conn.Close())
		}
		sqlBackend(conn, hrsql.Postgres)

	case "pgx":
		conn, err := postgresql.Connect(c.DSN)
		if err != nil {
			return nil, err
		}
		if _, err := postgresql.Open(ctx, conn); err != nil {
			return nil, errorkit.Merge(err, conn.Close())
		}
		sqlBackend(conn, hrsql.Postgres)

	default:
		return nil, config.ErrInvalid.F("unknown driver %q", c.Driver)
	}

	logger.Debug(ctx, "backend opened", logging.Field("driver", c.Driver))
	return b, nil
}

// PrintCounters writes the operation counters in a stable order, one per line.
func (b *Backend) PrintCounters(w io.Writer) error {
	mfs, err := b.Registry.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	slices.Sort(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
