package cli

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/ormcookbook/recipes/adapter/instrumented"
	"github.com/ormcookbook/recipes/port/hr"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/spf13/cobra"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const ErrCertification errorkit.Error = "certification failed"

// run opens the backend for the command, and prints the counters afterwards when --metrics is set.
func run(opts *RootOptions, cmd *cobra.Command, blk func(ctx context.Context, b *Backend, w io.Writer) error) (rErr error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := Open(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer errorkit.Finish(&rErr, b.Close)

	w := cmd.OutOrStdout()
	if err := blk(ctx, b, w); err != nil {
		return err
	}
	if opts.Config.Metrics {
		return b.PrintCounters(w)
	}
	return nil
}

func parseKey(arg string) (int, error) {
	key, err := strconv.Atoi(arg)
	if err != nil {
		return 0, repository.ErrInvalidArgument.F("key %q is not a number", arg)
	}
	return key, nil
}

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the HR schema and its seed rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				if err := b.Migrate(ctx); err != nil {
					return err
				}
				logger.Info(ctx, "migration finished", logging.Field("driver", b.Driver))
				_, err := fmt.Fprintf(w, "migrated %s\n", b.Driver)
				return err
			})
		},
	}
}

func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the employee classifications ordered by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				all, err := b.Classifications.GetAll(ctx)
				if err != nil {
					return err
				}
				slices.SortFunc(all, func(a, b *hr.EmployeeClassification) int { return cmp.Compare(a.Key, b.Key) })
				for _, ec := range all {
					if _, err := fmt.Fprintf(w, "%d\t%s\texempt=%t\temployee=%t\n", ec.Key, ec.Name, ec.IsExempt, ec.IsEmployee); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func NewCreateCommand(opts *RootOptions) *cobra.Command {
	var isExempt, isEmployee bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an employee classification and print its key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				key, err := b.Classifications.Create(ctx, &hr.EmployeeClassification{
					Name:       args[0],
					IsExempt:   isExempt,
					IsEmployee: isEmployee,
				})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, key)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&isExempt, "exempt", false, "the classification is exempt")
	cmd.Flags().BoolVar(&isEmployee, "employee", false, "the classification is an employee")
	return cmd
}

func NewRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <key> <name>",
		Short: "Change the name of an employee classification",
		Long:  "rename uses a partial name update when the backend supports it, otherwise it reads and updates the whole row.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0])
			if err != nil {
				return err
			}
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				if err := rename(ctx, b.Classifications, key, args[1]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "renamed %d\n", key)
				return err
			})
		},
	}
}

func rename(ctx context.Context, r *instrumented.Repository[*hr.EmployeeClassification], key int, name string) error {
	ec, found, err := r.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return repository.ErrMissingKey("employee_classification", key)
	}
	err = r.UpdateName(ctx, &hr.EmployeeClassificationNameUpdater{Key: key, Name: name})
	if !errors.Is(err, instrumented.ErrUnsupported) {
		return err
	}
	ec.Name = name
	return r.Update(ctx, ec)
}

func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete an employee classification by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0])
			if err != nil {
				return err
			}
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				if err := b.Classifications.DeleteByKey(ctx, key); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "deleted %d (missing keys: %s)\n", key, b.Classifications.MissingKeyPolicy())
				return err
			})
		},
	}
}

func NewCertifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "certify",
		Short: "Run the create, find, update and delete smoke sequence against the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, b *Backend, w io.Writer) error {
				return certify(ctx, b.Classifications, w)
			})
		},
	}
}

type step struct {
	name string
	do   func() error
}

func certify(ctx context.Context, r repository.SingleModelCrud[*hr.EmployeeClassification], w io.Writer) error {
	var (
		suffix = uuid.NewString()
		ec     = &hr.EmployeeClassification{Name: "Test " + suffix}
		key    int
	)
	steps := []step{
		{"create", func() (err error) {
			key, err = r.Create(ctx, ec)
			if err == nil && key < repository.GeneratedKeyThreshold {
				err = ErrCertification.F("generated key %d is below %d", key, repository.GeneratedKeyThreshold)
			}
			return err
		}},
		{"get by key", func() error {
			got, found, err := r.GetByKey(ctx, key)
			if err == nil && (!found || got.Name != ec.Name) {
				err = ErrCertification.F("created row is not readable by key %d", key)
			}
			return err
		}},
		{"find by name", func() error {
			got, found, err := r.FindByName(ctx, ec.Name)
			if err == nil && (!found || got.Key != key) {
				err = ErrCertification.F("created row is not readable by name %q", ec.Name)
			}
			return err
		}},
		{"update", func() error {
			ec.Name = "Updated " + suffix
			if err := r.Update(ctx, ec); err != nil {
				return err
			}
			got, found, err := r.GetByKey(ctx, key)
			if err == nil && (!found || got.Name != ec.Name) {
				err = ErrCertification.F("update of key %d is not visible", key)
			}
			return err
		}},
		{"delete by key", func() error {
			if err := r.DeleteByKey(ctx, key); err != nil {
				return err
			}
			_, found, err := r.GetByKey(ctx, key)
			if err == nil && found {
				err = ErrCertification.F("key %d is still present after delete", key)
			}
			return err
		}},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			fmt.Fprintf(w, "FAIL %s\n", s.name)
			return err
		}
		if _, err := fmt.Fprintf(w, "ok   %s\n", s.name); err != nil {
			return err
		}
	}
	return nil
}
