package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ormcookbook/recipes/internal/cli"
	"github.com/ormcookbook/recipes/port/repository"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T) {
	for _, key := range []string{"COOKBOOK_DRIVER", "COOKBOOK_DSN", "COOKBOOK_PATH", "COOKBOOK_LOG_LEVEL", "COOKBOOK_METRICS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	unsetEnv(t)
	cmd := cli.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := cli.NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "cookbook", cmd.Use)

	for _, name := range []string{"migrate", "list", "create", "rename", "delete", "certify"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	for _, flag := range []string{"config", "driver", "dsn", "path", "metrics"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestGolden_memory(t *testing.T) {
	cases := map[string][]string{
		"migrate_memory":         {"migrate", "--driver", "memory"},
		"list_memory":            {"list", "--driver", "memory"},
		"create_memory_metrics":  {"create", "Intern", "--employee", "--driver", "memory", "--metrics"},
		"rename_memory_metrics":  {"rename", "2", "Part Time", "--driver", "memory", "--metrics"},
		"delete_memory":          {"delete", "999", "--driver", "memory"},
		"certify_memory":         {"certify", "--driver", "memory"},
		"certify_memory_metrics": {"certify", "--driver", "memory", "--metrics"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, args...)
			require.NoError(t, err)
			golden(t).Assert(t, name, []byte(out))
		})
	}
}

func TestBoltPersistsBetweenCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr.bolt")

	out, err := execute(t, "create", "Seasonal", "--exempt", "--driver", "bolt", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out)

	out, err = execute(t, "rename", "1000", "Seasonal Worker", "--driver", "bolt", "--path", path)
	require.NoError(t, err)
	assert.Equal(t, "renamed 1000\n", out)

	out, err = execute(t, "list", "--driver", "bolt", "--path", path)
	require.NoError(t, err)
	golden(t).Assert(t, "list_bolt_after_create", []byte(out))

	_, err = execute(t, "delete", "4242", "--driver", "bolt", "--path", path)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBoltRenameFallsBackWithoutRecordingUpdateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr.bolt")

	_, err := execute(t, "create", "Seasonal", "--driver", "bolt", "--path", path)
	require.NoError(t, err)

	out, err := execute(t, "rename", "1000", "Seasonal Worker", "--driver", "bolt", "--path", path, "--metrics")
	require.NoError(t, err)
	golden(t).Assert(t, "rename_bolt_metrics", []byte(out))
	assert.NotContains(t, out, `operation="UpdateName"`)
}

func TestSQLiteCertify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr.db")

	out, err := execute(t, "certify", "--driver", "sqlite", "--path", path)
	require.NoError(t, err)
	golden(t).Assert(t, "certify_memory", []byte(out))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: memory\nmetrics: true\n"), 0600))

	out, err := execute(t, "delete", "3", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 3 (missing keys: no-op)\n")
	assert.Contains(t, out, `operation="DeleteByKey",outcome="ok"} 1`)
}

func TestErrors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := execute(t, "list", "--driver", "oracle")
		assert.Error(t, err)
	})

	t.Run("rename of a missing key", func(t *testing.T) {
		_, err := execute(t, "rename", "4242", "Ghost", "--driver", "memory")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("non numeric key", func(t *testing.T) {
		_, err := execute(t, "delete", "one", "--driver", "memory")
		assert.ErrorIs(t, err, repository.ErrInvalidArgument)
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		_, err := execute(t, "list", "--driver", "postgres")
		assert.Error(t, err)
	})
}
