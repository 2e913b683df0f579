package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MASKA_PRIMARY.ENV", "local")
	t.Setenv("MASKA_SERVER.PORT", "0")
	t.Setenv("MASKA_SERVER.READ_TIMEOUT", "5")
	t.Setenv("MASKA_SERVER.WRITE_TIMEOUT", "5")
	t.Setenv("MASKA_SERVER.IDLE_TIMEOUT", "5")
	t.Setenv("MASKA_SERVER.CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("MASKA_DATABASE.DRIVER", "memory")
	t.Setenv("MASKA_OBSERVABILITY.LOGGING.LEVEL", "error")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
}

func TestSeedCommand_PrintsMembers(t *testing.T) {
	setMemoryEnv(t)

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"seed"})

	require.NoError(t, root.ExecuteContext(t.Context()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Member(id=1, firstName=John, lastName=Doe, cin=PA123456"))
	assert.Contains(t, lines[4], "cin=PA123460")
}

func TestMigrateCommand_RejectsMemoryDriver(t *testing.T) {
	setMemoryEnv(t)

	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.ErrorIs(t, root.ExecuteContext(t.Context()), errMemoryDriver)
}
