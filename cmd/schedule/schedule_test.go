package schedule

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dresse/eksponent-test/internal/conf"
)

func TestCommandRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []int{0, -5} {
		settings := &conf.Settings{}
		settings.Output.SQLite.Enabled = true
		settings.Output.SQLite.Path = ":memory:"
		settings.Import.PollInterval = 60

		cmd := Command(settings)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.SetArgs([]string{"--interval", strconv.Itoa(interval)})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll interval must be positive")
	}
}
