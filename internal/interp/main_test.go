package interp

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Debug and trace events are noise under go test.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestRunLogsNothingBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	s, _ := newSession(t)
	require.NoError(t, eval(t, s, "to sq :n repeat 4 [fd :n rt 90] end sq 10"))
	assert.Empty(t, buf.String())
}
