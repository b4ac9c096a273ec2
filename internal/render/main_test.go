package render

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// Debug and trace events are noise under go test.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}
