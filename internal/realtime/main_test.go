package realtime

import (
	"os"
	"testing"

	"TourWatch/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
