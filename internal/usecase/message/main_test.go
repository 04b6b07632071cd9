package message

import (
	"os"
	"testing"

	"hamrah-bazaar/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("test"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
