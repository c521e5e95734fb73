package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitEmptyLevelDefaultsToInfo(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", log.GetLevel())
	}
}

func TestInitParsesLevel(t *testing.T) {
	if err := Init("debug"); err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", log.GetLevel())
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
