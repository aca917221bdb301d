package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestFactories(t *testing.T) {
	// factories inherit the global level at build time
	old := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(old)

	l := New("ipc")
	if l.GetPrefix() != "ipc" {
		t.Errorf("New prefix = %q, want ipc", l.GetPrefix())
	}
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("New level = %v, want debug", l.GetLevel())
	}

	d := Default("cli")
	if d.GetPrefix() != "cli" {
		t.Errorf("Default prefix = %q, want cli", d.GetPrefix())
	}

	c := NewWithConfig("x", log.WarnLevel, true, false, log.JSONFormatter)
	if c.GetLevel() != log.WarnLevel {
		t.Errorf("NewWithConfig level = %v, want warn", c.GetLevel())
	}
}
