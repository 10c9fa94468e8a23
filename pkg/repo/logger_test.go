package repo

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger_ReachesStore(t *testing.T) {
	r := initRepo(t)
	core, logs := observer.New(zapcore.DebugLevel)
	r.SetLogger(zap.New(core))

	commitFiles(t, r, "first", map[string]string{"a.txt": "a"})

	if n := logs.FilterMessage("object written").Len(); n != 3 {
		t.Errorf("store logged %d object writes, want 3", n)
	}
	if logs.FilterMessage("ref updated").Len() != 1 {
		t.Error("ref update not logged through the new logger")
	}

	r.SetLogger(nil)
	if r.Logger == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
	commitFiles(t, r, "second", map[string]string{"a.txt": "b"})
}
