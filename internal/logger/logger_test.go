package logger

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := NewContext(context.Background(), l)
	if L(ctx) != l {
		t.Error("logger not recovered from context")
	}
	if L(context.Background()) != zap.L() {
		t.Error("missing logger should fall back to the global one")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ansiedit.log")
	l, err := New(true, path)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("hello")
	_ = l.Sync()
}
