package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ansiedit/internal/logger"
	doc "ansiedit/internal/model"
	"ansiedit/internal/render"
)

func (op FileOperation) extension() string {
	switch op {
	case FileOpSaveTXT:
		return ".txt"
	case FileOpSaveANSI:
		return ".ans"
	default:
		return ".png"
	}
}

func (op FileOperation) String() string {
	switch op {
	case FileOpSaveTXT:
		return "Export text"
	case FileOpSaveANSI:
		return "Export ANSI"
	default:
		return "Export PNG"
	}
}

// exportPath adds the extension for op when filename has none.
func exportPath(op FileOperation, filename string) string {
	if !strings.HasSuffix(strings.ToLower(filename), op.extension()) {
		filename += op.extension()
	}
	return filename
}

func exportCanvas(c *doc.Canvas, op FileOperation, filename string) error {
	switch op {
	case FileOpSavePNG:
		return render.SavePNG(c, filename)
	case FileOpSaveTXT:
		return os.WriteFile(filename, []byte(render.PlainText(c)), 0644)
	case FileOpSaveANSI:
		return os.WriteFile(filename, []byte(render.ANSI(c)), 0644)
	}
	return fmt.Errorf("unknown export %d", op)
}

func (m *model) export(filename string) error {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return fmt.Errorf("no canvas available")
	}
	var err error
	buf.handle.View(func(c *doc.Canvas) { err = exportCanvas(c, m.fileOp, filename) })
	if err != nil {
		return err
	}
	buf.filename = filename
	absPath, _ := filepath.Abs(filename)
	logger.L(m.ctx).Info("exported", zap.String("path", absPath), zap.Stringer("format", m.fileOp))
	m.succeed("Exported to %s", absPath)
	return nil
}
