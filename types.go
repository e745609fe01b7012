package main

import (
	"context"

	"ansiedit/internal/edit"
	doc "ansiedit/internal/model"
)

type Buffer struct {
	handle   *edit.Handle
	filename string
	panX     int
	panY     int
}

type model struct {
	ctx                context.Context
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	helpScroll         int
	tool               Tool
	brush              edit.Brush
	matcher            doc.Channels
	paletteIndex       int
	selectStart        *doc.Position
	mouseDown          bool
	gestureTool        Tool
	lastPlot           doc.Position
	inputText          string
	filename           string
	fileOp             FileOperation
	confirmAction      ConfirmAction
	errorMessage       string
	successMessage     string
	textStartX         int
	config             *Config
}
