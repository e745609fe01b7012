package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag
	ModeMove
	ModeTextInput
	ModeCharInput
	ModeTitleInput
	ModeScriptInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveTXT
	FileOpSaveANSI
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewCanvas
	ConfirmCloseBuffer
	ConfirmRemoveLayer
	ConfirmOverwriteFile
	ConfirmChooseExportType
)

type Tool int

const (
	ToolPencil Tool = iota
	ToolFill
	ToolPipette
	ToolLine
	ToolRectangle
	ToolEllipse
	ToolSelect
)

const (
	defaultWidth  = 80
	defaultHeight = 25
)
