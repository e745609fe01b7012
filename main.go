package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ansiedit/internal/edit"
	"ansiedit/internal/logger"
	doc "ansiedit/internal/model"
	"ansiedit/internal/render"
	"ansiedit/internal/script"
)

func main() {
	config := loadConfig()

	verbose := flag.Bool("v", false, "debug logging")
	width := flag.Int("w", config.Width, "canvas width")
	height := flag.Int("h", config.Height, "canvas height")
	paletteName := flag.String("palette", config.Palette, "palette: dos, ega, c64, xterm or viewdata")
	scriptFile := flag.String("script", "", "script to run on the new canvas")
	output := flag.String("o", "", "export to `file` (.png, .ans or .txt) and exit")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid canvas size %dx%d", *width, *height)
	}
	if _, err := doc.BuiltinPalette(*paletteName); err != nil {
		log.Fatal(err)
	}
	config.Width, config.Height, config.Palette = *width, *height, *paletteName

	l, err := logger.New(*verbose, config.LogPath())
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)
	ctx := logger.NewContext(context.Background(), l)

	m := initialModel(ctx, config)

	if *scriptFile != "" {
		src, err := os.ReadFile(*scriptFile)
		if err != nil {
			log.Fatal(err)
		}
		res, err := script.Run(ctx, m.getCurrentBuffer().handle, string(src))
		for _, line := range res.Output {
			fmt.Println(line)
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	if *output != "" {
		m.fileOp = fileOpForPath(*output)
		if err := m.export(*output); err != nil {
			log.Fatal(err)
		}
		fmt.Println(m.successMessage)
		return
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		l.Error("program exited", zap.Error(err))
		log.Fatal(err)
	}
}

func fileOpForPath(name string) FileOperation {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return FileOpSaveTXT
	case ".ans", ".ansi":
		return FileOpSaveANSI
	default:
		return FileOpSavePNG
	}
}

func initialModel(ctx context.Context, config *Config) model {
	m := model{
		ctx:     ctx,
		config:  config,
		mode:    ModeNormal,
		tool:    ToolPencil,
		brush:   edit.Brush{Mode: edit.DrawSolid, Char: edit.FullBlock, UseFore: true, UseBack: true},
		matcher: doc.ChannelAll,
	}
	for i, name := range doc.BuiltinPaletteNames {
		if name == config.Palette {
			m.paletteIndex = i
		}
	}
	m.addNewBuffer(m.newCanvas(), "")
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}

		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeDrag:
			m.handleDragKey(msg)
		case ModeMove:
			m.handleMoveKey(msg)
		case ModeTextInput:
			m.handleTextKey(msg)
		case ModeCharInput:
			if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
				m.brush.Char = render.CharCode(msg.Runes[0])
				m.brush.Mode = edit.DrawChar
				m.succeed("Brush character %q", msg.Runes[0])
			}
			m.mode = ModeNormal
		case ModeTitleInput, ModeScriptInput, ModeFileInput:
			m.handleLineKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "j", "down":
		maxScroll := max(len(helpLines)-(m.height-1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal {
		return
	}
	p := m.getWorldCoordsAt(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseLeft:
		if m.mouseDown {
			m.toolMotion(p)
			return
		}
		screenY := msg.Y - m.canvasTop()
		if screenY < 0 || screenY >= m.viewHeight() {
			return
		}
		m.cursorX, m.cursorY = msg.X, screenY
		m.toolPress(p)
	case tea.MouseMotion:
		m.toolMotion(p)
	case tea.MouseRelease:
		m.toolRelease(p)
	case tea.MouseWheelUp:
		m.handlePan("k", 1)
	case tea.MouseWheelDown:
		m.handlePan("j", 1)
	}
}

func (m *model) confirm(action ConfirmAction) {
	m.mode = ModeConfirm
	m.confirmAction = action
}

func (m *model) startLineInput(mode Mode, text string) {
	m.mode = mode
	m.inputText = text
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	// Keys other than navigation drop a mouse gesture still held down.
	if m.mouseDown && !isDirection(key) {
		m.toolCancel()
	}

	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		m.errorMessage = ""
		m.successMessage = ""
		m.do(func(s *edit.State) error {
			s.ClearSelection()
			return nil
		})
		return m, nil
	}

	if isDirection(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		if !m.config.Confirmations {
			return m, tea.Quit
		}
		m.confirm(ConfirmQuit)
	case "?":
		m.help = true
	case "z":
		m.zPanMode = !m.zPanMode

	case " ", "enter":
		p := m.worldCoords()
		m.toolPress(p)
		if m.tool.isGesture() && m.mouseDown {
			m.mode = ModeDrag
		} else {
			m.toolRelease(p)
		}

	case "b":
		m.tool = ToolPencil
	case "f":
		m.tool = ToolFill
	case "i":
		m.tool = ToolPipette
	case "g":
		m.tool = ToolLine
	case "r":
		m.tool = ToolRectangle
	case "e":
		m.tool = ToolEllipse
	case "v":
		m.tool = ToolSelect
	case "o":
		m.brush.Filled = !m.brush.Filled
	case "m":
		m.brush.Mode = (m.brush.Mode + 1) % 4
	case "C":
		m.mode = ModeCharInput
	case "1":
		m.toggleMatcher(doc.ChannelChar)
	case "2":
		m.toggleMatcher(doc.ChannelFore)
	case "3":
		m.toggleMatcher(doc.ChannelBack)

	case "[", "]", "(", ")":
		m.cycleColor(key)
	case "P":
		m.cyclePalette()

	case "tab":
		m.do(func(s *edit.State) error { return s.SetCurrentLayer(s.CurrentLayer() + 1) })
	case "shift+tab":
		m.do(func(s *edit.State) error { return s.SetCurrentLayer(s.CurrentLayer() - 1) })
	case "A":
		var idx int
		if m.do(func(s *edit.State) (err error) {
			idx, err = s.AddLayer("")
			return err
		}) {
			m.succeed("Added layer %d", idx)
		}
	case "D":
		if !m.config.Confirmations {
			m.do(func(s *edit.State) error { return s.RemoveLayer(s.CurrentLayer()) })
			return m, nil
		}
		m.confirm(ConfirmRemoveLayer)
	case "+":
		m.do((*edit.State).RaiseLayer)
	case "-":
		m.do((*edit.State).LowerLayer)
	case "V":
		m.updateCurrentLayer(func(s *edit.State, i int, l *doc.Layer) error {
			return s.SetLayerVisible(i, !l.IsVisible)
		})
	case "X":
		m.updateCurrentLayer(func(s *edit.State, i int, l *doc.Layer) error {
			return s.SetLayerLocked(i, !l.IsLocked)
		})
	case "R":
		var title string
		m.updateCurrentLayer(func(_ *edit.State, _ int, l *doc.Layer) error {
			title = l.Title
			return nil
		})
		m.startLineInput(ModeTitleInput, title)
	case "M":
		m.do(func(s *edit.State) error {
			s.BeginAtomicUndo("Move layer")
			return nil
		})
		m.mode = ModeMove

	case "t":
		p := m.worldCoords()
		m.textStartX = p.X
		m.do(func(s *edit.State) error {
			s.SetCaretPosition(p)
			s.BeginAtomicUndo("Type text")
			return nil
		})
		m.mode = ModeTextInput
	case "d":
		m.erase()
	case "c":
		m.copySelection()
	case "p":
		m.paste()
	case "u":
		m.undo()
	case "U":
		m.redo()
	case ":":
		m.startLineInput(ModeScriptInput, "")

	case "s":
		m.confirm(ConfirmChooseExportType)
	case "S":
		m.fileOp = FileOpSavePNG
		m.startLineInput(ModeFileInput, m.defaultFilename())
	case "n":
		if !m.config.Confirmations {
			m.resetCurrentBuffer()
			return m, nil
		}
		m.confirm(ConfirmNewCanvas)
	case "N":
		m.addNewBuffer(m.newCanvas(), "")
		m.cursorX, m.cursorY = 0, 0
		m.errorMessage = ""
		m.successMessage = ""
	case "x":
		m.confirm(ConfirmCloseBuffer)
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + len(m.buffers) - 1) % len(m.buffers)
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
		}
	}
	return m, nil
}

func (m *model) toggleMatcher(ch doc.Channels) {
	next := m.matcher ^ ch
	if next == doc.ChannelNone {
		m.fail(fmt.Errorf("fill needs a channel: %w", doc.ErrEmptyMatcher))
		return
	}
	m.matcher = next
	m.brush.UseFore = next.Has(doc.ChannelFore)
	m.brush.UseBack = next.Has(doc.ChannelBack)
	m.errorMessage = ""
}

func (m *model) cycleColor(key string) {
	m.do(func(s *edit.State) error {
		n := s.Canvas().Palette.Len()
		attr := s.Caret().Attr
		fg, bg := int(attr.Foreground), int(attr.Background)
		switch key {
		case "[":
			return s.SetForeground((fg + n - 1) % n)
		case "]":
			return s.SetForeground((fg + 1) % n)
		case "(":
			return s.SetBackground((bg + n - 1) % n)
		default:
			return s.SetBackground((bg + 1) % n)
		}
	})
}

func (m *model) cyclePalette() {
	m.paletteIndex = (m.paletteIndex + 1) % len(doc.BuiltinPaletteNames)
	name := doc.BuiltinPaletteNames[m.paletteIndex]
	p, err := doc.BuiltinPalette(name)
	if err != nil {
		m.fail(err)
		return
	}
	if m.do(func(s *edit.State) error {
		if err := s.SwitchToPalette(p); err != nil {
			return err
		}
		attr := s.Caret().Attr
		if int(attr.Foreground) >= p.Len() {
			s.SetForeground(min(7, p.Len()-1))
		}
		if int(attr.Background) >= p.Len() {
			s.SetBackground(0)
		}
		return nil
	}) {
		m.succeed("Palette %s", p.Title)
	}
}

func (m *model) updateCurrentLayer(fn func(s *edit.State, i int, l *doc.Layer) error) {
	m.do(func(s *edit.State) error {
		l, err := s.Layer()
		if err != nil {
			return err
		}
		return fn(s, s.CurrentLayer(), l)
	})
}

func (m *model) erase() {
	cursor := m.worldCoords()
	m.do(func(s *edit.State) error {
		r := doc.Rectangle{Start: cursor, Size: doc.Size{Width: 1, Height: 1}}
		if sel := s.Canvas().Selection; sel != nil {
			r = sel.Bounds()
		}
		return s.EraseRect(r)
	})
}

func (m *model) resetCurrentBuffer() {
	c := m.newCanvas()
	m.do(func(s *edit.State) error {
		s.Load(c)
		return nil
	})
	if buf := m.getCurrentBuffer(); buf != nil {
		buf.filename = ""
		buf.panX, buf.panY = 0, 0
	}
	m.cursorX, m.cursorY = 0, 0
	for i, name := range doc.BuiltinPaletteNames {
		if name == m.config.Palette {
			m.paletteIndex = i
		}
	}
}

func (m *model) defaultFilename() string {
	if buf := m.getCurrentBuffer(); buf != nil && buf.filename != "" {
		return strings.TrimSuffix(buf.filename, filepath.Ext(buf.filename))
	}
	return "canvas"
}

func (m *model) handleDragKey(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEscape:
		m.toolCancel()
		m.mode = ModeNormal
	case key == " " || key == "enter":
		m.toolRelease(m.worldCoords())
		m.mode = ModeNormal
	case isDirection(key):
		m.handleCursorMove(key, m.getMoveSpeed(key))
	}
}

func (m *model) handleMoveKey(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case msg.Type == tea.KeyEscape:
		m.do((*edit.State).RollbackAtomicUndo)
		m.mode = ModeNormal
	case msg.Type == tea.KeyEnter:
		m.do(func(s *edit.State) error {
			s.EndAtomicUndo()
			return nil
		})
		m.mode = ModeNormal
	case isDirection(key):
		m.handleLayerMove(key, m.getMoveSpeed(key))
	}
}

func (m *model) syncCursorToCaret(s *edit.State) {
	panX, panY := m.getPanOffset()
	caret := s.Caret().Pos
	m.cursorX, m.cursorY = caret.X-panX, caret.Y-panY
}

func (m *model) handleTextKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.do(func(s *edit.State) error {
			s.EndAtomicUndo()
			return nil
		})
		m.mode = ModeNormal
		return
	case tea.KeyEnter:
		m.do(func(s *edit.State) error {
			p := s.Caret().Pos
			next := doc.Position{X: m.textStartX, Y: p.Y + 1}
			if s.Canvas().IsValid(next) {
				s.SetCaretPosition(next)
			}
			return nil
		})
	case tea.KeyBackspace:
		m.do(func(s *edit.State) error {
			p := s.Caret().Pos
			if p.X == 0 {
				return nil
			}
			p.X--
			s.SetCaretPosition(p)
			return s.EraseRect(doc.Rectangle{Start: p, Size: doc.Size{Width: 1, Height: 1}})
		})
	case tea.KeyRunes, tea.KeySpace:
		runes := msg.Runes
		if msg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		m.do(func(s *edit.State) error {
			for _, r := range runes {
				if err := s.TypeChar(render.CharCode(r)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	m.do(func(s *edit.State) error {
		m.syncCursorToCaret(s)
		return nil
	})
	m.ensureCursorInBounds()
}

func editLine(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(text); len(r) > 0 {
			return string(r[:len(r)-1])
		}
	case tea.KeySpace:
		return text + " "
	case tea.KeyRunes:
		return text + string(msg.Runes)
	}
	return text
}

func (m *model) handleLineKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.inputText = ""
		m.errorMessage = ""
		return
	case tea.KeyEnter:
	default:
		m.inputText = editLine(m.inputText, msg)
		return
	}

	text := m.inputText
	mode := m.mode
	m.mode = ModeNormal
	m.inputText = ""
	switch mode {
	case ModeTitleInput:
		m.updateCurrentLayer(func(s *edit.State, i int, _ *doc.Layer) error {
			return s.SetLayerTitle(i, text)
		})
	case ModeScriptInput:
		m.runScript(text)
	case ModeFileInput:
		m.saveFile(text)
	}
}

// runScript runs a one line script; ';' separates commands.
func (m *model) runScript(text string) {
	buf := m.getCurrentBuffer()
	if buf == nil || strings.TrimSpace(text) == "" {
		return
	}
	res, err := script.Run(m.ctx, buf.handle, strings.ReplaceAll(text, ";", "\n"))
	if err != nil {
		m.fail(err)
		return
	}
	if len(res.Output) > 0 {
		m.succeed("%s", strings.Join(res.Output, " | "))
		return
	}
	m.succeed("Ran %d commands", res.Executed)
}

func (m *model) saveFile(text string) {
	if strings.TrimSpace(text) == "" {
		m.errorMessage = "Please enter a filename"
		m.mode = ModeFileInput
		return
	}
	filename := exportPath(m.fileOp, m.config.GetSavePath(text))
	if _, err := os.Stat(filename); err == nil && m.config.Confirmations {
		m.filename = filename
		m.confirm(ConfirmOverwriteFile)
		return
	}
	if err := m.export(filename); err != nil {
		m.fail(fmt.Errorf("error exporting: %w", err))
	}
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.confirmAction == ConfirmChooseExportType {
		switch key {
		case "p", "P":
			m.fileOp = FileOpSavePNG
		case "a", "A":
			m.fileOp = FileOpSaveANSI
		case "t", "T":
			m.fileOp = FileOpSaveTXT
		default:
			m.mode = ModeNormal
			return m, nil
		}
		m.startLineInput(ModeFileInput, m.defaultFilename())
		return m, nil
	}

	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmNewCanvas:
			m.resetCurrentBuffer()
			m.errorMessage = ""
			m.successMessage = ""
		case ConfirmCloseBuffer:
			m.closeBuffer()
		case ConfirmRemoveLayer:
			var idx int
			if m.do(func(s *edit.State) error {
				idx = s.CurrentLayer()
				return s.RemoveLayer(idx)
			}) {
				m.succeed("Removed layer %d", idx)
			}
		case ConfirmOverwriteFile:
			if err := m.export(m.filename); err != nil {
				m.fail(fmt.Errorf("error exporting: %w", err))
			}
			m.filename = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.filename = ""
	}
	return m, nil
}

func (m *model) closeBuffer() {
	if len(m.buffers) <= 1 {
		m.resetCurrentBuffer()
		return
	}
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
	m.ensureCursorInBounds()
}
