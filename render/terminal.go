// Package render implements the one supported host frontend: a tcell
// terminal window that blits the emulator's framebuffer every 1/60s and
// forwards key presses to the joypad. It is a thin consumer of the core
// package, not part of it.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kaelstrom/pocketcore/core"
	"github.com/kaelstrom/pocketcore/core/memory"
	"github.com/kaelstrom/pocketcore/core/video"
)

const frameTime = time.Second / 60

// shadeChars maps a 2-bit Game Boy color ID to a terminal glyph, lightest first.
var shadeChars = [4]rune{' ', '▒', '▓', '█'}

// TerminalRenderer drives an Emulator and renders its framebuffer to a tcell screen.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *core.Emulator
	running  bool
}

// NewTerminalRenderer initializes a tcell screen and wraps emu for rendering.
func NewTerminalRenderer(emu *core.Emulator) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &TerminalRenderer{
		screen:   screen,
		emulator: emu,
		running:  true,
	}, nil
}

// Run drives the emulator at 60fps until the user quits or the process
// receives a termination signal.
func (t *TerminalRenderer) Run() error {
	defer t.screen.Fini()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for t.running {
		select {
		case <-ticker.C:
			t.emulator.RunUntilFrame()
			t.render()
			t.screen.Show()
		case <-signals:
			slog.Info("Received signal to stop")
			return nil
		}
	}

	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.running = false
				return
			case tcell.KeyEnter:
				t.emulator.HandleKeyPress(memory.JoypadStart)
			case tcell.KeyRight:
				t.emulator.HandleKeyPress(memory.JoypadRight)
			case tcell.KeyLeft:
				t.emulator.HandleKeyPress(memory.JoypadLeft)
			case tcell.KeyUp:
				t.emulator.HandleKeyPress(memory.JoypadUp)
			case tcell.KeyDown:
				t.emulator.HandleKeyPress(memory.JoypadDown)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a':
					t.emulator.HandleKeyPress(memory.JoypadA)
				case 's':
					t.emulator.HandleKeyPress(memory.JoypadB)
				case 'q':
					t.emulator.HandleKeyPress(memory.JoypadSelect)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *TerminalRenderer) render() {
	termWidth, termHeight := t.screen.Size()
	if termWidth < video.FramebufferWidth || termHeight < video.FramebufferHeight+1 {
		t.screen.Clear()
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", video.FramebufferWidth, video.FramebufferHeight+1)
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for i, ch := range msg {
			t.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	t.screen.Clear()
	t.drawGameBoy()
	t.drawStatus(termHeight)
}

func (t *TerminalRenderer) drawGameBoy() {
	frame := t.emulator.GetCurrentFrame().ToGrayscale()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			shade := frame[y*video.FramebufferWidth+x]
			t.screen.SetContent(x, y, shadeChars[shade], nil, style)
		}
	}
}

func (t *TerminalRenderer) drawStatus(termHeight int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	status := fmt.Sprintf("frame %d  pc 0x%04X  (esc to quit)",
		t.emulator.GetFrameCount(), t.emulator.GetCPU().GetPC())

	y := video.FramebufferHeight
	if y >= termHeight {
		return
	}
	for i, ch := range status {
		t.screen.SetContent(i, y, ch, nil, style)
	}
}
