package interaction

import (
	"io"
	"os"
	"sync"

	"github.com/penwyp/go-activity-monitor/internal/util"
	"golang.org/x/term"
)

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyCtrlC
)

// IsQuit reports whether the key asks to leave the dashboard
func (e KeyEvent) IsQuit() bool {
	return e.Type == KeyEscape || e.Type == KeyCtrlC || e.Key == 'q' || e.Key == 'Q'
}

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	in       io.Reader
	fd       int
	oldState *term.State
	input    chan KeyEvent
	stop     chan struct{}
	once     sync.Once
}

// NewKeyboardReader reads stdin, switching it to raw mode when it is a terminal
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newReader(os.Stdin)
	kr.fd = int(os.Stdin.Fd())

	if term.IsTerminal(kr.fd) {
		state, err := term.MakeRaw(kr.fd)
		if err != nil {
			return nil, err
		}
		kr.oldState = state
	} else {
		util.LogDebug("Stdin is not a terminal, keyboard input stays line buffered")
	}

	go kr.readInput()
	return kr, nil
}

// NewKeyboardReaderFrom reads key presses from r without touching terminal modes
func NewKeyboardReaderFrom(r io.Reader) *KeyboardReader {
	kr := newReader(r)
	go kr.readInput()
	return kr
}

func newReader(r io.Reader) *KeyboardReader {
	return &KeyboardReader{
		in:    r,
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 8)

	for {
		n, err := kr.in.Read(buf)
		if n > 0 {
			if event := kr.parseInput(buf[:n]); event != nil {
				select {
				case kr.input <- *event:
				case <-kr.stop:
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				util.LogDebug("Keyboard read stopped", util.F("error", err))
			}
			return
		}

		select {
		case <-kr.stop:
			return
		default:
		}
	}
}

// parseInput parses raw keyboard input
func (kr *KeyboardReader) parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	// Handle Ctrl+C
	if buf[0] == 3 {
		return &KeyEvent{Key: 3, Type: KeyCtrlC}
	}

	// A lone ESC is the key; longer sequences are arrows and function keys
	if buf[0] == 27 {
		if len(buf) == 1 {
			return &KeyEvent{Key: 27, Type: KeyEscape}
		}
		return nil
	}

	// Line-buffered input delivers the key followed by a newline
	if buf[0] == '\n' || buf[0] == '\r' {
		return nil
	}

	return &KeyEvent{Key: rune(buf[0]), Type: KeyChar}
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	var err error
	kr.once.Do(func() {
		close(kr.stop)
		if kr.oldState != nil {
			err = term.Restore(kr.fd, kr.oldState)
		}
	})
	return err
}
