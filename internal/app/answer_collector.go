package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// InputKind classifies one line of player input.
type InputKind int

const (
	// InputPending means no complete line arrived within the poll window.
	InputPending InputKind = iota
	InputChoice
	InputQuit
	InputInvalid
	// InputClosed means the input stream has ended; no further lines will arrive.
	InputClosed
)

func (k InputKind) String() string {
	switch k {
	case InputPending:
		return "pending"
	case InputChoice:
		return "choice"
	case InputQuit:
		return "quit"
	case InputInvalid:
		return "invalid"
	case InputClosed:
		return "closed"
	}
	return "unknown"
}

// Input is a classified line. Choice is 1-based and only set for InputChoice.
type Input struct {
	Kind   InputKind
	Choice int
	Raw    string
}

// InputSource is what a round polls for answers.
type InputSource interface {
	Poll(optionCount int, timeout time.Duration) Input
}

const (
	// MaxLineBytes caps one input line; the rest of a longer line is discarded.
	MaxLineBytes = 1024

	maxReadFailures = 100
)

// readRetryPause spaces out reads after a failed one.
var readRetryPause = 100 * time.Millisecond

// AnswerCollector reads lines from r on a single background goroutine and hands
// them out through Poll and ReadLine. The reader lives as long as the stream.
type AnswerCollector struct {
	r     io.Reader
	once  sync.Once
	lines chan string
	log   *slog.Logger
}

func NewAnswerCollector(r io.Reader) *AnswerCollector {
	return &AnswerCollector{
		r:     r,
		lines: make(chan string, 16),
		log:   slog.Default(),
	}
}

func (c *AnswerCollector) start() {
	c.once.Do(func() {
		go c.readLoop()
	})
}

// readLoop closes lines only at end of stream. A failed read yields no line and
// is retried; a long run of failures is treated as the end of the stream.
func (c *AnswerCollector) readLoop() {
	defer close(c.lines)
	br := bufio.NewReaderSize(c.r, MaxLineBytes)
	failures := 0
	for {
		line, err := readLine(br)
		switch {
		case err == nil:
			failures = 0
			c.lines <- line
		case errors.Is(err, io.EOF):
			return
		default:
			failures++
			if failures >= maxReadFailures {
				c.log.Error("giving up on input", "error", err, "failures", failures)
				return
			}
			c.log.Warn("read input", "error", err)
			time.Sleep(readRetryPause)
		}
	}
}

// readLine returns the next line without its line ending, truncated to
// MaxLineBytes. A final line without a newline is still returned.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if room := MaxLineBytes - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		switch {
		case err == nil:
			return strings.TrimRight(string(buf), "\r\n"), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(buf) > 0:
			return strings.TrimRight(string(buf), "\r\n"), nil
		default:
			return "", err
		}
	}
}

// Poll waits at most timeout for a line and classifies it against optionCount.
// A zero timeout only inspects lines that are already buffered.
func (c *AnswerCollector) Poll(optionCount int, timeout time.Duration) Input {
	c.start()

	if timeout <= 0 {
		select {
		case line, ok := <-c.lines:
			if !ok {
				return Input{Kind: InputClosed}
			}
			return Classify(line, optionCount)
		default:
			return Input{Kind: InputPending}
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case line, ok := <-c.lines:
		if !ok {
			return Input{Kind: InputClosed}
		}
		return Classify(line, optionCount)
	case <-timer.C:
		return Input{Kind: InputPending}
	}
}

// ReadLine blocks for the next trimmed line. Menus use it outside of rounds.
func (c *AnswerCollector) ReadLine(ctx context.Context) (string, error) {
	c.start()

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Classify sanitizes a raw line and maps it to quit, a choice in [1, optionCount], or invalid.
func Classify(line string, optionCount int) Input {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Input{Kind: InputInvalid, Raw: trimmed}
	}
	if trimmed[0] == 'q' || trimmed[0] == 'Q' {
		return Input{Kind: InputQuit, Raw: trimmed}
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 || n > optionCount {
		return Input{Kind: InputInvalid, Raw: trimmed}
	}
	return Input{Kind: InputChoice, Choice: n, Raw: trimmed}
}
