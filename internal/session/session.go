// Package session collects the requested output size from keystrokes.
//
// A Session walks through EnteringWidth and EnteringHeight and ends in
// Submitted. It is not safe for concurrent use: it belongs to the goroutine
// that handles input.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/koki-develop/img2txt/internal/dimension"
)

type Phase int

const (
	EnteringWidth Phase = iota
	EnteringHeight
	Submitted
)

func (p Phase) String() string {
	switch p {
	case EnteringWidth:
		return "width"
	case EnteringHeight:
		return "height"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type Session struct {
	phase  Phase
	buf    []rune
	locked bool
	req    dimension.Request
}

func New() *Session {
	return &Session{phase: EnteringWidth}
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Buffer() string { return string(s.buf) }

// Locked reports whether a submission is waiting for Commit.
func (s *Session) Locked() bool { return s.locked }

// Request returns the collected request. Axes left blank are unset.
func (s *Session) Request() dimension.Request { return s.req }

func (s *Session) accepting() bool {
	return !s.locked && s.phase != Submitted
}

// Type appends r to the buffer. It returns false if the keystroke was dropped.
func (s *Session) Type(r rune) bool {
	if !s.accepting() {
		return false
	}
	s.buf = append(s.buf, r)
	return true
}

// Backspace removes the last buffered character.
func (s *Session) Backspace() bool {
	if !s.accepting() {
		return false
	}
	if len(s.buf) > 0 {
		s.buf = s.buf[:len(s.buf)-1]
	}
	return true
}

// Submit takes the input lock for the current buffer. Every action up to the
// matching Commit is dropped, so a repeated Enter cannot submit twice.
func (s *Session) Submit() bool {
	if !s.accepting() {
		return false
	}
	s.locked = true
	return true
}

// Commit applies the pending submission and releases the input lock.
//
// A blank buffer leaves the axis unset. Anything other than a positive
// decimal number yields an error wrapping dimension.ErrInvalidDimension; the
// phase is kept and the buffer is cleared so the value can be typed again.
func (s *Session) Commit() (Phase, error) {
	if !s.locked {
		return s.phase, errors.New("no pending submission")
	}
	defer func() {
		s.locked = false
		s.buf = s.buf[:0]
	}()

	text := string(s.buf)
	if strings.TrimSpace(text) == "" {
		s.advance(0)
		return s.phase, nil
	}

	v, err := parse(text)
	if err != nil {
		return s.phase, err
	}
	s.advance(v)
	return s.phase, nil
}

// Enter is Submit followed by Commit.
func (s *Session) Enter() (Phase, error) {
	if !s.Submit() {
		return s.phase, nil
	}
	return s.Commit()
}

func (s *Session) advance(v int) {
	switch s.phase {
	case EnteringWidth:
		s.req.Width = v
		s.phase = EnteringHeight
	case EnteringHeight:
		s.req.Height = v
		s.phase = Submitted
	}
}

func parse(text string) (int, error) {
	for _, r := range text {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: %q is not a number", dimension.ErrInvalidDimension, text)
		}
	}
	v, err := strconv.Atoi(text)
	if err != nil || v > dimension.MaxSide {
		return 0, fmt.Errorf("%w: %q is too large", dimension.ErrInvalidDimension, text)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", dimension.ErrInvalidDimension)
	}
	return v, nil
}
