// Package sse parses Server-Sent Events, either from a live stream with
// Reader or from a fully buffered text/event-stream body with Parse.
package sse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Event represents a single server-sent event.
type Event struct {
	// Event is the event type from "event:" lines. Empty for data-only events.
	Event string `json:"event,omitempty"`
	// Data is the payload. Multiple "data:" lines are joined with newlines.
	Data string `json:"data"`
	// ID is the last event ID seen on the stream.
	ID string `json:"id,omitempty"`
	// Retry is the reconnection delay in milliseconds, 0 if not sent.
	Retry int `json:"retry,omitempty"`
}

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next event. Returns io.EOF when the stream ends.
	Next() (*Event, error)
	// Close releases the underlying resources.
	Close() error
}

type reader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
	state   parser
}

// NewReader creates an SSE reader from a readable stream.
func NewReader(body io.ReadCloser) Reader {
	return &reader{scanner: newScanner(body), body: body}
}

// Next returns the next event. Returns io.EOF when the stream ends.
func (r *reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		if ev, ok := r.state.line(r.scanner.Text()); ok {
			return &ev, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if ev, ok := r.state.flush(); ok {
		return &ev, nil
	}
	return nil, io.EOF
}

// Close releases the underlying stream.
func (r *reader) Close() error {
	return r.body.Close()
}

// Parse decodes every event in a buffered body, in order. A body with no
// events yields an empty, non-nil slice.
func Parse(data []byte) ([]Event, error) {
	events := make([]Event, 0)
	var p parser
	s := newScanner(bytes.NewReader(data))
	for s.Scan() {
		if ev, ok := p.line(s.Text()); ok {
			events = append(events, ev)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if ev, ok := p.flush(); ok {
		events = append(events, ev)
	}
	return events, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return s
}

// parser accumulates fields until a blank line dispatches an event.
type parser struct {
	pending Event
	hasData bool
	lastID  string
}

func (p *parser) line(line string) (Event, bool) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return p.flush()
	}
	if strings.HasPrefix(line, ":") {
		return Event{}, false
	}

	field, value, _ := strings.Cut(line, ":")
	value = strings.TrimPrefix(value, " ")
	switch field {
	case "data":
		if p.hasData {
			p.pending.Data += "\n" + value
		} else {
			p.pending.Data = value
			p.hasData = true
		}
	case "event":
		p.pending.Event = value
	case "id":
		if !strings.ContainsRune(value, 0) {
			p.lastID = value
		}
	case "retry":
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			p.pending.Retry = ms
		}
	}
	return Event{}, false
}

// flush dispatches the pending event if it carried data and resets the
// per-event fields. The last event ID persists across events.
func (p *parser) flush() (Event, bool) {
	ev, ok := p.pending, p.hasData
	ev.ID = p.lastID
	p.pending, p.hasData = Event{}, false
	return ev, ok
}
