package sse

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Event
	}{
		{
			name: "single event",
			body: "data: hello world\n\n",
			want: []Event{{Data: "hello world"}},
		},
		{
			name: "typed events keep order",
			body: "event: add\ndata: 1\n\nevent: remove\ndata: 2\n\n",
			want: []Event{{Event: "add", Data: "1"}, {Event: "remove", Data: "2"}},
		},
		{
			name: "multi-line data",
			body: "data: line1\ndata: line2\ndata: line3\n\n",
			want: []Event{{Data: "line1\nline2\nline3"}},
		},
		{
			name: "comments and unknown fields skipped",
			body: ": keepalive\nfoo: bar\ndata: hello\n\n",
			want: []Event{{Data: "hello"}},
		},
		{
			name: "id persists across events",
			body: "id: 7\ndata: a\n\ndata: b\n\n",
			want: []Event{{ID: "7", Data: "a"}, {ID: "7", Data: "b"}},
		},
		{
			name: "retry parsed",
			body: "retry: 3000\ndata: x\n\n",
			want: []Event{{Retry: 3000, Data: "x"}},
		},
		{
			name: "invalid retry ignored",
			body: "retry: soon\ndata: x\n\n",
			want: []Event{{Data: "x"}},
		},
		{
			name: "crlf line endings",
			body: "event: ping\r\ndata: x\r\n\r\n",
			want: []Event{{Event: "ping", Data: "x"}},
		},
		{
			name: "no space after colon",
			body: "data:no-space\n\n",
			want: []Event{{Data: "no-space"}},
		},
		{
			name: "trailing event without blank line",
			body: "data: trailing",
			want: []Event{{Data: "trailing"}},
		},
		{
			name: "event without data is dropped",
			body: "event: empty\n\ndata: kept\n\n",
			want: []Event{{Data: "kept"}},
		},
		{
			name: "empty body",
			body: "",
			want: []Event{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_Stream(t *testing.T) {
	r := NewReader(io.NopCloser(strings.NewReader("data: first\n\nevent: msg\ndata: second\n\n")))
	defer r.Close()

	ev, err := r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Data != "first" {
		t.Errorf("first event data = %q, want %q", ev.Data, "first")
	}

	ev, err = r.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Event != "msg" || ev.Data != "second" {
		t.Errorf("second event = %+v", ev)
	}

	if _, err = r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReader_EmptyStream(t *testing.T) {
	r := NewReader(io.NopCloser(strings.NewReader("")))
	defer r.Close()

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
