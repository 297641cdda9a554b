package ndjson

import (
	"reflect"
	"testing"
)

func assertLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected lines %q, got %q", want, got)
	}
}

func TestLineBufferSplit(t *testing.T) {
	var buf lineBuffer
	assertLines(t, buf.push([]byte("one\ntwo\nthr")), "one", "two")
	assertLines(t, buf.push([]byte("ee\n")), "three")
	if _, ok := buf.flush(); ok {
		t.Fatal("expected an empty tail")
	}
}

func TestLineBufferCRLF(t *testing.T) {
	var buf lineBuffer
	assertLines(t, buf.push([]byte("one\r\ntwo\r")), "one")
	// The terminator is split across chunks.
	assertLines(t, buf.push([]byte("\nthree")), "two")
	line, ok := buf.flush()
	if !ok || line != "three" {
		t.Fatalf("expected tail %q, got %q (%v)", "three", line, ok)
	}
}

func TestLineBufferLoneCR(t *testing.T) {
	// A '\r' not followed by '\n' is part of the line's content.
	var buf lineBuffer
	assertLines(t, buf.push([]byte("a\rb\n")), "a\rb")
}

func TestLineBufferEmptyLines(t *testing.T) {
	var buf lineBuffer
	assertLines(t, buf.push([]byte("\n\r\n")), "", "")
}

func TestLineBufferSize(t *testing.T) {
	var buf lineBuffer
	buf.push([]byte("abc\ndef"))
	if buf.size() != 3 {
		t.Fatalf("expected tail size 3, got %d", buf.size())
	}
	buf.flush()
	if buf.size() != 0 {
		t.Fatalf("expected empty tail after flush, got %d", buf.size())
	}
}

func TestLineBufferByteAtATime(t *testing.T) {
	var buf lineBuffer
	var lines []string
	for _, b := range []byte("ab\r\ncd\ne") {
		lines = append(lines, buf.push([]byte{b})...)
	}
	assertLines(t, lines, "ab", "cd")
	line, ok := buf.flush()
	if !ok || line != "e" {
		t.Fatalf("expected tail %q, got %q (%v)", "e", line, ok)
	}
}
