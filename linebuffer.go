package ndjson

import "bytes"

// A lineBuffer reassembles complete lines from arbitrarily chunked input.
// A line is terminated by '\n', optionally preceded by '\r'; neither byte is
// part of the line's content. Whatever follows the last terminator is kept as
// the tail until more input arrives.
type lineBuffer struct {
	tail []byte
}

// push appends a chunk and returns the complete lines it unlocked, in order.
// The returned strings do not alias the buffer.
func (b *lineBuffer) push(chunk []byte) []string {
	b.tail = append(b.tail, chunk...)
	var lines []string
	start := 0
	for {
		i := bytes.IndexByte(b.tail[start:], '\n')
		if i < 0 {
			break
		}
		end := start + i
		if end > start && b.tail[end-1] == '\r' {
			end--
		}
		lines = append(lines, string(b.tail[start:end]))
		start += i + 1
	}
	if start > 0 {
		b.tail = append(b.tail[:0], b.tail[start:]...)
	}
	return lines
}

// flush returns the unterminated final line, if any, and empties the buffer.
func (b *lineBuffer) flush() (string, bool) {
	if len(b.tail) == 0 {
		return "", false
	}
	line := string(b.tail)
	b.tail = b.tail[:0]
	return line, true
}

// size is the current length of the unterminated tail.
func (b *lineBuffer) size() int {
	return len(b.tail)
}
