package ndjson

import "io"

const defaultChunkSize = 8192

// A Decoder drives a Parser from an io.Reader, reading fixed-size chunks and
// handing records back one at a time. It is the pull-based convenience over
// the push-based Parser.
type Decoder struct {
	parser  *Parser
	reader  io.Reader
	chunk   []byte
	pending []Record
	err     error
	done    bool
}

// NewDecoder returns a Decoder reading from in with the given parser options.
func NewDecoder(in io.Reader, opts ...Option) *Decoder {
	return NewDecoderSize(in, defaultChunkSize, opts...)
}

// NewDecoderSize is like NewDecoder with an explicit read chunk size.
func NewDecoderSize(in io.Reader, size int, opts ...Option) *Decoder {
	return &Decoder{
		parser: NewParser(opts...),
		reader: in,
		chunk:  make([]byte, size),
	}
}

// Parser returns the underlying parser, for access to its counters and
// skipped errors.
func (d *Decoder) Parser() *Parser {
	return d.parser
}

// Next returns the next record. It returns io.EOF once the input is
// exhausted, and any fatal pipeline or read error permanently.
func (d *Decoder) Next() (Record, error) {
	for {
		if len(d.pending) > 0 {
			record := d.pending[0]
			d.pending = d.pending[1:]
			return record, nil
		}
		if d.err != nil {
			return nil, d.err
		}
		if d.done {
			d.err = io.EOF
			return nil, d.err
		}
		n, readErr := d.reader.Read(d.chunk)
		if n > 0 {
			records, err := d.parser.Feed(d.chunk[:n])
			// A read can return bytes together with io.EOF, in which
			// case the Finish branch below adds to these records, so
			// never overwrite what is pending.
			d.pending = append(d.pending, records...)
			if err != nil {
				// Drain the records emitted before the failure first.
				d.err = err
				if len(d.pending) > 0 {
					continue
				}
				return nil, err
			}
		}
		if readErr == io.EOF {
			d.done = true
			records, err := d.parser.Finish()
			d.pending = append(d.pending, records...)
			if err != nil {
				d.err = err
				if len(d.pending) > 0 {
					continue
				}
				return nil, err
			}
		} else if readErr != nil {
			d.err = readErr
			return nil, readErr
		}
	}
}

// All reads records until the input is exhausted and returns them.
func (d *Decoder) All() ([]Record, error) {
	var records []Record
	for {
		record, err := d.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}
