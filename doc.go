package ndjson

// Package ndjson implements routines for processing newline-delimited JSON
// input in a stream.
//
// The package is organized into several sub-packages:
//
// - encoding/csv: conversion between record streams and CSV documents
// - encoding/jsondoc: conversion between record streams and whole JSON documents
// - schema: one-pass structural validation of decoded records
//
// The core of the package is the Parser, a push-driven pipeline stage that
// turns arbitrarily chunked input bytes into a sequence of decoded records:
//
//	feed chunks -> reassemble lines -> decode -> map columns -> cast -> shape -> emit
//
// Each stage is applied line by line, so the whole pipeline can start
// producing output straight away. This provides several advantages:
//
// - Extract records from input without memory usage increasing with the size
//   of the input (memory is bounded by the longest line)
// - When fed from a pipe, records are available as soon as their line is
//   complete, without waiting for the entire file
// - Process arbitrarily large or infinite record streams
//
// The Parser itself performs no I/O: a driver feeds it byte chunks and drains
// the records each call returns. The Decoder type wraps a Parser around an
// io.Reader for the common pull-based case.
//
// The CLI utility is in the directory cmd/ndr. You can install it with:
//
//	go install github.com/recordstream/ndjson/cmd/ndr
