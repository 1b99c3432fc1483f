package lcov

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrNotFound is returned by ParseFile when the tracefile does not exist.
var ErrNotFound = errors.New("coverage file not found")

// largeInputThreshold is the input size at which parsing is handed off to a
// worker goroutine. Below it the parse runs inline on the caller.
const largeInputThreshold = 1 << 20 // 1MB

// ParseFile reads and parses a tracefile from disk.
func ParseFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read coverage file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse parses tracefile text into a Report. Malformed lines are skipped,
// never fatal: partial data beats a hard failure on a slightly broken
// tracefile. Unknown tags (FN:, FNDA:, BRDA:, ...) are ignored.
//
// Inputs at or above largeInputThreshold are parsed on a worker goroutine,
// with the finished report handed back over a channel; the threshold only
// selects where the work happens, the algorithm is identical either way.
func Parse(text string) *Report {
	if len(text) >= largeInputThreshold {
		return parseOffloaded(text)
	}
	return parse(text)
}

// parseOffloaded runs parse on its own goroutine and blocks for the result.
// The handoff is pure message passing so the contract holds regardless of
// where the worker ends up running.
func parseOffloaded(text string) *Report {
	done := make(chan *Report, 1)
	go func() {
		done <- parse(text)
	}()
	return <-done
}

func parse(text string) *Report {
	var files []File
	var cur *File

	flush := func() {
		if cur != nil {
			files = append(files, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "SF:"):
			flush()
			cur = &File{Path: strings.TrimPrefix(line, "SF:")}

		case line == "end_of_record":
			flush()

		case cur == nil:
			// Tags outside a record have nothing to attach to.

		case strings.HasPrefix(line, "DA:"):
			if l, ok := parseLineRecord(strings.TrimPrefix(line, "DA:")); ok {
				cur.Lines = append(cur.Lines, l)
			}

		case strings.HasPrefix(line, "LF:"):
			setCounter(&cur.Summary.LinesFound, strings.TrimPrefix(line, "LF:"))
		case strings.HasPrefix(line, "LH:"):
			setCounter(&cur.Summary.LinesHit, strings.TrimPrefix(line, "LH:"))
		case strings.HasPrefix(line, "FNF:"):
			setCounter(&cur.Summary.FunctionsFound, strings.TrimPrefix(line, "FNF:"))
		case strings.HasPrefix(line, "FNH:"):
			setCounter(&cur.Summary.FunctionsHit, strings.TrimPrefix(line, "FNH:"))
		case strings.HasPrefix(line, "BRF:"):
			setCounter(&cur.Summary.BranchesFound, strings.TrimPrefix(line, "BRF:"))
		case strings.HasPrefix(line, "BRH:"):
			setCounter(&cur.Summary.BranchesHit, strings.TrimPrefix(line, "BRH:"))
		}
	}

	// An unterminated final record still counts.
	flush()

	return NewReport(files)
}

// parseLineRecord parses the "line,hits[,checksum]" payload of a DA: tag.
// Malformed payloads report ok=false and are dropped by the caller.
func parseLineRecord(payload string) (Line, bool) {
	parts := strings.Split(payload, ",")
	if len(parts) < 2 {
		return Line{}, false
	}
	number, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || number <= 0 {
		return Line{}, false
	}
	hits, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || hits < 0 {
		return Line{}, false
	}
	return Line{Number: number, HitCount: hits}, true
}

// setCounter stores the integer payload of a summary tag, leaving the
// counter untouched when the payload does not parse.
func setCounter(dst *int, payload string) {
	n, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil || n < 0 {
		return
	}
	*dst = n
}
