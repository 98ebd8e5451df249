package extractor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Marker identifies the line of interest in a single-symbol quote body.
// It sits right after a leading delimiter/quote pair, hence the fixed offset.
const (
	Marker       = "tradedDate"
	markerOffset = 2
)

// DefaultScratchFile is created in the working directory during a scan.
const DefaultScratchFile = "tmpFile.txt"

// ErrNotFound no line in the body carried the marker
var ErrNotFound = errors.New("no line starting with " + Marker + " found in response")

// Mode selects how a body is post-processed
type Mode int

const (
	Aggregate    Mode = iota // whole payload, passed through
	SingleSymbol             // one marker line out of a per-symbol payload
)

func (m Mode) String() string {
	switch m {
	case Aggregate:
		return "aggregate"
	case SingleSymbol:
		return "single_symbol"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ResultKind tags an extraction result
type ResultKind int

const (
	FullText ResultKind = iota
	MatchedLine
	NotFound
)

// Result Text holds the body for FullText and the line for MatchedLine.
type Result struct {
	Kind ResultKind
	Text string
}

// openScratch is replaced in tests to fail partway through a scan
var openScratch = func(b *ScratchBuffer) (io.ReadCloser, error) {
	return b.Open()
}

// Extractor post-processes a fetched body according to the mode
type Extractor struct {
	scratchPath string
	log         zerolog.Logger
}

// NewExtractor creates an Extractor scanning through scratchPath, tmpFile.txt if empty
func NewExtractor(scratchPath string, log zerolog.Logger) *Extractor {
	if scratchPath == "" {
		scratchPath = DefaultScratchFile
	}
	return &Extractor{scratchPath: scratchPath, log: log}
}

// ScratchPath returns where the scratch buffer lives during a scan
func (e *Extractor) ScratchPath() string {
	return e.scratchPath
}

// Extract returns the body unchanged for Aggregate, the first marker line for SingleSymbol
func (e *Extractor) Extract(body string, mode Mode) (Result, error) {
	switch mode {
	case Aggregate:
		return Result{Kind: FullText, Text: body}, nil
	case SingleSymbol:
		return e.scan(body)
	default:
		return Result{}, fmt.Errorf("unsupported mode: %s", mode)
	}
}

// scan writes body to the scratch buffer and reads it back line by line.
// The buffer is removed on every return path; a removal failure never
// replaces an earlier error.
func (e *Extractor) scan(body string) (res Result, err error) {
	buf, err := CreateScratch(e.scratchPath, body)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		rmErr := buf.Remove()
		if rmErr == nil {
			return
		}
		if err != nil {
			e.log.Warn().Err(rmErr).Str("path", buf.Path()).Msg("failed to delete scratch buffer")
			return
		}
		res, err = Result{}, rmErr
	}()

	f, err := openScratch(buf)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	line, found, err := firstMarkerLine(f)
	if err != nil {
		return Result{}, &StorageError{Op: "read", Path: buf.Path(), Cause: err}
	}
	if !found {
		return Result{Kind: NotFound}, nil
	}
	return Result{Kind: MatchedLine, Text: line}, nil
}

// firstMarkerLine returns the first line of r that matches the marker test.
// Lines have no length limit.
func firstMarkerLine(r io.Reader) (string, bool, error) {
	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		if MatchesMarker(line) {
			return line, true, nil
		}
	}
}

// readLine returns the next line without its terminator. A line ends at
// "\n", "\r" or "\r\n". io.EOF is returned only once no bytes are left.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			next, err := br.ReadByte()
			switch {
			case err == nil && next != '\n':
				_ = br.UnreadByte()
			case err != nil && err != io.EOF:
				return "", err
			}
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
	}
}

// MatchesMarker reports whether line, with its first two characters
// skipped, begins with the marker.
func MatchesMarker(line string) bool {
	rest := line
	for i := 0; i < markerOffset; i++ {
		if rest == "" {
			return false
		}
		_, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
	}
	return strings.HasPrefix(rest, Marker)
}
