package nqds

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// DefaultHeaderLines is the number of metadata lines at the top of every NQDS export
const DefaultHeaderLines = 3

// maxLineSize bounds a single record line
const maxLineSize = 1 << 20

// FileSource reads NQDS records from a plain-text file on disk
type FileSource struct {
	filePath    string
	headerLines int
}

// NewFileSource creates a source for the file at filePath, skipping headerLines leading lines
func NewFileSource(filePath string, headerLines int) *FileSource {
	return &FileSource{filePath: filePath, headerLines: headerLines}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.filePath
}

// Lines reads the file and returns its record lines
func (s *FileSource) Lines() ([]string, error) {
	log.Printf("[FileSource] Reading NQDS file: %s", s.filePath)

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("NQDS file not found: %s", s.filePath)
	}

	f, err := os.Open(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open NQDS file: %w", err)
	}
	defer f.Close()

	readStart := time.Now()
	lines, err := readLines(f, s.headerLines)
	if err != nil {
		return nil, fmt.Errorf("failed to read NQDS file: %w", err)
	}
	log.Printf("[FileSource] File read in %.2fms (%d record lines)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(lines))
	return lines, nil
}

// ReaderSource reads NQDS records from an already-open stream, such as an upload body
type ReaderSource struct {
	name        string
	data        []byte
	headerLines int
}

// NewReaderSource buffers r so the source can be read more than once
func NewReaderSource(name string, r io.Reader, headerLines int) (*ReaderSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return &ReaderSource{name: name, data: data, headerLines: headerLines}, nil
}

// Name returns the name given at construction
func (s *ReaderSource) Name() string {
	return s.name
}

// Lines returns the record lines of the buffered stream
func (s *ReaderSource) Lines() ([]string, error) {
	return readLines(bytes.NewReader(s.data), s.headerLines)
}

// readLines returns every non-blank line after the first headerLines lines
func readLines(r io.Reader, headerLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	n := 0
	for scanner.Scan() {
		n++
		if n <= headerLines {
			continue
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
