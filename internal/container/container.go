package container

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nqdsheat/adapters/excel"
	"nqdsheat/adapters/nqds"
	"nqdsheat/internal"
	"nqdsheat/internal/config"
	"nqdsheat/internal/session"
	"nqdsheat/ports"
)

// StdinPath names standard input in place of a file path
const StdinPath = "-"

// Container holds the application dependencies for one CLI invocation
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Session *session.Controller

	// Stdin is read when the input path is StdinPath
	Stdin io.Reader
}

// New creates a container with a fresh, empty session
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Session: session.NewController(cfg, logger),
		Stdin:   os.Stdin,
	}
	return c, nil
}

// SourceFor picks the input adapter for path: StdinPath buffers standard
// input, .xlsx opens the workbook reader, anything else is read as delimited text.
func (c *Container) SourceFor(path string) (ports.LineSource, error) {
	headerLines := c.Config.Data.HeaderLines
	switch {
	case path == StdinPath:
		src, err := nqds.NewReaderSource("stdin", c.Stdin, headerLines)
		if err != nil {
			return nil, err
		}
		return src, nil
	case strings.EqualFold(filepath.Ext(path), ".xlsx"):
		wc := excel.DefaultWorkbookConfig(path)
		wc.HeaderRows = headerLines
		return excel.NewWorkbookSource(wc), nil
	}
	return nqds.NewFileSource(path, headerLines), nil
}

// LoadFile loads path, or the configured source file when path is empty
func (c *Container) LoadFile(path string) error {
	if path == "" {
		path = c.Config.Data.SourceFile
	}
	if path == "" {
		return fmt.Errorf("no input file given and NQDS_FILE is not set")
	}

	source, err := c.SourceFor(path)
	if err != nil {
		return err
	}
	if err := c.Session.Load(source); err != nil {
		return err
	}
	c.Logger.Debug("Container loaded %s into session %s", path, c.Session.ID())
	return nil
}
