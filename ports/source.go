package ports

// LineSource is the contract consumed from the upload/transport layer: it
// yields the raw record lines of one file, header lines already removed.
type LineSource interface {
	// Name identifies the source in logs (usually a file name)
	Name() string
	// Lines reads the whole source. It is called once per load.
	Lines() ([]string, error)
}
