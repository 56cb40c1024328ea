package excel

// WorkbookConfig holds configuration for an .xlsx record source
type WorkbookConfig struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	// Sheet defaults to the first sheet of the workbook
	Sheet string `json:"sheet" yaml:"sheet"`
	// HeaderRows is the number of leading metadata rows to skip
	HeaderRows int `json:"header_rows" yaml:"header_rows"`
}

// DefaultWorkbookConfig returns the layout of a workbook exported from an NQDS text file
func DefaultWorkbookConfig(filePath string) WorkbookConfig {
	return WorkbookConfig{
		FilePath:   filePath,
		HeaderRows: 3,
	}
}
