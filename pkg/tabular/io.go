package tabular

// Reader loads a table from a file path.
type Reader interface {
	// Read parses the file at path into a table. It returns
	// SourceReadError when the file cannot be read or decoded and
	// MalformedTableError when the decoded content violates table
	// structure rules.
	Read(path string) (*Table, error)
}

// Writer persists a table to a file path.
type Writer interface {
	// Write renders the table to the file at path, replacing any
	// existing content.
	Write(path string, t *Table) error
}

// ReadWriter combines reading and writing for a single file format.
type ReadWriter interface {
	Reader
	Writer
}
