package cname

import "os"

// ExportToFile writes a generated record to path, creating or truncating
// the file. Exactly the record text is written, with no trailing newline.
// The write is direct, not atomic: a crash mid-write can leave a partial
// file, and callers sharing a destination path must serialize their own
// writes.
func ExportToFile(record, path string) error {
	return os.WriteFile(path, []byte(record), 0o644)
}

// ExportToFile renders the configuration and writes it to path.
func (c RecordConfig) ExportToFile(path string) error {
	return ExportToFile(c.Generate(), path)
}
