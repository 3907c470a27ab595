package repository

// scanner is satisfied by both *sql.Row and *sql.Rows, letting the scan
// helpers serve single-row and multi-row reads.
type scanner interface {
	Scan(dest ...any) error
}
