package schema

//go:generate go tool stringer -type=Status -trimprefix=Status -output=status_string.go

// Status is the overall result of validating a record.
type Status int

const (
	StatusValid Status = iota
	StatusInvalid
)
