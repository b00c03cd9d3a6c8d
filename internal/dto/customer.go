package dto

// CompanyResponse is an entry from the external companies directory, passed through as-is.
type CompanyResponse map[string]any
