package store

// Row is one result row keyed by column name. Missing and NULL columns are
// absent or nil; the rowmap package turns rows into domain values.
type Row map[string]any
