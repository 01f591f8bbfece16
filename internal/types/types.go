package types

type contextKey string

// DBKey is the context key under which CLI commands share the open *sql.DB.
const DBKey contextKey = "db"
