package migrations

import "embed"

// Files holds the forward-only schema migrations for the kennel record store.
//
//go:embed *.sql
var Files embed.FS
