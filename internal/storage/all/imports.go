// Package all wires every built-in storage backend into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete backend to run, which in
// turn register their factories and DDL bootstrappers with the storage
// package. Importing this package makes the following storage kinds available
// at runtime:
//
//   - "postgres" (onrretl/internal/storage/postgres)
//   - "sqlite"   (onrretl/internal/storage/sqlite)
//   - "mssql"    (onrretl/internal/storage/mssql)
//
// Binaries that only need a subset can blank-import the individual backend
// packages instead.
package all

import (
	_ "onrretl/internal/storage/mssql"
	_ "onrretl/internal/storage/postgres"
	_ "onrretl/internal/storage/sqlite"
)
