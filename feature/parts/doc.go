// Package parts implements the spare-part inventory feature.
//
// Parts are keyed by their business reference (the vendor/ERP code). The
// package reconciles xlsx stock exports against the database, serves the
// filtered inventory listing, and manages the part↔machine compatibility
// pairs.
//
// # Components
//
//   - importer: parses spreadsheets, validates rows, and reconciles them
//     against the store (insert / update / reject, with a dry-run preview).
//   - store: the persistence gateway on top of GORM/MySQL.
//   - Service: orchestrates imports, listings, updates, and image storage.
//   - Handler: exposes the HTTP endpoints.
//
// # HTTP Endpoints
//
//   - POST /parts/import           : Import an xlsx spreadsheet.
//   - POST /parts/import/preview   : Dry-run an import.
//   - GET  /parts                  : List parts (search, stock filter, paging).
//   - GET  /parts/by-machine       : List parts for an exact machine triple.
//   - GET  /parts/:id              : Get one part with its machine ids.
//   - PUT  /parts/:id              : Partial update (fields, image, machines).
//   - DELETE /parts/:id            : Delete a part.
package parts
