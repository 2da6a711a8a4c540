// Package aggregates implements the school write boundaries.
//
// Each aggregate composes the table-level repos from internal/data/repos, owns the
// transaction around a write, and calls the pure derivations in internal/modules/school
// before persisting. Repos never derive fields themselves.
package aggregates
