// Package registry assigns a student's per-class registry (journal) number and the matching
// registry-slip code.
//
// Students enrolled before September 1 of their enrollment year are numbered by the class
// roster sorted by name; later enrollments are numbered in enrollment order. A candidate that
// is not persisted yet always receives the next sequential number, regardless of where its
// name would sort among already numbered classmates.
package registry
