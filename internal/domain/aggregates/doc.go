// Package aggregates defines the school write boundaries.
//
// Contracts here carry no persistence detail; each one names a set of writes whose
// derived fields and cascades must be applied inside one transaction.
package aggregates
