// Package school holds the table-level repos for the school register.
//
// Repos run on dbc.Tx when set and on their own handle otherwise. They never derive
// fields; registry numbers and annual hours are computed by the aggregates before a row
// reaches Create or Update.
package school
