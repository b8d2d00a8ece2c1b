// Package licspend provides the types and functions for tracking
// software-publisher licensing spend, savings, risks and renewals. It is
// designed to be local-first and auditable, ensuring users keep full
// control over their licensing data.
//
// The core functionalities include:
//   - Record Store: the tabular collections (publishers, spend, risk,
//     managed titles, external KPIs) every figure derives from.
//   - Aggregation Engine: a family of pure functions mapping a record
//     store to chart-ready views (savings by type, risk counts, upcoming
//     renewals, compliance buckets, KPI totals). Same input, same output.
//   - Persistence Layer: durable storage of the record store over a
//     budgeted key/value substrate, with snapshots, eviction under
//     storage pressure, change notification and export/import.
//   - Field Configuration: which publisher fields exist and how they are
//     presented, including user-defined custom fields.
//   - Change History: a capped audit log of record edits.
//
// This package serves as the foundational logic for the `lss` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package licspend
