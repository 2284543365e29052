// Package types defines the data model shared by every codectable component:
// table rows, schema generations, the alias/section catalog, validation
// diagnostics and the error taxonomy.
//
// Design goals:
//   - Schema generations are data, not branches: a Schema value decides the
//     column layout and which checks run.
//   - Catalog values (alias groups, MIME sections) are built once and never
//     mutated; they are passed explicitly to the validator and synchronizer.
//   - Validation never fails fast. Violations are Diagnostics collected into
//     a Report; only structural and precondition failures are errors.
//
// This package has no dependencies beyond the standard library.
package types
