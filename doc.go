// Package holdings turns periodic broker holding exports into portfolio reports.
//
// The package holds the domain of the findash tool:
//   - Valuation records: one holding's units, cost and value on a valuation date, as read
//     from one export file. Missing amounts are kept as null, not zero.
//   - Numeric normalisation: raw export cells ("1,234.50", "") to exact decimals.
//   - Aggregation: records grouped per holding, optionally restricted to one valuation
//     date, with profit and percentage return derived from the sums, best performers first.
//   - Portfolio totals with the same zero-cost guard as each holding.
//
// All amounts are exact decimals, so a report computed from the same records is identical
// whatever store the records were read back from. Parsing vendor files lives in the hl
// package, persistence in store and report documents in renderer.
package holdings
