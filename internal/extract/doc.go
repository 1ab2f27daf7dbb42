// Package extract recovers reservation events from raw EMS availability
// pages. The booking system never exposes a formal schema, so the engine
// runs three independent heuristics over every page and takes the union of
// whatever they find:
//
//   - grid: the availability grid table (time rows x room columns)
//   - jsonembed: reservation arrays embedded in inline scripts
//   - element: free-text DOM elements carrying a time range in prose
//
// Strategies abstain rather than fail; a page matching none of them simply
// yields zero records. Redundant finds across strategies are collapsed
// downstream by the collector's dedup pass.
//
// Known precision limitation: the grid strategy emits one 30-minute record
// per reserved cell and does not merge adjacent cells for the same room, so
// a two-hour booking appears as four half-hour records.
package extract
