// Package notebook implements the notebook editor panel: a virtualized list
// of markdown and code cells.
//
// # Architecture
//
// The panel is composed of several components:
//
//   - RowDelegate: row height and template kind for a cell, from font Metrics
//   - MarkdownRenderer / CodeRenderer: create, populate and dispose row
//     templates for their kind of cell
//   - ListView: virtualized list that pools templates per kind, populates
//     only the visible rows and recycles templates as rows scroll out
//   - Editor: the host panel; owns the notebook document, the list view and
//     the context menu, and keeps document and list in lockstep
//
// # Row ownership
//
// A RowTemplate is bound to at most one cell at a time. Everything a
// renderer acquires while populating a template (the gear listener, the
// editor's text model) is owned by that binding and released when the row
// is rebound, scrolls out, or the template is discarded. The gear
// affordance therefore never carries more than one live listener.
//
// # Units
//
// Heights are terminal rows. Metrics.LineHeight is the number of rows per
// source line and Metrics.CodeChrome the fixed rows drawn around a code
// cell (its border).
package notebook
