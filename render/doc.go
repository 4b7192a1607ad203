// Package render holds the contract shared by the output backends.
//
// [Prepare] runs the backend-independent pipeline once: it positions every
// layout, resolves effective properties and interpolates every content
// leaf against the data context. The resulting [Document] is read-only and
// identical for all backends, which keeps property and text semantics in
// sync across the HTML, markup and JSON emitters.
//
// Backends implement [Backend] and drive it through a [Dispatcher], which
// switches exhaustively over layout kinds and enforces the nesting depth
// guard. A backend recurses into nested layouts by calling the dispatcher,
// never its own methods, so grids inside tables inside stacks all work.
package render
