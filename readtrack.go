// Package readtrack tracks reading progress across web-based materials and
// keeps saved quotes anchored to the pages they were taken from. Saved quotes
// are relocated in the live page by text plus surrounding context, wrapped in
// highlight markers, and used as scroll targets when a page is revisited.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package readtrack
