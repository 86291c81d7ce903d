// Package coprofile extracts structured company profiles from profile pages
// of a single source site. It fetches each page, runs a set of independent
// heuristic parsers over the markup, assembles the fragments into one
// canonical record, and validates the batch against a fixed schema.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, slog/).
package coprofile
