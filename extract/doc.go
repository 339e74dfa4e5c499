// Package extract turns documents into complete metadata records.
//
// Two strategies exist. DeterministicExtractor applies title and content
// patterns and is always available. ProbabilisticExtractor asks a model through
// ai.MetadataExtractor and normalizes the spans it returns; it falls back to
// the deterministic rules per document on any failure. Detect pings the model
// once at start-up and picks the strategy for the run.
//
// Deterministic is also exported as a plain function so callers can compute
// the rule-based record regardless of the active strategy.
package extract
