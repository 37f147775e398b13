// Package legible extracts the main readable content from HTML pages.
// Given raw markup it derives the article title and body using structural
// and lexical heuristics, discarding navigation, ads, comments, and other
// boilerplate. Around the extraction engine it provides fetching, markdown
// conversion, sanitization, a persistent article cache, and a CLI.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., readability/, sqlite/, goquery/).
package legible
