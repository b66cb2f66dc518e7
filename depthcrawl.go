// Package depthcrawl provides a depth-bounded concurrent web crawler.
// Given a seed URL and a maximum depth it fetches pages, extracts hyperlink
// targets, resolves them against the originating domain, and recursively
// fetches the discovered links up to the depth bound, fanning every
// discovered link out to a consumer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/, bloom/).
package depthcrawl
