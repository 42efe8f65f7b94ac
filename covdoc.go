// Package covdoc provides a local CLI tool for searching community
// association rules. It crawls a covenant website, ingests the residential
// improvement guidelines PDF, splits content into tagged overlapping chunks,
// indexes the chunks with vector embeddings, and serves similarity search
// with topic boosting and rule-conflict detection.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package covdoc
