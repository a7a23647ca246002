// Package table provides the rectangular record set returned by every extraction.
//
// A Table is an ordered header plus rows of string cells. Every row has exactly
// the header's width; construction rejects anything else. Column helpers cover
// the small amount of post-processing the extractors need (dropping columns,
// filtering rows) and numeric summaries for the CLI.
package table
