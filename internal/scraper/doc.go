// Package scraper fetches baseball-reference.com pages and extracts their data
// tables into table.Table values.
//
// Extraction has three steps. A Locator finds the target table, either among the
// rendered elements or inside HTML comments, where the site hides many of its
// tables. Normalize then walks the table rows according to a RowSpec, skipping
// spacer and summary rows, capturing the header, and emitting one record per
// data row. Client ties these to the URL of each page type.
package scraper
