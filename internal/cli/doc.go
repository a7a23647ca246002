// Package cli implements the command-line interface for bbref.
//
// The cli package provides the Cobra-based commands that wrap each extraction
// (award voting, winner histories, career stats, career years, game logs,
// positions and player id guesses), applies the YAML config, and writes the
// resulting tables as aligned text, JSON, CSV or an Excel workbook.
package cli
