// Package services implements the reference station source.
//
// # Source Interface
//
// [Source] supplies the reference station collection. The reconciliation engine fetches it once per run.
//
// # Wiki Implementation
//
// [WikiSource] downloads an HTML page and reads the first table classed "standard sortable".
// Every row after the header row becomes one [models.Station]:
//
//	| frequency | name (link) | site (link) | RDS ("+") | power, kW | tower |
//
// Decimal cells accept "," or "." as the separator.
//
// # Text Encoding
//
// Two independent transforms are available, both backed by golang.org/x/text:
//   - the page body can be decoded from a legacy charset before parsing (source.charset)
//   - station names can be repaired with a [NameDecoder] when UTF-8 text was read as a legacy
//     code page upstream (source.name_codepage)
//
// # Error Handling
//
//   - [shared.ErrFetchFailed] : transport failure or non-2xx status
//   - [shared.ErrMalformedRecord] : missing table, short row, unparseable frequency or power, empty name
package services
