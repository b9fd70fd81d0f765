// Package scanner enumerates module definition files under a configured
// path and parses each into Descriptors. Parsing fans out across a bounded
// pool of workers because the work is I/O-bound; results are re-sorted by
// file path after collection so a scan over unchanged input always yields
// the same descriptor sequence.
//
// A file that cannot be read or parsed is reported as a ScanError for that
// file only. It never aborts the scan: the rest of the discovery run
// proceeds with whatever was parseable.
package scanner
