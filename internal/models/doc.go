// Package models defines the station entity and the equality rules used to reconcile station catalogs.
//
// A station has two notions of sameness:
//
//  1. Primary key: [ByFrequency]. Two stations are the same record iff their frequencies are equal.
//     Decides presence or absence (insert and delete candidacy).
//  2. Content: [ByContent]. Frequency plus the name truncated to a fixed length.
//     Two stations already matched by frequency are unchanged only if their truncated names agree.
//
// Equality is expressed as comparable key functions passed to the generic set operations
// [Except] and [Intersect], so every comparison is consistent with hashing.
//
// Frequencies are exact: a [Frequency] counts tenths of a MHz, which is also the integer
// encoding used by the local store.
package models
