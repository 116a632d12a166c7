// Package extract reads tables out of a database in bounded chunks.
//
// Three forward-only readers share one shape: Next returns the next Chunk
// or io.EOF once the source is exhausted, and at most one chunk is held in
// memory at a time.
//
//   - BatchReader pages a table with the dialect's offset idiom.
//   - DeltaReader pages a CDC change log, keeping only the newest row per
//     primary key changed after a watermark.
//   - ScanReader streams a whole table, through a server cursor where the
//     dialect has one.
//
// Errors from the connection are returned unchanged.
package extract
