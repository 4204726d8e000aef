// Package adminmedia is the client-side core of the Habitara back-office:
// CRUD for news articles ("noticias") and promotions ("publicidad") against
// the metadata REST API, plus the media-attachment lifecycle that keeps each
// record's single optional attachment consistent between the metadata store
// and the blob bucket.
//
// The consistency contract is deliberately asymmetric: blobs are written
// before the metadata mutation that references them and removed only after
// the mutation that drops the reference has been acknowledged. A crash or
// failure mid-operation can therefore leave an orphaned blob, never a record
// pointing at a blob that does not exist.
package adminmedia
