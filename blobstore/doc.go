// Package blobstore provides storage abstraction for benchmark datasets
// and result files.
//
// Datasets are immutable and consumed in a single sequential pass, so a
// Blob is a stream with a known size rather than a random-access handle.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic result writes via temp+rename
//   - MemoryStore: in-memory store for testing
//   - s3.Store: Amazon S3 with streaming uploads
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore
