// Package s3 implements blobstore.Store for Amazon S3.
//
// Blobs support ranged reads and whole-object downloads via the AWS
// transfer manager, so large CSV exports can be materialized locally and
// memory-mapped without buffering them in the Go heap.
package s3
