// Package s3 provides a bucket-scoped client for S3-compatible object
// storage.
//
// It backs the S3 deployment state store: objects are read, written and
// deleted under a single bucket, which is created on first use.
package s3
