// Package state persists what a deployment created so that later runs can
// keep identities stable and remove every resource again.
//
// Records are stored as YAML, either in a local directory (FileStore) or in
// an S3 bucket (S3Store). Loading a name that was never saved yields an
// empty record rather than an error.
package state
