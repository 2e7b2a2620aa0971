// Package storage provides the object-storage client used for remote
// table backups.
//
// After a safe merge is persisted locally, the reconciliation service can
// upload the merged tables to an S3-compatible bucket. The Client
// interface narrows the Minio SDK to the operations the application needs
// so that tests can substitute a mock (see the mocks subpackage).
package storage
