// Package sheet implements the shared key sheet that monitors reconcile against.
//
// Two backends satisfy reconcile.Store:
//
//   - ObjectStore: the row range is a headerless CSV object in S3/MinIO
//     (unit, key_level, location_name, last_updated, source_id, generated_at).
//     A write is a single PutObject of the whole range.
//   - TableStore: the rows live in the key_rows table, ordered by position.
//     A write deletes and re-inserts inside one transaction.
//
// New picks the backend from the store.driver setting.
package sheet
