// Package storage reads and writes objects in S3-compatible storage.
//
// massmail keeps recipient lists and dispatch reports in a bucket so runs
// can be scheduled on machines without a local copy of the list:
//
//	loc, err := storage.ParseURI("s3://lists/october/recipients.csv")
//	if err != nil {
//		return err
//	}
//	store, err := storage.New(storage.Config{
//		Bucket:    loc.Bucket,
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	})
//	if err != nil {
//		return err
//	}
//	set, err := recipient.LoadObject(ctx, store, loc.Key)
//
// Reports are written with PutBytes or Put. Without an explicit key the
// object name is a UUID with an extension derived from the content type,
// under the optional prefix.
//
// # Errors
//
// S3 failures are normalized to sentinel errors, so callers test with
// errors.Is instead of inspecting AWS types:
//
//	rc, err := store.Get(ctx, key)
//	if errors.Is(err, storage.ErrNotFound) {
//		// no such list
//	}
//
// For MinIO or other S3-compatible services set Endpoint and PathStyle.
package storage
