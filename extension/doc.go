// Package extension mounts Syllabus into a host application.
//
// The extension:
//   - Builds the Syllabus engine over a configured store
//   - Wraps the store in a Redis report cache when a kv store is given
//   - Runs store migrations on Init
//   - Serves the catalog API as a plain http.Handler or on a Forge router
//   - Provides health checks via store.Ping
//
// Usage:
//
//	ext := extension.New(
//	    extension.WithStore(postgres.New(db)),
//	    extension.WithGroveKV(kvStore),
//	    extension.WithPrefix("/api"),
//	)
//	if err := ext.Init(ctx); err != nil {
//	    return err
//	}
//	http.Handle("/api/", ext.Handler())
package extension
