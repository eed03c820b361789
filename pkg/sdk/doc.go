// Package winnow provides a Go client for the winnow dataset cleaning
// engine: quality scoring, exact-duplicate filtering and MinHash/LSH
// near-duplicate collapse over transcript/translation text pairs.
//
// # In-memory cleaning
//
//	client, _ := winnow.New(ctx)
//	cleaned, stats, _ := client.Clean(ctx, records)
//
// # Stored datasets backed by Redis
//
//	client, _ := winnow.New(ctx, winnow.WithRedis("localhost:6379", ""))
//	_ = client.Datasets().Put(ctx, "podcasts", records)
//	stats, _ := client.Datasets().Clean(ctx, "podcasts")
package winnow
