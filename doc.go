// Package annbench provides a brute-force baseline for filtered
// approximate nearest-neighbor benchmarks over the SIGMOD 2024 contest
// dataset format.
//
// The baseline intentionally scans only a small deterministic prefix of
// the node dataset per query, trading recall for bounded work. It is a
// reference lower bound, not an index: no graph, tree or hashing
// structure is built.
//
// # Quick Start
//
//	schema := dataset.DefaultSchema()
//
//	loader := annbench.NewLoader(blobstore.NewLocalStore("./testdata"))
//	nodes, _ := loader.Nodes(ctx, "dummy-data.bin", schema)
//	queries, _ := loader.Queries(ctx, "dummy-queries.bin", schema)
//
//	runner, _ := annbench.New(schema)
//	results, _ := runner.Run(ctx, nodes, queries)
//
//	_ = loader.WriteResults(ctx, "output.bin", results)
//
// Datasets may live on the local filesystem, in memory, or in S3/MinIO
// compatible object storage; zstd- and lz4-compressed files are
// decompressed transparently.
package annbench
