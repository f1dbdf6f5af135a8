// Package s3 provides a BlobStore implementation for Amazon S3.
//
// Datasets are streamed straight from GetObject; result uploads stream
// through an io.Pipe into the S3 upload manager, so neither direction
// buffers a whole file in memory.
//
// # Basic Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("datasets/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loader := annbench.NewLoader(store)
//	nodes, err := loader.Nodes(ctx, "dummy-data.bin", dataset.DefaultSchema())
package s3
