package s3

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/annbench/blobstore"
)

// fakeClient serves GetObject and the upload manager's PutObject path
// from an in-memory map.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string][]byte

	lastBucket string
	lastKey    string
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (f *fakeClient) GetObject(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastBucket = aws.ToString(params.Bucket)
	f.lastKey = aws.ToString(params.Key)

	data, ok := f.objects[f.lastKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeClient) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeClient) UploadPart(context.Context, *awss3.UploadPartInput, ...func(*awss3.Options)) (*awss3.UploadPartOutput, error) {
	panic("single-part uploads only in tests")
}

func (f *fakeClient) CreateMultipartUpload(context.Context, *awss3.CreateMultipartUploadInput, ...func(*awss3.Options)) (*awss3.CreateMultipartUploadOutput, error) {
	panic("single-part uploads only in tests")
}

func (f *fakeClient) CompleteMultipartUpload(context.Context, *awss3.CompleteMultipartUploadInput, ...func(*awss3.Options)) (*awss3.CompleteMultipartUploadOutput, error) {
	panic("single-part uploads only in tests")
}

func (f *fakeClient) AbortMultipartUpload(context.Context, *awss3.AbortMultipartUploadInput, ...func(*awss3.Options)) (*awss3.AbortMultipartUploadOutput, error) {
	panic("single-part uploads only in tests")
}

func TestStore_Open(t *testing.T) {
	client := newFakeClient()
	client.objects["datasets/nodes.bin"] = []byte("payload")

	store := NewStore(client, "bench-bucket", WithPrefix("datasets"))

	blob, err := store.Open(context.Background(), "nodes.bin")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, "bench-bucket", client.lastBucket)
	assert.Equal(t, "datasets/nodes.bin", client.lastKey)
	assert.Equal(t, int64(7), blob.Size())

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestStore_OpenNotFound(t *testing.T) {
	store := NewStore(newFakeClient(), "bench-bucket")

	_, err := store.Open(context.Background(), "missing.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_Create(t *testing.T) {
	client := newFakeClient()
	store := NewStore(client, "bench-bucket", WithPrefix("results"))

	w, err := store.Create(context.Background(), "out.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("rows"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte("rows"), client.objects["results/out.bin"])

	// The blob is single-use.
	_, err = w.Write([]byte("more"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)
}
