package gstorage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// StorageStub is an in-memory ObjectStore keyed by "bucket/object".
type StorageStub struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	UploadError error
	Downloads   int
}

func NewStorageStub() *StorageStub {
	return &StorageStub{Objects: map[string][]byte{}}
}

func (stub *StorageStub) UploadFile(ctx context.Context, bucket, object, filePath string) error {
	if stub.UploadError != nil {
		return stub.UploadError
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if object == "" {
		object = filepath.Base(filePath)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.Objects[bucket+"/"+object] = data

	return nil
}

func (stub *StorageStub) DownloadFile(ctx context.Context, bucket, object, destFileName string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.Downloads++
	data, ok := stub.Objects[bucket+"/"+object]
	if !ok {
		return ErrObjectNotExist
	}

	return os.WriteFile(destFileName, data, 0644)
}

// Put stores data under bucket/object.
func (stub *StorageStub) Put(bucket, object string, data []byte) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.Objects[bucket+"/"+object] = data
}
