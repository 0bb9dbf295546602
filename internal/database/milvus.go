package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/milvus-io/milvus-sdk-go/v2/client"

	"litigator/config"
)

var (
	milvusOnce sync.Once
	milvusCli  client.Client
	milvusErr  error
)

// InitMilvus connects the process-wide Milvus client.
func InitMilvus(ctx context.Context) (client.Client, error) {
	milvusOnce.Do(func() {
		milvusCli, milvusErr = client.NewClient(ctx, client.Config{
			Address: config.GetConfig().Milvus.Address,
		})
		if milvusErr != nil {
			milvusErr = fmt.Errorf("failed to connect to milvus: %w", milvusErr)
		}
	})
	return milvusCli, milvusErr
}

func GetMilvusClient() client.Client {
	return milvusCli
}
