package index

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/shoe_shop/pkg/retry"
)

// NewClient connects to Elasticsearch and waits until the cluster answers.
func NewClient(ctx context.Context, url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	err = retry.Do(ctx, retry.Config{MaxAttempts: 10, InitialDelay: time.Second, MaxDelay: 10 * time.Second}, func() error {
		res, err := client.Info(client.Info.WithContext(ctx))
		if err != nil {
			return err
		}
		defer res.Body.Close()
		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			return fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}
	return client, nil
}
