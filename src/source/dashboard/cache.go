package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"covidcharts/src/common"
)

// Fetcher is satisfied by Client and CachedClient.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]*Record, error)
}

// CachedClient keeps one gzip JSON copy of a query's result per day in dir so
// repeated runs on the same day skip the network.
type CachedClient struct {
	next Fetcher
	dir  string
	name string
}

func NewCachedClient(next Fetcher, dir, name string) *CachedClient {
	return &CachedClient{next: next, dir: dir, name: name}
}

func (c *CachedClient) path(day time.Time) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s-%s.json.gz", c.name, day.Format(common.DateLayout)))
}

func (c *CachedClient) Fetch(ctx context.Context, q Query) ([]*Record, error) {
	p := c.path(common.Day(common.Clock.Now()))
	exists, err := common.FileExists(p)
	if err != nil {
		return nil, err
	}
	if exists {
		b, err := common.ReadGzFile(p)
		if err != nil {
			return nil, fmt.Errorf("CachedClient Fetch read %s error: %w", p, err)
		}
		var records []*Record
		if err := json.Unmarshal(b, &records); err != nil {
			return nil, fmt.Errorf("CachedClient Fetch decode %s error: %w", p, err)
		}
		common.Logger.Sugar().Infof("CachedClient Fetch cache hit %s (%d records)", p, len(records))
		return records, nil
	}

	records, err := c.next.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	if err := common.EnsureDir(c.dir); err != nil {
		return nil, err
	}
	if err := common.WriteGzFile(p, b); err != nil {
		return nil, fmt.Errorf("CachedClient Fetch write %s error: %w", p, err)
	}
	return records, nil
}
