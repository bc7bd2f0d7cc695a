package nhse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"covidcharts/src/common"

	"golang.org/x/sync/errgroup"
)

// Downloader mirrors published workbooks into a local directory.
type Downloader struct {
	baseURL    string
	dir        string
	workers    int
	httpClient *http.Client
}

func NewDownloader(baseURL, dir string, workers int, timeout time.Duration) *Downloader {
	if workers < 1 {
		workers = 1
	}
	return &Downloader{
		baseURL: baseURL,
		dir:     dir,
		workers: workers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Path is the local copy of the workbook for report date d.
func (dl *Downloader) Path(d time.Time) string {
	return filepath.Join(dl.dir, FileName(d))
}

// Fetch downloads every workbook in dates that is not already on disk and
// returns how many were fetched. The first failure cancels the rest.
func (dl *Downloader) Fetch(ctx context.Context, dates []time.Time) (int, error) {
	if err := common.EnsureDir(dl.dir); err != nil {
		return 0, err
	}
	var missing []time.Time
	for _, d := range dates {
		exists, err := common.FileExists(dl.Path(d))
		if err != nil {
			return 0, err
		}
		if !exists {
			missing = append(missing, d)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dl.workers)
	for _, d := range missing {
		d := d
		g.Go(func() (err error) {
			defer common.RecoverError(&err)
			return dl.fetchOne(ctx, d)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(missing), nil
}

func (dl *Downloader) fetchOne(ctx context.Context, d time.Time) error {
	u := URL(dl.baseURL, d)
	common.Logger.Sugar().Infof("Downloader fetchOne fetching %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("Downloader fetchOne create request error: %w", err)
	}
	resp, err := dl.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Downloader fetchOne %s error: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Downloader fetchOne %s: status %d", u, resp.StatusCode)
	}

	fw, err := common.NewFileWriter(dl.Path(d))
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, resp.Body); err != nil {
		fw.Abort()
		return fmt.Errorf("Downloader fetchOne %s copy error: %w", u, err)
	}
	return fw.Close()
}
