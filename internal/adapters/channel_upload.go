package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condarecipe/internal/ports"
	"condarecipe/internal/shared"
)

// ChannelUploadAdapter pushes built package artifacts into a channel
// server's platform subdirectory over HTTP PUT.
type ChannelUploadAdapter struct {
	Endpoint     string
	ArtifactsDir string
	Username     string
	APIKey       string
	Workers      int
	Timeout      time.Duration
	Retries      int
	RetryDelay   time.Duration
}

const defaultUploadWorkers = 4
const defaultUploadRetries = 3
const defaultUploadRetryDelay = 200 * time.Millisecond
const defaultUploadTimeout = 60 * time.Second
const maxUploadRetryDelay = 2 * time.Second

func NewChannelUploadAdapter(endpoint string, artifactsDir string, username string, apiKey string, workers int, timeoutSec int, retries int, retryDelayMs int) ChannelUploadAdapter {
	if workers <= 0 {
		workers = defaultUploadWorkers
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	if retries <= 0 {
		retries = defaultUploadRetries
	}
	delay := time.Duration(retryDelayMs) * time.Millisecond
	if delay <= 0 {
		delay = defaultUploadRetryDelay
	}
	return ChannelUploadAdapter{
		Endpoint:     endpoint,
		ArtifactsDir: artifactsDir,
		Username:     username,
		APIKey:       apiKey,
		Workers:      workers,
		Timeout:      timeout,
		Retries:      retries,
		RetryDelay:   delay,
	}
}

func (a ChannelUploadAdapter) Upload(ctx context.Context, subdir string) error {
	if strings.TrimSpace(a.Endpoint) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel endpoint is empty")
	}
	if strings.TrimSpace(subdir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel subdir is empty")
	}
	if strings.TrimSpace(a.ArtifactsDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifacts directory is empty")
	}
	artifacts, err := listArtifacts(a.ArtifactsDir)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no package artifacts found")
	}
	return a.uploadParallel(ctx, artifacts, subdir)
}

func (a ChannelUploadAdapter) uploadParallel(ctx context.Context, artifacts []string, subdir string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var firstErr error
	workerCount := a.Workers
	if len(artifacts) < workerCount {
		workerCount = len(artifacts)
	}
	if workerCount == 0 {
		return nil
	}
	tasks := make(chan string)
	results := make(chan error, len(artifacts))
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for artifact := range tasks {
				if ctx.Err() != nil {
					results <- ctx.Err()
					continue
				}
				results <- a.uploadArtifact(ctx, artifact, subdir)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	for _, artifact := range artifacts {
		tasks <- artifact
	}
	close(tasks)

	for err := range results {
		if err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

func (a ChannelUploadAdapter) uploadArtifact(ctx context.Context, path string, subdir string) error {
	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		retry, err := a.uploadOnce(ctx, path, subdir)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return err
		}
		time.Sleep(a.uploadRetryDelay(attempt))
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel upload failed")
	}
	return lastErr
}

func (a ChannelUploadAdapter) uploadOnce(ctx context.Context, path string, subdir string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifact not found").
			WithCause(err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat artifact").
			WithCause(err)
	}

	target := fmt.Sprintf(
		"%s/%s/%s",
		strings.TrimRight(a.Endpoint, "/"),
		url.PathEscape(subdir),
		url.PathEscape(filepath.Base(path)),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, file)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid upload url").
			WithCause(err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", "application/octet-stream")
	if a.Username != "" || a.APIKey != "" {
		req.SetBasicAuth(a.Username, a.APIKey)
	}

	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel upload failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return retry, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("channel upload rejected: %s", filepath.Base(path))).
			WithCause(shared.HTTPStatusError(resp.StatusCode, target))
	}
	return false, nil
}

func (a ChannelUploadAdapter) uploadRetryDelay(attempt int) time.Duration {
	delay := a.RetryDelay << attempt
	if delay > maxUploadRetryDelay {
		return maxUploadRetryDelay
	}
	return delay
}

// listArtifacts returns the package files in a directory, sorted.
// Only the two conda archive formats are considered.
func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("artifacts directory not found").
			WithCause(err)
	}
	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".tar.bz2") || strings.HasSuffix(name, ".conda") {
			artifacts = append(artifacts, filepath.Join(dir, name))
		}
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

var _ ports.ChannelUploadPort = ChannelUploadAdapter{}
