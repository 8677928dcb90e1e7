package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"condarecipe/internal/core"
	"condarecipe/internal/ports"
	"condarecipe/internal/shared"
	"condarecipe/internal/types"
)

type ChannelIndexBuilderAdapter struct {
	Workspace ports.WorkspacePort
	Recipes   ports.RecipeLoaderPort
}

type ChannelIndexWriterAdapter struct{}

const defaultChannelFetchWorkers = 4
const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

func NewChannelIndexBuilderAdapter(workspace ports.WorkspacePort, recipes ports.RecipeLoaderPort) ChannelIndexBuilderAdapter {
	return ChannelIndexBuilderAdapter{
		Workspace: workspace,
		Recipes:   recipes,
	}
}

func NewChannelIndexWriterAdapter() ChannelIndexWriterAdapter {
	return ChannelIndexWriterAdapter{}
}

func (a ChannelIndexBuilderAdapter) Build(ctx context.Context, request ports.IndexBuildRequest) (types.ChannelIndexFile, error) {
	if len(request.RecipeRoots) == 0 && len(request.Channels) == 0 {
		return types.ChannelIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index build requires recipe roots or channels")
	}
	subdir := strings.TrimSpace(request.Subdir)
	if subdir == "" {
		subdir = "noarch"
	}
	merged := map[string]map[types.IndexEntry]struct{}{}

	local, err := a.buildFromRecipes(request)
	if err != nil {
		return types.ChannelIndexFile{}, err
	}
	mergeEntries(merged, local)

	if len(request.Channels) > 0 {
		httpCfg := normalizeHTTPConfig(request.HTTPTimeoutSec, request.HTTPRetries, request.HTTPRetryDelayMs)
		remote, err := buildFromChannels(ctx, request.Channels, subdir, request.User, request.APIKey, request.Workers, httpCfg)
		if err != nil {
			return types.ChannelIndexFile{}, err
		}
		mergeEntries(merged, remote)
	}

	index := types.ChannelIndexFile{
		Subdir:   subdir,
		Packages: map[string][]types.IndexEntry{},
	}
	for name, entries := range merged {
		for entry := range entries {
			index.Packages[name] = append(index.Packages[name], entry)
		}
		core.SortVersionsDescending(index.Packages[name])
	}
	return index, nil
}

// buildFromRecipes renders every recipe under the requested roots and
// records its package identity as one installable entry.
func (a ChannelIndexBuilderAdapter) buildFromRecipes(request ports.IndexBuildRequest) (map[string][]types.IndexEntry, error) {
	out := map[string][]types.IndexEntry{}
	renderCtx := types.RenderContext{
		Platform:  request.Platform,
		PyVersion: request.PyVersion,
	}
	for _, root := range request.RecipeRoots {
		paths, err := a.Workspace.FindRecipes(root)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			recipe, err := a.Recipes.Load(path, renderCtx)
			if err != nil {
				return nil, err
			}
			name := shared.NormalizePackageName(recipe.Package.Name)
			if name == "" {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("recipe without package name: %s", path))
			}
			out[name] = append(out[name], types.IndexEntry{
				Version:     recipe.Package.Version,
				BuildNumber: recipe.Build.Number,
			})
		}
	}
	return out, nil
}

// repodataFile is the subset of a channel's repodata.json consumed here.
type repodataFile struct {
	Packages      map[string]repodataRecord `json:"packages"`
	PackagesConda map[string]repodataRecord `json:"packages.conda"`
}

type repodataRecord struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Build       string `json:"build"`
	BuildNumber int    `json:"build_number"`
}

func buildFromChannels(ctx context.Context, channels []string, subdir string, user string, apiKey string, workerCount int, httpCfg httpRetryConfig) (map[string][]types.IndexEntry, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	merged := map[string][]types.IndexEntry{}
	var mu sync.Mutex
	var errMu sync.Mutex
	var firstErr error
	if workerCount <= 0 {
		workerCount = defaultChannelFetchWorkers
	}
	if len(channels) < workerCount {
		workerCount = len(channels)
	}
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for _, channel := range channels {
		channel := channel
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			entries, err := fetchRepodata(ctx, channel, subdir, user, apiKey, httpCfg)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				errMu.Unlock()
				return
			}
			mu.Lock()
			for name, list := range entries {
				merged[name] = append(merged[name], list...)
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return merged, nil
}

func fetchRepodata(ctx context.Context, channel string, subdir string, user string, apiKey string, httpCfg httpRetryConfig) (map[string][]types.IndexEntry, error) {
	url := fmt.Sprintf("%s/%s/repodata.json", strings.TrimRight(strings.TrimSpace(channel), "/"), subdir)
	body, err := fetchWithRetries(ctx, url, user, apiKey, httpCfg)
	if err != nil {
		return nil, err
	}
	var repodata repodataFile
	if err := json.Unmarshal(body, &repodata); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid repodata from %s", url)).
			WithCause(err)
	}
	out := map[string][]types.IndexEntry{}
	for _, records := range []map[string]repodataRecord{repodata.Packages, repodata.PackagesConda} {
		for _, record := range records {
			name := shared.NormalizePackageName(record.Name)
			if name == "" || record.Version == "" {
				continue
			}
			out[name] = append(out[name], types.IndexEntry{
				Version:     record.Version,
				BuildString: record.Build,
				BuildNumber: record.BuildNumber,
			})
		}
	}
	return out, nil
}

func fetchWithRetries(ctx context.Context, url string, user string, apiKey string, httpCfg httpRetryConfig) ([]byte, error) {
	client := &http.Client{Timeout: httpCfg.timeout}
	var lastErr error
	for attempt := 0; attempt < httpCfg.retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		body, retry, err := fetchOnce(ctx, client, url, user, apiKey)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == httpCfg.retries-1 {
			return nil, err
		}
		time.Sleep(retryDelay(httpCfg.baseDelay, attempt))
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel fetch failed")
	}
	return nil, lastErr
}

func fetchOnce(ctx context.Context, client *http.Client, url string, user string, apiKey string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid channel url").
			WithCause(err)
	}
	if user != "" || apiKey != "" {
		req.SetBasicAuth(user, apiKey)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel fetch failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel fetch failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("channel response read failed").
			WithCause(err)
	}
	return body, false, nil
}

func retryDelay(base time.Duration, attempt int) time.Duration {
	delay := base << attempt
	if delay > maxHTTPRetryDelay {
		return maxHTTPRetryDelay
	}
	return delay
}

func mergeEntries(merged map[string]map[types.IndexEntry]struct{}, incoming map[string][]types.IndexEntry) {
	for name, entries := range incoming {
		if merged[name] == nil {
			merged[name] = map[types.IndexEntry]struct{}{}
		}
		for _, entry := range entries {
			merged[name][entry] = struct{}{}
		}
	}
}

func (a ChannelIndexWriterAdapter) Write(path string, index types.ChannelIndexFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal channel index").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create index directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write channel index").
			WithCause(err)
	}
	return nil
}

var _ ports.ChannelIndexBuilderPort = ChannelIndexBuilderAdapter{}
var _ ports.ChannelIndexWriterPort = ChannelIndexWriterAdapter{}
