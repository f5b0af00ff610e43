package fetcher

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
)

// FileFetcher serves specific URLs from local files, delegating everything
// else to a fallback fetcher. Used for offline and reproducible builds.
type FileFetcher struct {
	paths    map[string]string
	fallback Fetcher
}

// NewFileFetcher maps URL -> local path. fallback may be nil, in which case
// unmapped URLs fail.
func NewFileFetcher(paths map[string]string, fallback Fetcher) *FileFetcher {
	return &FileFetcher{paths: paths, fallback: fallback}
}

func (f *FileFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if path, ok := f.paths[url]; ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: read local page %s", path)
		}
		return string(data), nil
	}
	if f.fallback != nil {
		return f.fallback.FetchPage(ctx, url)
	}
	return "", eris.Errorf("fetcher: no local file mapped for %s", url)
}
