// Package woolworths is the Woolworths Australia driver: it orchestrates
// fetching, caching and extraction for detail lookups and paginated searches.
package woolworths

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shelfwatch/shelfwatch/cache"
	"github.com/shelfwatch/shelfwatch/config"
	"github.com/shelfwatch/shelfwatch/engine"
	"github.com/shelfwatch/shelfwatch/extract"
	"github.com/shelfwatch/shelfwatch/models"
)

const (
	// Identifier is the driver identity used in cache keys and logs.
	Identifier = "woolworths_australia"

	// Name is the human-readable driver name reported in errors.
	Name = "Woolworths Australia"

	// DefaultBaseURI is the retailer site root.
	DefaultBaseURI = "https://www.woolworths.com.au"
)

// Driver extracts Woolworths Australia product data. Detail lookups are
// stateless; Page and LastPage belong to the current search session, so
// construct a fresh Driver per paginated query. One Driver's page state is
// single-writer and must not be mutated from multiple goroutines.
type Driver struct {
	baseURI string
	engine  engine.Engine
	store   cache.Store
	limiter *rate.Limiter
	ttl     time.Duration
	workers int

	page     int
	lastPage int
}

// New creates a Driver. The limiter throttles outbound fetches and may be
// shared between drivers; pass nil to disable throttling.
func New(eng engine.Engine, store cache.Store, limiter *rate.Limiter, cfg config.DriverConfig) *Driver {
	baseURI := strings.TrimSuffix(cfg.BaseURI, "/")
	if baseURI == "" {
		baseURI = DefaultBaseURI
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	workers := cfg.SearchWorkers
	if workers <= 0 {
		workers = 4
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Driver{
		baseURI:  baseURI,
		engine:   eng,
		store:    store,
		limiter:  limiter,
		ttl:      ttl,
		workers:  workers,
		page:     1,
		lastPage: 1,
	}
}

// URL is the canonical (slugless) detail URL for an identifier.
func (d *Driver) URL(identifier string) string {
	return d.baseURI + "/shop/productdetails/" + identifier
}

// SearchURL is the search-results URL for the given keywords and page.
func (d *Driver) SearchURL(keywords string, page int) string {
	return d.baseURI + "/shop/search/products?searchTerm=" + url.QueryEscape(keywords) + "&pageNumber=" + strconv.Itoa(page)
}

// Find fetches and extracts a single product by identifier. An empty or
// failed fetch raises a connection failure naming the driver and the
// attempted URL; it is reported once, not retried. All other field problems
// degrade to absent fields on the returned Product.
func (d *Driver) Find(ctx context.Context, identifier string) (models.Product, error) {
	pageURL := d.URL(identifier)

	html, err := d.store.Remember(ctx, cache.Key(Identifier, "detail", identifier), d.ttl, func(ctx context.Context) (string, error) {
		return d.fetch(ctx, pageURL)
	})
	if err != nil || strings.TrimSpace(html) == "" {
		return models.Product{}, models.NewConnectionFailedError(Name, pageURL, err)
	}

	product, err := extract.Detail(identifier, d.baseURI, html)
	if err != nil {
		return models.Product{}, models.NewConnectionFailedError(Name, pageURL, err)
	}

	slog.Debug("detail extracted",
		"driver", Identifier,
		"identifier", identifier,
		"status", product.Status,
		"images", len(product.Images),
	)
	return product, nil
}

// Search fetches and extracts the currently selected results page for query,
// then updates Page and LastPage from the page's pagination indicator.
func (d *Driver) Search(ctx context.Context, query models.Query) (models.Results, error) {
	results, page, err := d.searchPage(ctx, query, d.page)
	if err != nil {
		return models.Results{}, err
	}

	d.page = page.Page
	d.lastPage = page.LastPage
	return results, nil
}

// SearchAll traverses every results page for query and merges them into one
// deduplicated collection. Pages after the first are fetched concurrently by
// a bounded worker pool, but merging happens sequentially in ascending page
// order so first-occurrence-wins de-duplication is deterministic across runs.
func (d *Driver) SearchAll(ctx context.Context, query models.Query) (models.Results, error) {
	first, err := d.SetPage(1).Search(ctx, query)
	if err != nil {
		return models.Results{}, err
	}

	last := d.lastPage
	if last <= 1 {
		return first, nil
	}

	pages := make([]models.Results, last+1)
	errs := make([]error, last+1)
	sem := make(chan struct{}, d.workers)
	var wg sync.WaitGroup

	for p := 2; p <= last; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			pages[p], _, errs[p] = d.searchPage(ctx, query, p)
		}(p)
	}
	wg.Wait()

	merged := first
	for p := 2; p <= last; p++ {
		if errs[p] != nil {
			return models.Results{}, errs[p]
		}
		merged = merged.Merge(pages[p])
	}

	slog.Info("search traversal merged",
		"driver", Identifier,
		"query", query.Keywords,
		"pages", last,
		"products", len(merged.Products),
	)
	return merged, nil
}

// searchPage fetches and extracts one results page without touching driver
// state, so traversal workers can run it concurrently.
func (d *Driver) searchPage(ctx context.Context, query models.Query, pageNum int) (models.Results, extract.SearchPage, error) {
	pageURL := d.SearchURL(query.Keywords, pageNum)

	key := cache.Key(Identifier, "search", query.CacheKey(), strconv.Itoa(pageNum))
	html, err := d.store.Remember(ctx, key, d.ttl, func(ctx context.Context) (string, error) {
		return d.fetch(ctx, pageURL)
	})
	if err != nil || strings.TrimSpace(html) == "" {
		return models.Results{}, extract.SearchPage{}, models.NewConnectionFailedError(Name, pageURL, err)
	}

	page := extract.Search(d.baseURI, html)
	slog.Debug("search page extracted",
		"driver", Identifier,
		"query", query.Keywords,
		"page", page.Page,
		"lastPage", page.LastPage,
		"products", len(page.Products),
	)

	q := query
	return models.Results{Query: &q, Products: page.Products, Raw: []byte(html)}, page, nil
}

// fetch pulls one page through the shared throttle. Transport errors are
// returned as-is; the callers collapse them into connection failures.
func (d *Driver) fetch(ctx context.Context, pageURL string) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}
	result, err := d.engine.Fetch(ctx, &engine.FetchRequest{URL: pageURL})
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// SetPage selects the results page for the next Search call. Pages are
// 1-based; values below 1 clamp to 1.
func (d *Driver) SetPage(page int) *Driver {
	if page < 1 {
		page = 1
	}
	d.page = page
	return d
}

// Page is the most recently extracted page number.
func (d *Driver) Page() int {
	return d.page
}

// LastPage is the total page count reported by the most recent extraction.
func (d *Driver) LastPage() int {
	return d.lastPage
}
