package content

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/frontmatter"
	"github.com/Zachkp/portfolio/internal/logger"
)

// Tier names the source that produced a listing.
type Tier int

const (
	TierIndex Tier = iota
	TierFallbackFiles
	TierStatic
)

func (t Tier) String() string {
	switch t {
	case TierIndex:
		return "index"
	case TierFallbackFiles:
		return "fallback-files"
	case TierStatic:
		return "static"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Listing is a collection as served to the pages.
type Listing struct {
	Items []Item
	Tier  Tier
}

// tierResult is the outcome of one step of the fallback chain. A tier
// succeeds when err is nil.
type tierResult struct {
	items []Item
	err   error
}

// Loader fetches and parses content from a Source.
type Loader struct {
	source Source
	parser *frontmatter.Parser
	log    *logger.Logger
}

// NewLoader returns a Loader reading from source.
func NewLoader(source Source, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}
	return &Loader{
		source: source,
		parser: frontmatter.New(log),
		log:    log,
	}
}

// List returns the collection, falling back from the remote index to the
// fallback filenames and finally to the static items. It never fails.
func (l *Loader) List(ctx context.Context, c Collection) Listing {
	start := time.Now()

	res := l.fromIndex(ctx, c)
	if res.err == nil {
		return l.served(c, TierIndex, res.items, start)
	}
	l.log.TierAdvanced(c.Name, TierIndex.String(), TierFallbackFiles.String(), res.err)

	res = l.fromFiles(ctx, c, c.FallbackFiles)
	if res.err == nil {
		return l.served(c, TierFallbackFiles, res.items, start)
	}
	l.log.TierAdvanced(c.Name, TierFallbackFiles.String(), TierStatic.String(), res.err)

	static := make([]Item, len(c.Static))
	copy(static, c.Static)
	return l.served(c, TierStatic, static, start)
}

// Get fetches a single item. Unlike List it has no fallback: a missing item
// is reported as ErrNotFound.
func (l *Loader) Get(ctx context.Context, c Collection, id string) (Item, error) {
	if !ValidID(id) {
		return Item{}, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	text, err := l.source.Read(ctx, c, id)
	if err != nil {
		return Item{}, fmt.Errorf("fetch %s/%s: %w", c.Name, id, err)
	}
	return l.build(c, id, text), nil
}

func (l *Loader) fromIndex(ctx context.Context, c Collection) tierResult {
	names, err := l.source.Index(ctx, c)
	if err != nil {
		return tierResult{err: err}
	}
	return l.fromFiles(ctx, c, names)
}

// fromFiles resolves every file concurrently. Failed files are logged and
// dropped; the result keeps the order of names.
func (l *Loader) fromFiles(ctx context.Context, c Collection, names []string) tierResult {
	if len(names) == 0 {
		return tierResult{err: ErrEmptyBatch}
	}

	slots := make([]*Item, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		id := IDFromFilename(name)
		if !ValidID(id) {
			l.log.FetchFailed(c.Name, name, ErrInvalidID)
			continue
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			text, err := l.source.Read(ctx, c, id)
			if err != nil {
				l.log.FetchFailed(c.Name, id, err)
				return
			}
			it := l.build(c, id, text)
			slots[i] = &it
		}(i, id)
	}
	wg.Wait()

	items := make([]Item, 0, len(names))
	for _, it := range slots {
		if it != nil {
			items = append(items, *it)
		}
	}
	if len(items) == 0 {
		return tierResult{err: ErrEmptyBatch}
	}
	return tierResult{items: items}
}

func (l *Loader) build(c Collection, id, text string) Item {
	it, badDate := itemFromBlock(c, id, l.parser.Parse(text))
	if badDate != nil {
		l.log.DateUnparsable(c.Name, id, *badDate)
	}
	return it
}

func (l *Loader) served(c Collection, tier Tier, items []Item, start time.Time) Listing {
	if c.SortByDate {
		SortNewestFirst(items)
	}
	l.log.ListingServed(c.Name, tier.String(), len(items), time.Since(start))
	return Listing{Items: items, Tier: tier}
}

// SortNewestFirst orders items by date, newest first, undated items last.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Date, items[j].Date
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}
