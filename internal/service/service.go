// Package service implements the content engine: it owns network fetches
// against the WordPress API, the pagination cursor, the category filter,
// the search state and the response cache, and exposes the whole thing as
// an observable state struct.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ribaund/reader/internal/wp"
)

// AllCategoryName labels the synthetic id-0 category that means
// "no category filter".
const AllCategoryName = "All News"

const defaultPostsPerPage = 15

// State is a point-in-time view of the service. Subscribers receive a
// copy after every mutation; posts and comments inside it are immutable
// value objects.
type State struct {
	Categories       []wp.Category
	CategoriesLoaded bool

	Posts             []wp.Post
	IsLoading         bool
	LastError         string
	CurrentPage       int
	CanLoadMore       bool
	CurrentCategoryID int
	SearchText        string

	Comments map[int][]wp.Comment
}

func (st *State) clone() State {
	c := *st
	c.Categories = slices.Clone(st.Categories)
	c.Posts = slices.Clone(st.Posts)
	c.Comments = maps.Clone(st.Comments)
	return c
}

// Service is the content state machine. All state mutations are
// serialized through one mutex; concurrency between operations is
// cooperative (callers are expected to respect IsLoading/CanLoadMore
// rather than rely on internal locking to order overlapping fetches).
type Service struct {
	client  *wp.Client
	perPage int

	mu    sync.Mutex
	state State

	// Last combination that successfully loaded page 1; used for the
	// cache short-circuit and for pagination continuations.
	lastLoadedCategoryID int
	lastLoadedSearch     string

	subscribers []func(State)
}

// New creates a Service on top of a wp.Client. postsPerPage <= 0 selects
// the default of 15.
func New(client *wp.Client, postsPerPage int) *Service {
	if postsPerPage <= 0 {
		postsPerPage = defaultPostsPerPage
	}
	return &Service{
		client:  client,
		perPage: postsPerPage,
		state: State{
			Categories:  []wp.Category{{ID: 0, Name: AllCategoryName}},
			CurrentPage: 1,
			Comments:    make(map[int][]wp.Comment),
		},
	}
}

// Subscribe registers fn to be called with a state copy after every
// mutation. Not safe to call concurrently with operations; register
// subscribers before driving the service.
func (s *Service) Subscribe(fn func(State)) {
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a consistent copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// mutate applies fn under the lock, then notifies subscribers with a
// fresh copy outside of it.
func (s *Service) mutate(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	s.mu.Unlock()

	for _, sub := range s.subscribers {
		sub(snap)
	}
}

// FetchCategories loads the category list, prepends the synthetic "all"
// entry and drops the stock Uncategorized category (id 1). Failures are
// absorbed: the loaded flag is set on every exit so the UI never waits
// forever, and no error is surfaced for this secondary data.
func (s *Service) FetchCategories(ctx context.Context) {
	cats, err := s.client.Categories(ctx)
	if err != nil {
		if !isCancellation(err) {
			slog.Warn("category fetch failed", "error", err)
		}
		s.mutate(func(st *State) { st.CategoriesLoaded = true })
		return
	}

	list := make([]wp.Category, 0, len(cats)+1)
	list = append(list, wp.Category{ID: 0, Name: AllCategoryName})
	for _, c := range cats {
		if c.ID != 1 {
			list = append(list, c)
		}
	}

	s.mutate(func(st *State) {
		st.Categories = list
		st.CategoriesLoaded = true
	})
}

// FetchPosts loads page 1 of posts for a category (0 = all) and search
// term, replacing the current list. When forceRefresh is false and the
// requested combination matches the last successfully loaded one, the
// cached list is kept and no request is made.
func (s *Service) FetchPosts(ctx context.Context, categoryID int, search string, forceRefresh bool) {
	s.fetchPosts(ctx, categoryID, search, 1, false, forceRefresh)
}

// LoadNextPage fetches the next page for the currently loaded
// category/search combination and appends it. No-op when there is
// nothing more to load or a load is already in flight.
func (s *Service) LoadNextPage(ctx context.Context) {
	s.mu.Lock()
	if !s.state.CanLoadMore || s.state.IsLoading {
		s.mu.Unlock()
		return
	}
	page := s.state.CurrentPage + 1
	categoryID := s.lastLoadedCategoryID
	search := s.lastLoadedSearch
	s.mu.Unlock()

	s.fetchPosts(ctx, categoryID, search, page, true, false)
}

// SetSearchText records the current search input without fetching.
// The Searcher calls StartSearch once typing pauses.
func (s *Service) SetSearchText(q string) {
	s.mutate(func(st *State) { st.SearchText = q })
}

// StartSearch force-fetches page 1 with the current search text. Search
// and category filters are mutually exclusive: starting a search resets
// the category filter to "all". No-op while a load is in flight.
func (s *Service) StartSearch(ctx context.Context) {
	s.mu.Lock()
	if s.state.IsLoading {
		s.mu.Unlock()
		return
	}
	search := s.state.SearchText
	s.mu.Unlock()

	s.fetchPosts(ctx, 0, search, 1, false, true)
}

// fetchPosts is the central fetch operation behind FetchPosts,
// LoadNextPage and StartSearch.
func (s *Service) fetchPosts(ctx context.Context, categoryID int, search string, page int, paginating, forceRefresh bool) {
	search = strings.TrimSpace(search)

	s.mu.Lock()
	if paginating && !s.state.CanLoadMore {
		s.mu.Unlock()
		return
	}
	if !paginating && !forceRefresh && len(s.state.Posts) > 0 &&
		categoryID == s.lastLoadedCategoryID && search == s.lastLoadedSearch {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Pagination continues behind the existing list, so only a fresh
	// load shows the loading state.
	if !paginating {
		s.mutate(func(st *State) {
			st.IsLoading = true
			st.LastError = ""
		})
	}

	result, err := s.client.Posts(ctx, wp.PostQuery{
		Page:       page,
		PerPage:    s.perPage,
		CategoryID: categoryID,
		Search:     search,
	})
	if err != nil {
		if isCancellation(err) {
			s.mutate(func(st *State) { st.IsLoading = false })
			return
		}
		slog.Warn("post fetch failed", "category", categoryID, "page", page, "error", err)
		s.mutate(func(st *State) {
			st.IsLoading = false
			st.LastError = fmt.Sprintf("Could not load posts: %v", err)
		})
		return
	}

	if result.TotalPages > 0 {
		slog.Debug("posts fetched", "page", page, "count", len(result.Posts), "advisory_total_pages", result.TotalPages)
	}

	s.mutate(func(st *State) {
		if paginating {
			st.Posts = append(st.Posts, result.Posts...)
			st.CurrentPage = page
		} else {
			st.Posts = result.Posts
			st.CurrentPage = 1
			st.CurrentCategoryID = categoryID
			s.lastLoadedCategoryID = categoryID
			s.lastLoadedSearch = search
		}
		// A short (or empty) page means the list is exhausted.
		st.CanLoadMore = len(result.Posts) == s.perPage
		st.IsLoading = false
	})
}

// FetchComments loads a post's comments into the comment map. Comments
// are secondary data: failures are logged and the existing entries kept.
func (s *Service) FetchComments(ctx context.Context, postID int) {
	comments, err := s.client.Comments(ctx, postID)
	if err != nil {
		if !isCancellation(err) {
			slog.Warn("comment fetch failed", "post", postID, "error", err)
		}
		return
	}
	s.mutate(func(st *State) { st.Comments[postID] = comments })
}

// isCancellation reports whether err came from a superseded or aborted
// request rather than a genuine failure. Deadline expiry counts: a
// caller-imposed timeout aborting a slow fetch is the caller's doing, not
// something to surface as a feed error.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
