package goquery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docnav"
	"github.com/fwojciec/docnav/goquery"
	"github.com/fwojciec/docnav/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Navigator implements docnav.Navigator at compile time.
var _ docnav.Navigator = (*goquery.Navigator)(nil)

const rootHTML = `<!DOCTYPE html>
<html lang="zh">
<head><title>OI Wiki</title></head>
<body data-md-color-scheme="default">
<header class="md-header">
	<div class="md-header__title">
		<div class="md-header__topic"><span class="md-ellipsis">OI Wiki</span></div>
		<div class="md-header__topic"><span class="md-ellipsis">简介</span></div>
	</div>
</header>
<nav class="md-tabs" data-md-component="tabs">
	<div class="md-tabs__inner md-grid">
		<ul class="md-tabs__list">
			<li class="md-tabs__item"><a href="." class="md-tabs__link md-tabs__link--active">简介</a></li>
			<li class="md-tabs__item"><a href="graph/" class="md-tabs__link">图论</a></li>
			<li class="md-tabs__item"><a href="math/" class="md-tabs__link">数学</a></li>
			<li class="md-tabs__item"><a href="mailto:wiki@example.com" class="md-tabs__link">Mail</a></li>
		</ul>
	</div>
</nav>
</body>
</html>`

const graphHTML = `<!DOCTYPE html>
<html>
<head><title>图论 - OI Wiki</title></head>
<body>
<nav class="md-nav md-nav--primary" aria-label="Navigation" data-md-level="0">
	<label class="md-nav__title" for="__drawer">OI Wiki</label>
	<ul class="md-nav__list" data-md-scrollfix>
		<li class="md-nav__item md-nav__item--nested">
			<input class="md-nav__toggle md-toggle" type="checkbox" id="__nav_1">
			<label class="md-nav__link" for="__nav_1">简介 <span class="md-nav__icon md-icon"></span></label>
			<nav class="md-nav" aria-label="简介" data-md-level="1">
				<ul class="md-nav__list">
					<li class="md-nav__item"><a href="../getting-started/" class="md-nav__link">Getting Started</a></li>
				</ul>
			</nav>
		</li>
		<li class="md-nav__item md-nav__item--active md-nav__item--nested">
			<input class="md-nav__toggle md-toggle" type="checkbox" id="__nav_2" checked>
			<label class="md-nav__link" for="__nav_2">图论 <span class="md-nav__icon md-icon"></span></label>
			<nav class="md-nav" aria-label="图论" data-md-level="1">
				<label class="md-nav__title" for="__nav_2"><span class="md-nav__icon md-icon"></span>图论</label>
				<ul class="md-nav__list">
					<li class="md-nav__item md-nav__item--active">
						<input class="md-nav__toggle md-toggle" type="checkbox" id="__toc">
						<label class="md-nav__link md-nav__link--active" for="__toc">图论部分简介</label>
						<a href="./" class="md-nav__link md-nav__link--active">图论部分简介</a>
						<nav class="md-nav md-nav--secondary" aria-label="目录">
							<ul class="md-nav__list">
								<li class="md-nav__item"><a href="#terms" class="md-nav__link">Terms</a></li>
							</ul>
						</nav>
					</li>
					<li class="md-nav__item"><a href="dfs/" class="md-nav__link">DFS（图论）</a></li>
					<li class="md-nav__item md-nav__item--nested">
						<input class="md-nav__toggle md-toggle" type="checkbox" id="__nav_2_3">
						<label class="md-nav__link" for="__nav_2_3">最短路</label>
						<nav class="md-nav" aria-label="最短路" data-md-level="2">
							<ul class="md-nav__list">
								<li class="md-nav__item"><a href="shortest-path/dijkstra/" class="md-nav__link">Dijkstra</a></li>
								<li class="md-nav__item"><a href="../graph/shortest-path/floyd/" class="md-nav__link">Floyd</a></li>
							</ul>
						</nav>
					</li>
					<li class="md-nav__item"><span class="md-nav__link">No link</span></li>
				</ul>
			</nav>
		</li>
		<li class="md-nav__item"><a href="../about/" class="md-nav__link">关于</a></li>
	</ul>
</nav>
</body>
</html>`

const sidebarOnlyHTML = `<!DOCTYPE html>
<html>
<head><title>Small Docs</title></head>
<body>
<nav class="md-nav md-nav--primary" aria-label="Navigation" data-md-level="0">
	<ul class="md-nav__list">
		<li class="md-nav__item"><a href="intro/" class="md-nav__link">Intro</a></li>
		<li class="md-nav__item md-nav__item--nested">
			<div class="md-nav__link md-nav__container">
				<a href="guide/" class="md-nav__link">Guide</a>
				<label class="md-nav__link" for="__nav_2"><span class="md-nav__icon md-icon"></span></label>
			</div>
			<nav class="md-nav" aria-label="Guide" data-md-level="1">
				<ul class="md-nav__list">
					<li class="md-nav__item"><a href="guide/install/" class="md-nav__link">Install</a></li>
				</ul>
			</nav>
		</li>
	</ul>
</nav>
</body>
</html>`

// pages returns a fetcher serving the given URL to HTML mapping.
func pages(m map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			html, ok := m[url]
			if !ok {
				return "", docnav.Errorf(docnav.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestNavigator_BuildTopLevel(t *testing.T) {
	t.Parallel()

	t.Run("builds one lazy section per tab in document order", func(t *testing.T) {
		t.Parallel()

		nav := goquery.NewNavigator(pages(map[string]string{"https://oi-wiki.org/": rootHTML}))
		list, err := nav.BuildTopLevel(context.Background(), "https://oi-wiki.org")

		require.NoError(t, err)
		assert.Equal(t, "OI Wiki", list.Title)
		require.Equal(t, 3, list.Len())

		titles := []string{"简介", "图论", "数学"}
		urls := []string{"https://oi-wiki.org/", "https://oi-wiki.org/graph/", "https://oi-wiki.org/math/"}
		for i, item := range list.Items {
			assert.Equal(t, docnav.KindExpand, item.Kind)
			assert.Equal(t, titles[i], item.Title)
			assert.Equal(t, urls[i], item.URL)
			require.NotNil(t, item.Sub)
			assert.False(t, item.Sub.Loaded())
		}
	})

	t.Run("builds sidebar tree when site has no tabs", func(t *testing.T) {
		t.Parallel()

		nav := goquery.NewNavigator(pages(map[string]string{"https://docs.example.com/": sidebarOnlyHTML}))
		list, err := nav.BuildTopLevel(context.Background(), "https://docs.example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Small Docs", list.Title)
		require.Equal(t, 2, list.Len())

		intro := list.Items[0]
		assert.Equal(t, docnav.KindLink, intro.Kind)
		assert.Equal(t, "https://docs.example.com/intro/", intro.URL)

		guide := list.Items[1]
		assert.Equal(t, docnav.KindExpand, guide.Kind)
		assert.Equal(t, "Guide", guide.Title)
		assert.Equal(t, "https://docs.example.com/guide/", guide.URL)
		require.True(t, guide.Sub.Loaded())

		children := guide.Sub.List()
		require.Equal(t, 2, children.Len())
		assert.Equal(t, docnav.KindBack, children.Items[0].Kind)
		assert.Same(t, list, children.Items[0].Parent)
		assert.Equal(t, "https://docs.example.com/guide/install/", children.Items[1].URL)
	})

	t.Run("returns invalid error when markers are missing", func(t *testing.T) {
		t.Parallel()

		nav := goquery.NewNavigator(pages(map[string]string{"https://example.com/": "<html><body><p>plain</p></body></html>"}))
		_, err := nav.BuildTopLevel(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, docnav.EINVALID, docnav.ErrorCode(err))
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}
		nav := goquery.NewNavigator(fetcher)
		_, err := nav.BuildTopLevel(context.Background(), "https://oi-wiki.org/")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "network error")
	})
}

func TestNavigator_BuildSubLevel(t *testing.T) {
	t.Parallel()

	const graphURL = "https://oi-wiki.org/graph/"
	fetcher := pages(map[string]string{graphURL: graphHTML})

	t.Run("starts with exactly one back item to parent", func(t *testing.T) {
		t.Parallel()

		parent := docnav.NewList("OI Wiki")
		list, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), graphURL, "图论", parent)

		require.NoError(t, err)
		require.NotZero(t, list.Len())
		assert.Equal(t, docnav.KindBack, list.Items[0].Kind)
		assert.Same(t, parent, list.Items[0].Parent)

		backs := 0
		for _, item := range list.Items {
			if item.Kind == docnav.KindBack {
				backs++
			}
		}
		assert.Equal(t, 1, backs)
	})

	t.Run("builds entries in document order and skips TOC", func(t *testing.T) {
		t.Parallel()

		list, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), graphURL, "图论", docnav.NewList("root"))
		require.NoError(t, err)

		// back, 图论部分简介, DFS, 最短路 ("No link" has no href)
		require.Equal(t, 4, list.Len())
		assert.Equal(t, "图论", list.Title)

		intro := list.Items[1]
		assert.Equal(t, docnav.KindLink, intro.Kind)
		assert.Equal(t, "图论部分简介", intro.Title)
		assert.Equal(t, "https://oi-wiki.org/graph/", intro.URL)

		dfs := list.Items[2]
		assert.Equal(t, docnav.KindLink, dfs.Kind)
		want, err := docnav.Resolve(graphURL, "dfs/")
		require.NoError(t, err)
		assert.Equal(t, want, dfs.URL)

		for _, item := range list.Items {
			assert.NotEqual(t, "Terms", item.Title)
		}
	})

	t.Run("pre-builds nested sections with back to the enclosing list", func(t *testing.T) {
		t.Parallel()

		list, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), graphURL, "图论", docnav.NewList("root"))
		require.NoError(t, err)

		section := list.Items[3]
		assert.Equal(t, docnav.KindExpand, section.Kind)
		assert.Equal(t, "最短路", section.Title)
		require.True(t, section.Sub.Loaded())

		children := section.Sub.List()
		require.Equal(t, 3, children.Len())

		back := children.Items[0]
		assert.Equal(t, docnav.KindBack, back.Kind)
		assert.Same(t, list, back.Parent)
		assert.Equal(t, "最短路", back.Description)

		assert.Equal(t, "https://oi-wiki.org/graph/shortest-path/dijkstra/", children.Items[1].URL)
		assert.Equal(t, "https://oi-wiki.org/graph/shortest-path/floyd/", children.Items[2].URL)
	})

	t.Run("falls back to the active section", func(t *testing.T) {
		t.Parallel()

		list, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), graphURL, "Graph Theory", nil)
		require.NoError(t, err)

		require.Equal(t, 3, list.Len())
		assert.Equal(t, "图论部分简介", list.Items[0].Title)
	})

	t.Run("tab that is a single page yields back and link", func(t *testing.T) {
		t.Parallel()

		parent := docnav.NewList("root")
		list, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), graphURL, "关于", parent)
		require.NoError(t, err)

		require.Equal(t, 2, list.Len())
		assert.Same(t, parent, list.Items[0].Parent)
		assert.Equal(t, "https://oi-wiki.org/about/", list.Items[1].URL)
	})

	t.Run("section without match yields only the back item", func(t *testing.T) {
		t.Parallel()

		nav := goquery.NewNavigator(pages(map[string]string{"https://docs.example.com/": sidebarOnlyHTML}))
		parent := docnav.NewList("root")
		list, err := nav.BuildSubLevel(context.Background(), "https://docs.example.com/", "Missing", parent)

		require.NoError(t, err)
		require.Equal(t, 1, list.Len())
		assert.Equal(t, docnav.KindBack, list.Items[0].Kind)
	})

	t.Run("returns invalid error without sidebar", func(t *testing.T) {
		t.Parallel()

		nav := goquery.NewNavigator(pages(map[string]string{"https://oi-wiki.org/": rootHTML}))
		_, err := nav.BuildSubLevel(context.Background(), "https://oi-wiki.org/", "简介", nil)

		require.Error(t, err)
		assert.Equal(t, docnav.EINVALID, docnav.ErrorCode(err))
	})

	t.Run("returns fetch errors", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewNavigator(fetcher).BuildSubLevel(context.Background(), "https://oi-wiki.org/missing/", "x", nil)

		require.Error(t, err)
		assert.Equal(t, docnav.ENOTFOUND, docnav.ErrorCode(err))
	})
}
