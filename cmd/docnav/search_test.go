package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docnav"
	main "github.com/fwojciec/docnav/cmd/docnav"
	"github.com/fwojciec/docnav/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints title, description and url of each hit", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(_ context.Context, keyword string, fallback *docnav.List) (*docnav.List, error) {
				assert.Equal(t, "最短 路", keyword)
				assert.Nil(t, fallback)
				return docnav.NewList("",
					docnav.NewLink("最短路", "Dijkstra 算法", "https://oi-wiki.org/graph/shortest-path/", docnav.IconSearch),
					docnav.NewNoOp("Broken", "no description", docnav.IconSearch),
				), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: searcher,
		}

		err := (&main.SearchCmd{Keyword: []string{"最短", "路"}}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "最短路\n  Dijkstra 算法\n  https://oi-wiki.org/graph/shortest-path/\n")
		assert.Contains(t, output, "Broken\n  no description\n")
	})

	t.Run("reports no results", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(context.Context, string, *docnav.List) (*docnav.List, error) {
				return docnav.NewList(""), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Searcher: searcher}

		err := (&main.SearchCmd{Keyword: []string{"zzz"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `No results for "zzz".`)
	})

	t.Run("prints error message on failure", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(context.Context, string, *docnav.List) (*docnav.List, error) {
				return nil, docnav.Errorf(docnav.ECONNECT, "search service returned status 503")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Searcher: searcher}

		err := (&main.SearchCmd{Keyword: []string{"dfs"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: search service returned status 503")
	})

	t.Run("rejects blank keyword without searching", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(context.Context, string, *docnav.List) (*docnav.List, error) {
				t.Fatal("unexpected search")
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Searcher: searcher}

		err := (&main.SearchCmd{Keyword: []string{"  "}}).Run(deps)

		require.Error(t, err)
	})
}
