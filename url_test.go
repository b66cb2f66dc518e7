package depthcrawl_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/fwojciec/depthcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestParseSeed(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute URL", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ParseSeed("https://www.crawler-test.com/")

		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
		assert.Equal(t, "www.crawler-test.com", u.Host)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ParseSeed("  https://example.com/docs \n")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", u.String())
	})

	t.Run("rejects empty seed", func(t *testing.T) {
		t.Parallel()

		_, err := depthcrawl.ParseSeed("")

		require.Error(t, err)
		assert.Equal(t, depthcrawl.EINVALID, depthcrawl.ErrorCode(err))
	})

	t.Run("rejects relative seed with corrective message", func(t *testing.T) {
		t.Parallel()

		_, err := depthcrawl.ParseSeed("github.com/about")

		require.Error(t, err)
		assert.Equal(t, depthcrawl.EINVALID, depthcrawl.ErrorCode(err))
		assert.Contains(t, depthcrawl.ErrorMessage(err), "https://github.com/about")
	})

	t.Run("rejects seed without host", func(t *testing.T) {
		t.Parallel()

		_, err := depthcrawl.ParseSeed("mailto:someone@example.com")

		require.Error(t, err)
		assert.Equal(t, depthcrawl.EINVALID, depthcrawl.ErrorCode(err))
	})

	t.Run("rejects unparsable seed", func(t *testing.T) {
		t.Parallel()

		_, err := depthcrawl.ParseSeed("http://[::1")

		require.Error(t, err)
		assert.Equal(t, depthcrawl.EINVALID, depthcrawl.ErrorCode(err))
	})
}

func TestDomainBase(t *testing.T) {
	t.Parallel()

	t.Run("clears path query and fragment", func(t *testing.T) {
		t.Parallel()

		base := depthcrawl.DomainBase(mustParse(t, "https://example.com/a/b?x=1#frag"))

		assert.Equal(t, "https://example.com/", base.String())
	})

	t.Run("keeps port", func(t *testing.T) {
		t.Parallel()

		base := depthcrawl.DomainBase(mustParse(t, "http://127.0.0.1:8080/deep/page"))

		assert.Equal(t, "http://127.0.0.1:8080/", base.String())
	})

	t.Run("does not modify the original URL", func(t *testing.T) {
		t.Parallel()

		u := mustParse(t, "https://example.com/a/b?x=1")
		_ = depthcrawl.DomainBase(u)

		assert.Equal(t, "https://example.com/a/b?x=1", u.String())
	})
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	t.Run("resolves root-relative link against domain base", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/a/b?x=1"), "/c/d")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/c/d", u.String())
	})

	t.Run("resolves path-relative link from domain root", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "page2.html")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page2.html", u.String())
	})

	t.Run("drops base path for path-relative link", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/docs/intro"), "next.html")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/next.html", u.String())
	})

	t.Run("passes absolute link through", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "https://other.com/x")

		require.NoError(t, err)
		assert.Equal(t, "https://other.com/x", u.String())
	})

	t.Run("resolves scheme-relative link with base scheme", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/a"), "//cdn.example.org/lib.js")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.org/lib.js", u.String())
	})

	t.Run("keeps non-http schemes", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "mailto:someone@example.com")

		require.NoError(t, err)
		assert.Equal(t, "mailto", u.Scheme)
	})

	t.Run("trims whitespace around href", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "  /about \n")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/about", u.String())
	})

	t.Run("drops tabs and newlines inside href", func(t *testing.T) {
		t.Parallel()

		u, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "/a\nb\t/c\r\nd")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/ab/cd", u.String())
	})

	t.Run("returns MalformedLinkError for unparsable href", func(t *testing.T) {
		t.Parallel()

		_, err := depthcrawl.ResolveLink(mustParse(t, "https://example.com/"), "http://[::1")

		require.Error(t, err)
		var malformed *depthcrawl.MalformedLinkError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "http://[::1", malformed.Href)
		assert.Contains(t, err.Error(), "malformed link")
	})
}

func TestIsHTTP(t *testing.T) {
	t.Parallel()

	assert.True(t, depthcrawl.IsHTTP(mustParse(t, "http://example.com")))
	assert.True(t, depthcrawl.IsHTTP(mustParse(t, "HTTPS://example.com")))
	assert.False(t, depthcrawl.IsHTTP(mustParse(t, "mailto:a@example.com")))
	assert.False(t, depthcrawl.IsHTTP(mustParse(t, "javascript:void(0)")))
}
