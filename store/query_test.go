package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostsQueryShape(t *testing.T) {
	q := postsQuery(whereAuthorID, postOrderBy)

	where := strings.Index(q, "WHERE p.author_id = ?")
	group := strings.Index(q, "GROUP BY p.id, u.id")
	order := strings.Index(q, "ORDER BY p.created_at DESC")
	assert.True(t, where > 0)
	assert.True(t, group > where, "GROUP BY follows WHERE")
	assert.True(t, order > group, "ORDER BY follows GROUP BY")

	for _, column := range []string{"AS attachments", "AS comments", "AS reactions", "AS tags", "AS author"} {
		assert.Contains(t, q, column)
	}
	// Every relation is joined with LEFT JOIN so posts without rows survive.
	assert.Equal(t, 9, strings.Count(q, "LEFT JOIN"))
	assert.Equal(t, 4, strings.Count(q, "FILTER (WHERE"))
}

func TestPostsQueryWithoutWhere(t *testing.T) {
	q := postsQuery("")
	assert.NotContains(t, q, "\nWHERE")
	assert.True(t, strings.HasSuffix(q, postGroupBy))
}

func TestPostsQueryReadPathsShareSelect(t *testing.T) {
	for _, q := range []string{
		postsQuery("", postOrderBy),
		postsQuery(whereID),
		postsQuery(whereAuthorID, postOrderBy),
		postsQuery(whereContent, postOrderBy, "LIMIT ?"),
	} {
		assert.True(t, strings.HasPrefix(q, postWithRelationsSelect))
		assert.Contains(t, q, postGroupBy)
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%spring%", containsPattern("spring"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%snake\_case%`, containsPattern("snake_case"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
	assert.Equal(t, "%%", containsPattern(""))
}
