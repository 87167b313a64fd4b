package store

import (
	"strings"
)

// postWithRelationsSelect returns one row per post: the scalar post columns,
// four jsonb array aggregates and the author object. LEFT JOINs keep posts
// without relations, FILTER drops the all-null object a missing match would
// produce, and COALESCE turns "no rows" into an empty array. Comments carry
// their author and their own reactions through a correlated sub-select so a
// post is still assembled in a single round trip.
const postWithRelationsSelect = `
SELECT p.id,
       p.content,
       p.created_at,
       p.draft,
       p.visibility::text AS visibility,
       COALESCE(jsonb_agg(DISTINCT jsonb_build_object(
           'id', m.id,
           'url', m.url,
           'type', m.media_type,
           'size', m.size,
           'contentType', m.content_type
       )) FILTER (WHERE m.id IS NOT NULL), '[]'::jsonb) AS attachments,
       COALESCE(jsonb_agg(DISTINCT jsonb_build_object(
           'id', c.id,
           'content', c.content,
           'createdAt', c.created_at,
           'author', jsonb_build_object(
               'id', ca.id,
               'username', ca.username,
               'email', ca.email,
               'role', ca.role
           ),
           'reactions', COALESCE((
               SELECT jsonb_agg(jsonb_build_object(
                   'id', cr.id,
                   'type', cr.type,
                   'createdAt', cr.created_at,
                   'commentId', cr.comment_id,
                   'user', jsonb_build_object(
                       'id', cru.id,
                       'username', cru.username,
                       'email', cru.email,
                       'role', cru.role
                   )
               ) ORDER BY cr.id)
               FROM reactions cr
               JOIN users cru ON cru.id = cr.user_id
               WHERE cr.comment_id = c.id
           ), '[]'::jsonb)
       )) FILTER (WHERE c.id IS NOT NULL), '[]'::jsonb) AS comments,
       COALESCE(jsonb_agg(DISTINCT jsonb_build_object(
           'id', r.id,
           'type', r.type,
           'createdAt', r.created_at,
           'postId', r.post_id,
           'user', jsonb_build_object(
               'id', ru.id,
               'username', ru.username,
               'email', ru.email,
               'role', ru.role
           )
       )) FILTER (WHERE r.id IS NOT NULL), '[]'::jsonb) AS reactions,
       jsonb_build_object(
           'id', u.id,
           'username', u.username,
           'email', u.email,
           'role', u.role
       ) AS author,
       COALESCE(jsonb_agg(DISTINCT jsonb_build_object(
           'id', t.id,
           'name', t.name,
           'usageCount', t.usage_count
       )) FILTER (WHERE t.id IS NOT NULL), '[]'::jsonb) AS tags
FROM posts p
LEFT JOIN post_attachments pa ON pa.post_id = p.id
LEFT JOIN media m ON m.id = pa.media_id
LEFT JOIN comments c ON c.post_id = p.id
LEFT JOIN users ca ON ca.id = c.author_id
LEFT JOIN reactions r ON r.post_id = p.id
LEFT JOIN users ru ON ru.id = r.user_id
LEFT JOIN users u ON u.id = p.author_id
LEFT JOIN post_tags pt ON pt.post_id = p.id
LEFT JOIN tags t ON t.id = pt.tag_id`

const (
	// The author id is selected outside of an aggregate, so it is grouped too.
	postGroupBy = "GROUP BY p.id, u.id"
	// Newest first. The id breaks ties between posts created in the same
	// transaction.
	postOrderBy = "ORDER BY p.created_at DESC, p.id DESC"

	whereID       = "p.id = ?"
	whereAuthorID = "p.author_id = ?"
	whereContent  = `p.content ILIKE ? ESCAPE '\'`
)

// postsQuery appends an optional WHERE predicate, the shared GROUP BY and any
// trailing clauses (ORDER BY, LIMIT) to the base select. Every read path goes
// through here so all of them return the same relation shape.
func postsQuery(where string, tail ...string) string {
	var b strings.Builder
	b.WriteString(postWithRelationsSelect)
	if where != "" {
		b.WriteString("\nWHERE ")
		b.WriteString(where)
	}
	b.WriteString("\n")
	b.WriteString(postGroupBy)
	for _, t := range tail {
		b.WriteString("\n")
		b.WriteString(t)
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns keyword into an ILIKE pattern matching it literally
// anywhere in the content.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// postSummariesQuery reads the post columns only, no join.
const postSummariesQuery = `
SELECT id, content, created_at
FROM posts
ORDER BY created_at DESC, id DESC`

// postsWithCommentsQuery aggregates comments only, with their author ids.
const postsWithCommentsQuery = `
SELECT p.id,
       p.content,
       p.created_at,
       p.draft,
       p.visibility::text AS visibility,
       COALESCE(jsonb_agg(jsonb_build_object(
           'id', c.id,
           'content', c.content,
           'createdAt', c.created_at,
           'authorId', c.author_id
       ) ORDER BY c.id) FILTER (WHERE c.id IS NOT NULL), '[]'::jsonb) AS comments
FROM posts p
LEFT JOIN comments c ON c.post_id = p.id
GROUP BY p.id
ORDER BY p.created_at DESC, p.id DESC`
