package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/99designs/gqlgen/client"
	"github.com/stretchr/testify/require"
)

// GraphQLError is one entry of the "errors" list of a GraphQL response.
type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path"`
	Extensions map[string]interface{} `json:"extensions"`
}

// create post with content for author, do sanity checks and returns its Id
func TestCreatePostAndValidate(t *testing.T, content string, authorId string, tagIds []string, c *client.Client) (id string) {
	var resp struct {
		CreatePost struct {
			Id         string `json:"id"`
			Content    string `json:"content"`
			CreatedAt  string `json:"createdAt"`
			Draft      bool   `json:"draft"`
			Visibility string `json:"visibility"`
			Author     struct {
				Id string `json:"id"`
			} `json:"author"`
			Tags []struct {
				Id string `json:"id"`
			} `json:"tags"`
			CommentCount  int `json:"commentCount"`
			ReactionCount int `json:"reactionCount"`
		} `json:"createPost"`
	}

	c.MustPost(`mutation($content: String!, $authorId: ID!, $tagIds: [ID!]) {
		createPost(input: {content: $content, authorId: $authorId, tagIds: $tagIds}) {
			id
			content
			createdAt
			draft
			visibility
			author {
				id
			}
			tags {
				id
			}
			commentCount
			reactionCount
		}
	}`, &resp,
		client.Var("content", content),
		client.Var("authorId", authorId),
		client.Var("tagIds", tagIds),
	)

	createTime, err := time.Parse(time.RFC3339, resp.CreatePost.CreatedAt)
	require.NoError(t, err)

	require.NotEmpty(t, resp.CreatePost.Id)
	require.Equal(t, content, resp.CreatePost.Content)
	require.Equal(t, authorId, resp.CreatePost.Author.Id)
	require.Equal(t, "PUBLIC", resp.CreatePost.Visibility)
	require.False(t, resp.CreatePost.Draft)
	require.Len(t, resp.CreatePost.Tags, len(tagIds))
	require.Equal(t, 0, resp.CreatePost.CommentCount)
	require.Equal(t, 0, resp.CreatePost.ReactionCount)
	require.Truef(t, time.Now().After(createTime), "time created wrong")

	return resp.CreatePost.Id
}

// TestPostWithErrors issues query and returns the field errors of the
// response, failing when the request itself does not go through.
func TestPostWithErrors(t *testing.T, query string, c *client.Client, options ...client.Option) []GraphQLError {
	resp, err := c.RawPost(query, options...)
	require.NoError(t, err)

	var errs []GraphQLError
	if len(resp.Errors) > 0 {
		require.NoError(t, json.Unmarshal(resp.Errors, &errs))
	}
	return errs
}
