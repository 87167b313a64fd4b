package store

import (
	"context"
	"testing"

	"github.com/Luismorlan/socialpost/model"
	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWithComments(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	saved, err := f.posts.SaveWithComments(ctx, &model.Post{Content: "Hello", Author: f.author}, []model.Comment{
		{Content: "first!", Author: f.other},
		{Content: "thanks", Author: f.author},
	})
	require.NoError(t, err)
	require.Len(t, saved.Comments, 2)
	assert.Equal(t, "first!", saved.Comments[0].Content)
	assert.Equal(t, "jdoe", saved.Comments[0].Author.Username)
	assert.Equal(t, "dvega", saved.Comments[1].Author.Username)
}

func TestSaveWithCommentsRollsBack(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	_, err := f.posts.SaveWithComments(ctx, &model.Post{Content: "Hello", Author: f.author}, []model.Comment{
		{Content: "fine", Author: f.other},
		{Content: "ghost", Author: &model.User{Id: 4242}},
	})
	require.Error(t, err)
	assert.Equal(t, model.ValidationFailure, model.KindOf(err))

	posts, err := f.posts.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts, "post insert must roll back with the failing comment")

	var comments int64
	require.NoError(t, f.db.Raw("SELECT COUNT(*) FROM comments").Scan(&comments).Error)
	assert.Equal(t, int64(0), comments)
}

func TestSaveWithCommentsValidation(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	for name, comment := range map[string]model.Comment{
		"blank content":  {Content: "  ", Author: f.other},
		"missing author": {Content: "hi"},
		"zero author":    {Content: "hi", Author: &model.User{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.posts.SaveWithComments(ctx, &model.Post{Content: "Hello", Author: f.author}, []model.Comment{comment})
			assert.Equal(t, model.ValidationFailure, model.KindOf(err))
		})
	}

	summaries, err := f.posts.FindAllSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestFindAllSummaries(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	first := f.savePost(t, "one", f.author)
	second := f.savePost(t, "two", f.other)

	summaries, err := f.posts.FindAllSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, *second.Id, summaries[0].Id)
	assert.Equal(t, "two", summaries[0].Content)
	assert.Equal(t, *first.Id, summaries[1].Id)
	assert.True(t, summaries[1].CreatedAt.Equal(first.CreatedAt))
}

func TestFindAllWithComments(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	quiet := f.savePost(t, "quiet", f.author)
	discussed, err := f.posts.SaveWithComments(ctx, &model.Post{Content: "discussed", Author: f.author, Visibility: model.VisibilityPrivate}, []model.Comment{
		{Content: "a", Author: f.other},
		{Content: "b", Author: f.author},
	})
	require.NoError(t, err)

	posts, err := f.posts.FindAllWithComments(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, *discussed.Id, posts[0].Id)
	assert.Equal(t, model.VisibilityPrivate, posts[0].Visibility)
	require.Len(t, posts[0].Comments, 2)
	assert.Equal(t, "a", posts[0].Comments[0].Content)
	assert.Equal(t, f.other.Id, posts[0].Comments[0].AuthorId)
	assert.Equal(t, f.author.Id, posts[0].Comments[1].AuthorId)
	assert.False(t, posts[0].Comments[0].CreatedAt.IsZero())

	assert.Equal(t, *quiet.Id, posts[1].Id)
	assert.NotNil(t, posts[1].Comments)
	assert.Empty(t, posts[1].Comments)
}

func TestMapCommentSummaries(t *testing.T) {
	res, err := mapCommentSummaries(1, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = mapCommentSummaries(1, nil)
	require.NoError(t, err)
	assert.NotNil(t, res)

	res, err = mapCommentSummaries(1, []byte(`[{"id":3,"content":"x","createdAt":"2024-03-01T10:00:00.123+00:00","authorId":2}]`))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, int64(2), res[0].AuthorId)
	assert.Equal(t, 2024, res[0].CreatedAt.Year())

	_, err = mapCommentSummaries(9, []byte(`[{"id":"x"}]`))
	assert.Equal(t, model.MappingFailure, model.KindOf(err))
	assert.Contains(t, err.Error(), "row 9")
}

func TestWriteErrorClassification(t *testing.T) {
	for code, kind := range map[string]model.ErrorKind{
		pgForeignKeyViolation:       model.ValidationFailure,
		pgCheckViolation:            model.ValidationFailure,
		pgUniqueViolation:           model.ValidationFailure,
		pgInvalidTextRepresentation: model.ValidationFailure,
		"40001":                     model.StorageFailure,
	} {
		err := writeError(errors.Wrap(&pgconn.PgError{Code: code, Message: "boom"}, "exec"), "create user")
		assert.Equal(t, kind, model.KindOf(err), code)
	}
	assert.Equal(t, model.StorageFailure, model.KindOf(writeError(errors.New("conn reset"), "create user")))
}

func TestCreateUserDuplicate(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	_, err := f.records.CreateUser(ctx, model.User{Username: "dvega", Email: "other@example.com"})
	assert.Equal(t, model.ValidationFailure, model.KindOf(err))
	_, err = f.records.CreateUser(ctx, model.User{Username: "someone", Email: "dan@example.com"})
	assert.Equal(t, model.ValidationFailure, model.KindOf(err))
}

func TestCreateMediaRejectsUnknownType(t *testing.T) {
	f := prepareStoreTest(t)
	ctx := context.Background()

	for _, mediaType := range []model.MediaType{"", "GIF"} {
		_, err := f.records.CreateMedia(ctx, model.Media{Url: "https://cdn/x", Type: mediaType})
		assert.Equal(t, model.ValidationFailure, model.KindOf(err), string(mediaType))
	}
}
