package store

import (
	"context"
	"strings"

	"github.com/Luismorlan/socialpost/model"
	"github.com/Luismorlan/socialpost/utils"
	. "github.com/Luismorlan/socialpost/utils/log"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultSearchLimit = 100

	pgForeignKeyViolation       = "23503"
	pgCheckViolation            = "23514"
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// Repository is the post access contract both front ends depend on.
//
// FindByID reports absence through found=false, never through an error. List
// operations return a non-nil, possibly empty slice ordered newest first.
type Repository interface {
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id int64) (post *model.Post, found bool, err error)
	FindByAuthorID(ctx context.Context, authorID int64) ([]*model.Post, error)
	Search(ctx context.Context, keyword string) ([]*model.Post, error)
	Save(ctx context.Context, post *model.Post) (*model.Post, error)
	DeleteByID(ctx context.Context, id int64) error
}

// PostStore implements Repository on top of postgres.
type PostStore struct {
	db          *gorm.DB
	searchLimit int
}

type Option func(*PostStore)

// WithSearchLimit bounds the number of posts a single Search returns.
func WithSearchLimit(limit int) Option {
	return func(s *PostStore) {
		if limit > 0 {
			s.searchLimit = limit
		}
	}
}

func NewPostStore(db *gorm.DB, opts ...Option) *PostStore {
	s := &PostStore{db: db, searchLimit: DefaultSearchLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostStore) FindAll(ctx context.Context) ([]*model.Post, error) {
	return s.queryPosts(ctx, "find all posts", postsQuery("", postOrderBy))
}

func (s *PostStore) FindByID(ctx context.Context, id int64) (*model.Post, bool, error) {
	posts, err := s.queryPosts(ctx, "find post by id", postsQuery(whereID), id)
	if err != nil {
		return nil, false, err
	}
	if len(posts) == 0 {
		return nil, false, nil
	}
	return posts[0], true, nil
}

func (s *PostStore) FindByAuthorID(ctx context.Context, authorID int64) ([]*model.Post, error) {
	return s.queryPosts(ctx, "find posts by author", postsQuery(whereAuthorID, postOrderBy), authorID)
}

// Search matches keyword case-insensitively and literally: '%', '_' and '\'
// in keyword are not wildcards.
func (s *PostStore) Search(ctx context.Context, keyword string) ([]*model.Post, error) {
	return s.queryPosts(ctx, "search posts",
		postsQuery(whereContent, postOrderBy, "LIMIT ?"),
		containsPattern(keyword), s.searchLimit)
}

// Save inserts a post without id or updates the post with the given id, and
// replaces its attachment and tag rows with the ones on post. The row write
// and the relation writes commit or roll back together. The returned post is
// read back from storage after commit.
func (s *PostStore) Save(ctx context.Context, post *model.Post) (*model.Post, error) {
	return s.save(ctx, post, nil)
}

// SaveWithComments saves post like Save and inserts comments on it in the
// same transaction. Either the post, its relations and every comment are
// committed, or none of them are.
func (s *PostStore) SaveWithComments(ctx context.Context, post *model.Post, comments []model.Comment) (*model.Post, error) {
	for i, c := range comments {
		if strings.TrimSpace(c.Content) == "" {
			return nil, model.NewValidationError("comment %d: content is required", i)
		}
		if c.Author == nil || c.Author.Id == 0 {
			return nil, model.NewValidationError("comment %d: author is required", i)
		}
	}
	return s.save(ctx, post, comments)
}

func (s *PostStore) save(ctx context.Context, post *model.Post, comments []model.Comment) (*model.Post, error) {
	if err := validatePost(post); err != nil {
		return nil, err
	}

	var id int64
	var save utils.GormTransaction = func(tx *gorm.DB) error {
		if post.Id == nil {
			newID, err := insertPost(tx, post)
			if err != nil {
				return err
			}
			id = newID
		} else {
			id = *post.Id
			if err := updatePost(tx, post); err != nil {
				return err
			}
		}
		if err := replaceRelations(tx, id, post); err != nil {
			return err
		}
		return insertComments(tx, id, comments)
	}
	if err := s.db.WithContext(ctx).Transaction(save); err != nil {
		var typed *model.Error
		if !errors.As(err, &typed) {
			// begin or commit failed
			err = model.NewStorageError(err, "save post")
		}
		return nil, err
	}

	saved, found, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		// Deleted by a concurrent writer between commit and read back.
		return nil, model.NewNotFoundError("post %d not found after save", id)
	}
	return saved, nil
}

func insertComments(tx *gorm.DB, postID int64, comments []model.Comment) error {
	for _, c := range comments {
		rec := commentRecord{Content: c.Content, PostId: postID, AuthorId: c.Author.Id}
		if err := tx.Create(&rec).Error; err != nil {
			return writeError(err, "insert comments")
		}
	}
	return nil
}

// DeleteByID removes the post row. Comments, reactions and join rows go with
// it through the schema's ON DELETE CASCADE. Deleting a missing id is not an
// error.
func (s *PostStore) DeleteByID(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Exec("DELETE FROM posts WHERE id = ?", id)
	if res.Error != nil {
		return model.NewStorageError(res.Error, "delete post")
	}
	Log.WithFields(logrus.Fields{"post_id": id, "deleted": res.RowsAffected}).Debug("delete post")
	return nil
}

func validatePost(post *model.Post) error {
	if post == nil {
		return model.NewValidationError("post is required")
	}
	if strings.TrimSpace(post.Content) == "" {
		return model.NewValidationError("content is required")
	}
	if post.Id == nil && (post.Author == nil || post.Author.Id == 0) {
		return model.NewValidationError("author is required")
	}
	if post.Visibility != "" {
		if _, err := model.ParseVisibility(string(post.Visibility)); err != nil {
			return model.NewValidationError("%s", err.Error())
		}
	}
	return nil
}

func visibilityOrDefault(v model.Visibility) string {
	if v == "" {
		return string(model.VisibilityPublic)
	}
	return string(v)
}

func insertPost(tx *gorm.DB, post *model.Post) (int64, error) {
	var id int64
	err := tx.Raw(
		"INSERT INTO posts (content, author_id, draft, visibility) VALUES (?, ?, ?, ?::post_visibility) RETURNING id",
		post.Content, post.Author.Id, post.Draft, visibilityOrDefault(post.Visibility),
	).Scan(&id).Error
	if err != nil {
		return 0, writeError(err, "insert post")
	}
	return id, nil
}

func updatePost(tx *gorm.DB, post *model.Post) error {
	res := tx.Exec(
		"UPDATE posts SET content = ?, draft = ?, visibility = ?::post_visibility WHERE id = ?",
		post.Content, post.Draft, visibilityOrDefault(post.Visibility), *post.Id,
	)
	if res.Error != nil {
		return writeError(res.Error, "update post")
	}
	if res.RowsAffected == 0 {
		return model.NewNotFoundError("post %d not found", *post.Id)
	}
	return nil
}

// replaceRelations clears and re-inserts the join rows of post id. It is not
// a diff: the stored set becomes exactly the set on post.
func replaceRelations(tx *gorm.DB, id int64, post *model.Post) error {
	if err := replaceJoinRows(tx, "post_attachments", "media_id", id, post.AttachmentIDs()); err != nil {
		return err
	}
	return replaceJoinRows(tx, "post_tags", "tag_id", id, post.TagIDs())
}

// table and column are package constants, never caller input.
func replaceJoinRows(tx *gorm.DB, table string, column string, postID int64, ids []int64) error {
	if err := tx.Exec("DELETE FROM "+table+" WHERE post_id = ?", postID).Error; err != nil {
		return writeError(err, "clear "+table)
	}
	ids = utils.DedupInt64(ids)
	if len(ids) == 0 {
		return nil
	}
	err := tx.Exec(
		"INSERT INTO "+table+" (post_id, "+column+") SELECT ?, unnest(?::bigint[]) ON CONFLICT DO NOTHING",
		postID, pq.Int64Array(ids),
	).Error
	if err != nil {
		return writeError(err, "insert "+table)
	}
	return nil
}

// writeError classifies a failed statement. References to missing users,
// media or tags, duplicates of unique columns, CHECK violations and values
// an enum column rejects are the caller's fault; anything else is a storage
// failure.
func writeError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return model.NewValidationError("%s: referenced row does not exist (%s)", op, pgErr.ConstraintName)
		case pgCheckViolation, pgInvalidTextRepresentation:
			return model.NewValidationError("%s: %s", op, pgErr.Message)
		case pgUniqueViolation:
			return model.NewValidationError("%s: duplicate value violates %s", op, pgErr.ConstraintName)
		}
	}
	return model.NewStorageError(err, op)
}

func (s *PostStore) queryPosts(ctx context.Context, op string, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, model.NewStorageError(err, op)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		row, err := scanPostRow(rows)
		if err != nil {
			return nil, model.NewStorageError(err, op)
		}
		post, err := mapPostRow(row)
		if err != nil {
			Log.WithField("post_id", row.Id).Error("cannot map post row: ", err)
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError(err, op)
	}
	return posts, nil
}
