package store

import (
	"context"
	"time"

	"github.com/Luismorlan/socialpost/model"
	. "github.com/Luismorlan/socialpost/utils/log"
	"gorm.io/datatypes"
)

type commentSummaryJSON struct {
	Id        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	AuthorId  int64  `json:"authorId"`
}

// FindAllSummaries lists every post as id, content and creation time, newest
// first. Drafts are included.
func (s *PostStore) FindAllSummaries(ctx context.Context) ([]model.PostSummary, error) {
	var rows []struct {
		Id        int64
		Content   string
		CreatedAt time.Time
	}
	if err := s.db.WithContext(ctx).Raw(postSummariesQuery).Scan(&rows).Error; err != nil {
		return nil, model.NewStorageError(err, "find post summaries")
	}
	res := make([]model.PostSummary, 0, len(rows))
	for _, r := range rows {
		res = append(res, model.PostSummary{Id: r.Id, Content: r.Content, CreatedAt: r.CreatedAt})
	}
	return res, nil
}

// FindAllWithComments lists every post with its comments and no other
// relation, newest first. Comments are ordered by id.
func (s *PostStore) FindAllWithComments(ctx context.Context) ([]*model.PostWithComments, error) {
	const op = "find posts with comments"
	rows, err := s.db.WithContext(ctx).Raw(postsWithCommentsQuery).Rows()
	if err != nil {
		return nil, model.NewStorageError(err, op)
	}
	defer rows.Close()

	res := []*model.PostWithComments{}
	for rows.Next() {
		var (
			post       model.PostWithComments
			visibility string
			comments   datatypes.JSON
		)
		if err := rows.Scan(&post.Id, &post.Content, &post.CreatedAt, &post.Draft, &visibility, &comments); err != nil {
			return nil, model.NewStorageError(err, op)
		}
		if post.Visibility, err = model.ParseVisibility(visibility); err != nil {
			return nil, model.NewMappingError(post.Id, err, "visibility")
		}
		if post.Comments, err = mapCommentSummaries(post.Id, comments); err != nil {
			Log.WithField("post_id", post.Id).Error("cannot map post row: ", err)
			return nil, err
		}
		res = append(res, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError(err, op)
	}
	return res, nil
}

func mapCommentSummaries(rowID int64, raw []byte) ([]model.CommentSummary, error) {
	res := []model.CommentSummary{}
	if isNullJSON(raw) {
		return res, nil
	}
	var items []commentSummaryJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode comments")
	}
	for _, c := range items {
		createdAt, err := parseTimestamp(c.CreatedAt)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "comment %d createdAt", c.Id)
		}
		res = append(res, model.CommentSummary{
			Id:        c.Id,
			Content:   c.Content,
			CreatedAt: createdAt,
			AuthorId:  c.AuthorId,
		})
	}
	return res, nil
}
