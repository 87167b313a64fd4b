package store

import (
	"database/sql"
	"sort"
	"time"

	"github.com/Luismorlan/socialpost/model"
	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
	"gorm.io/datatypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// postRow is one result row of postsQuery, column for column.
type postRow struct {
	Id          int64
	Content     string
	CreatedAt   time.Time
	Draft       bool
	Visibility  string
	Attachments datatypes.JSON
	Comments    datatypes.JSON
	Reactions   datatypes.JSON
	Author      datatypes.JSON
	Tags        datatypes.JSON
}

// scanPostRow reads the current row, in the column order of postsQuery.
func scanPostRow(rows *sql.Rows) (*postRow, error) {
	var r postRow
	err := rows.Scan(
		&r.Id,
		&r.Content,
		&r.CreatedAt,
		&r.Draft,
		&r.Visibility,
		&r.Attachments,
		&r.Comments,
		&r.Reactions,
		&r.Author,
		&r.Tags,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// One struct per aggregate column. Timestamps arrive as jsonb strings whose
// exact rendering depends on the column type and session time zone, so they
// are kept as strings and parsed separately.

type userJSON struct {
	Id       *int64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type mediaJSON struct {
	Id          int64  `json:"id"`
	Url         string `json:"url"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type tagJSON struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	UsageCount int64  `json:"usageCount"`
}

type reactionJSON struct {
	Id        int64     `json:"id"`
	Type      string    `json:"type"`
	CreatedAt string    `json:"createdAt"`
	PostId    *int64    `json:"postId"`
	CommentId *int64    `json:"commentId"`
	User      *userJSON `json:"user"`
}

type commentJSON struct {
	Id        int64          `json:"id"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"createdAt"`
	Author    *userJSON      `json:"author"`
	Reactions []reactionJSON `json:"reactions"`
}

// isNullJSON is true for a missing column value or a JSON null.
func isNullJSON(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// mapPostRow builds a post from one row. Missing aggregates become empty
// slices; a missing author or an unknown enum name is a mapping failure.
func mapPostRow(r *postRow) (*model.Post, error) {
	visibility, err := model.ParseVisibility(r.Visibility)
	if err != nil {
		return nil, model.NewMappingError(r.Id, err, "visibility")
	}

	author, err := mapAuthor(r.Id, r.Author)
	if err != nil {
		return nil, err
	}

	attachments, err := mapAttachments(r.Id, r.Attachments)
	if err != nil {
		return nil, err
	}
	comments, err := mapComments(r.Id, r.Comments)
	if err != nil {
		return nil, err
	}
	reactions, err := mapReactions(r.Id, r.Reactions)
	if err != nil {
		return nil, err
	}
	tags, err := mapTags(r.Id, r.Tags)
	if err != nil {
		return nil, err
	}

	id := r.Id
	return &model.Post{
		Id:          &id,
		Content:     r.Content,
		CreatedAt:   r.CreatedAt,
		Draft:       r.Draft,
		Visibility:  visibility,
		Author:      author,
		Attachments: attachments,
		Comments:    comments,
		Reactions:   reactions,
		Tags:        tags,
	}, nil
}

func mapAuthor(rowID int64, raw []byte) (*model.User, error) {
	if isNullJSON(raw) {
		return nil, model.NewMappingError(rowID, nil, "post has no author")
	}
	var u userJSON
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode author")
	}
	// A dangling author_id yields an object with null fields.
	if u.Id == nil {
		return nil, model.NewMappingError(rowID, nil, "post has no author")
	}
	return mapUser(rowID, &u)
}

func mapUser(rowID int64, u *userJSON) (*model.User, error) {
	if u == nil || u.Id == nil {
		return nil, nil
	}
	user := &model.User{
		Id:       *u.Id,
		Username: u.Username,
		Email:    u.Email,
	}
	if u.Role != "" {
		role, err := model.ParseRole(u.Role)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "user %d role", *u.Id)
		}
		user.Role = role
	}
	return user, nil
}

func mapAttachments(rowID int64, raw []byte) ([]model.Media, error) {
	res := []model.Media{}
	if isNullJSON(raw) {
		return res, nil
	}
	var items []mediaJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode attachments")
	}
	for _, m := range items {
		mediaType, err := model.ParseMediaType(m.Type)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "media %d type", m.Id)
		}
		res = append(res, model.Media{
			Id:          m.Id,
			Url:         m.Url,
			Type:        mediaType,
			Size:        m.Size,
			ContentType: m.ContentType,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func mapTags(rowID int64, raw []byte) ([]model.Tag, error) {
	res := []model.Tag{}
	if isNullJSON(raw) {
		return res, nil
	}
	var items []tagJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode tags")
	}
	for _, t := range items {
		res = append(res, model.Tag{Id: t.Id, Name: t.Name, UsageCount: t.UsageCount})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func mapReactions(rowID int64, raw []byte) ([]model.Reaction, error) {
	if isNullJSON(raw) {
		return []model.Reaction{}, nil
	}
	var items []reactionJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode reactions")
	}
	return mapReactionItems(rowID, items)
}

func mapReactionItems(rowID int64, items []reactionJSON) ([]model.Reaction, error) {
	res := []model.Reaction{}
	for _, r := range items {
		reactionType, err := model.ParseReactionType(r.Type)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "reaction %d type", r.Id)
		}
		createdAt, err := parseTimestamp(r.CreatedAt)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "reaction %d createdAt", r.Id)
		}
		user, err := mapUser(rowID, r.User)
		if err != nil {
			return nil, err
		}
		res = append(res, model.Reaction{
			Id:        r.Id,
			Type:      reactionType,
			User:      user,
			CreatedAt: createdAt,
			PostId:    r.PostId,
			CommentId: r.CommentId,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func mapComments(rowID int64, raw []byte) ([]model.Comment, error) {
	res := []model.Comment{}
	if isNullJSON(raw) {
		return res, nil
	}
	var items []commentJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, model.NewMappingError(rowID, err, "decode comments")
	}
	for _, c := range items {
		createdAt, err := parseTimestamp(c.CreatedAt)
		if err != nil {
			return nil, model.NewMappingError(rowID, err, "comment %d createdAt", c.Id)
		}
		author, err := mapUser(rowID, c.Author)
		if err != nil {
			return nil, err
		}
		reactions, err := mapReactionItems(rowID, c.Reactions)
		if err != nil {
			return nil, err
		}
		res = append(res, model.Comment{
			Id:        c.Id,
			Content:   c.Content,
			CreatedAt: createdAt,
			Author:    author,
			Reactions: reactions,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

// parseTimestamp accepts both timestamptz ("...+00:00") and plain timestamp
// renderings. Values without an offset are read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}
