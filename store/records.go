package store

import (
	"context"

	"github.com/Luismorlan/socialpost/model"
	"gorm.io/gorm"
)

// Records owned by collaborators of the post access layer: accounts, media,
// tags, comments and reactions. They are plain gorm models so the rows can be
// created without hand written SQL; reads always go through postsQuery.

type userRecord struct {
	Id             int64 `gorm:"primaryKey"`
	Username       string
	Email          string
	HashedPassword string
	Role           string
}

func (userRecord) TableName() string { return "users" }

type mediaRecord struct {
	Id          int64 `gorm:"primaryKey"`
	Url         string
	MediaType   string
	Size        int64
	ContentType string
}

func (mediaRecord) TableName() string { return "media" }

type tagRecord struct {
	Id   int64 `gorm:"primaryKey"`
	Name string
}

func (tagRecord) TableName() string { return "tags" }

type commentRecord struct {
	Id       int64 `gorm:"primaryKey"`
	Content  string
	PostId   int64
	AuthorId int64
}

func (commentRecord) TableName() string { return "comments" }

type reactionRecord struct {
	Id        int64 `gorm:"primaryKey"`
	Type      string
	UserId    int64
	PostId    *int64
	CommentId *int64
}

func (reactionRecord) TableName() string { return "reactions" }

// RecordStore writes the rows a post refers to.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// CreateUser inserts user and returns it with its generated id. A taken
// username or email is a validation failure.
func (s *RecordStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	rec := userRecord{
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Role:           string(role),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, writeError(err, "create user")
	}
	user.Id = rec.Id
	user.Role = role
	return &user, nil
}

// DeleteUser removes the account; its posts, comments and reactions cascade.
func (s *RecordStore) DeleteUser(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&userRecord{}, id).Error; err != nil {
		return model.NewStorageError(err, "delete user")
	}
	return nil
}

func (s *RecordStore) CreateMedia(ctx context.Context, media model.Media) (*model.Media, error) {
	if _, err := model.ParseMediaType(string(media.Type)); err != nil {
		return nil, model.NewValidationError("create media: %s", err.Error())
	}
	rec := mediaRecord{
		Url:         media.Url,
		MediaType:   string(media.Type),
		Size:        media.Size,
		ContentType: media.ContentType,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, writeError(err, "create media")
	}
	media.Id = rec.Id
	return &media, nil
}

func (s *RecordStore) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	rec := tagRecord{Name: name}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, writeError(err, "create tag")
	}
	return &model.Tag{Id: rec.Id, Name: rec.Name}, nil
}

func (s *RecordStore) CreateComment(ctx context.Context, postID int64, authorID int64, content string) (int64, error) {
	if content == "" {
		return 0, model.NewValidationError("comment content is required")
	}
	rec := commentRecord{Content: content, PostId: postID, AuthorId: authorID}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, writeError(err, "create comment")
	}
	return rec.Id, nil
}

// CreateReaction attaches a reaction to exactly one of postID or commentID.
// The schema rejects rows with both or neither set.
func (s *RecordStore) CreateReaction(ctx context.Context, reactionType model.ReactionType, userID int64, postID *int64, commentID *int64) (int64, error) {
	rec := reactionRecord{
		Type:      string(reactionType),
		UserId:    userID,
		PostId:    postID,
		CommentId: commentID,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, writeError(err, "create reaction")
	}
	return rec.Id, nil
}
