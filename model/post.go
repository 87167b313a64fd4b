package model

import (
	"time"
)

/*
Post is a piece of user written content together with everything attached to
it.

Id: primary key, nil until the post is persisted
Content: post body in plain text, required
CreatedAt: set by the database on insert
Draft: drafts are stored but not meant for public listing
Visibility: PUBLIC, PRIVATE or FOLLOWERS_ONLY
Author: the user who wrote the post, "belongs-to" relation, required on creation
Attachments: media attached to the post, "many-to-many" relation through post_attachments
Comments: comments on the post, "has-many" relation, cascade deleted with the post
Reactions: reactions targeting the post itself, "has-many" relation, cascade deleted with the post
Tags: "many-to-many" relation through post_tags

All slices are non-nil once a post is read back from storage.
*/
type Post struct {
	Id          *int64     `json:"id"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"createdAt"`
	Draft       bool       `json:"draft"`
	Visibility  Visibility `json:"visibility"`
	Author      *User      `json:"author"`
	Attachments []Media    `json:"attachments"`
	Comments    []Comment  `json:"comments"`
	Reactions   []Reaction `json:"reactions"`
	Tags        []Tag      `json:"tags"`
}

// Media is a stored file referenced by post attachments and profile avatars.
type Media struct {
	Id          int64     `json:"id"`
	Url         string    `json:"url"`
	Type        MediaType `json:"type"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
}

// Tag names are unique. UsageCount is maintained by the database.
type Tag struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	UsageCount int64  `json:"usageCount"`
}

// Comment belongs to one post and is deleted together with it.
type Comment struct {
	Id        int64      `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    *User      `json:"author"`
	Reactions []Reaction `json:"reactions"`
}

/*
Reaction targets exactly one post or exactly one comment, never both. The
XOR is enforced by a CHECK constraint on the reactions table.

PostId / CommentId: the target, exactly one of them is non-nil
*/
type Reaction struct {
	Id        int64        `json:"id"`
	Type      ReactionType `json:"type"`
	User      *User        `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
	PostId    *int64       `json:"postId,omitempty"`
	CommentId *int64       `json:"commentId,omitempty"`
}

// PostID returns the id of a persisted post, or 0 when the post has none.
func (p *Post) PostID() int64 {
	if p == nil || p.Id == nil {
		return 0
	}
	return *p.Id
}

// AttachmentIDs returns the media ids in attachment order.
func (p *Post) AttachmentIDs() []int64 {
	ids := make([]int64, 0, len(p.Attachments))
	for _, m := range p.Attachments {
		ids = append(ids, m.Id)
	}
	return ids
}

// TagIDs returns the tag ids in tag order.
func (p *Post) TagIDs() []int64 {
	ids := make([]int64, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.Id)
	}
	return ids
}

// PostSummary is the id, content and creation time of a post, without any
// relation.
type PostSummary struct {
	Id        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostWithComments is the listing shape that loads a post's comments and
// nothing else. Comment authors are referenced by id only.
type PostWithComments struct {
	Id         int64            `json:"id"`
	Content    string           `json:"content"`
	CreatedAt  time.Time        `json:"createdAt"`
	Draft      bool             `json:"draft"`
	Visibility Visibility       `json:"visibility"`
	Comments   []CommentSummary `json:"comments"`
}

type CommentSummary struct {
	Id        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorId  int64     `json:"authorId"`
}
