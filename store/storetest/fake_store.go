package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Luismorlan/socialpost/model"
	"github.com/Luismorlan/socialpost/store"
	"github.com/Luismorlan/socialpost/utils"
)

var _ store.Repository = (*FakeStore)(nil)

// FakeStore is an in memory store.Repository for front end tests. Users,
// media and tags must be registered before posts reference them, mirroring
// the foreign keys of the real schema.
type FakeStore struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	posts  map[int64]*model.Post
	users  map[int64]*model.User
	media  map[int64]model.Media
	tags   map[int64]model.Tag

	// Err, when set, is returned by every operation.
	Err error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		now:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		posts: map[int64]*model.Post{},
		users: map[int64]*model.User{},
		media: map[int64]model.Media{},
		tags:  map[int64]model.Tag{},
	}
}

func (f *FakeStore) AddUser(u model.User) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.Id] = &u
	return &u
}

func (f *FakeStore) AddMedia(m model.Media) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media[m.Id] = m
}

func (f *FakeStore) AddTag(t model.Tag) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags[t.Id] = t
}

func (f *FakeStore) FindAll(ctx context.Context) ([]*model.Post, error) {
	return f.list(func(*model.Post) bool { return true })
}

func (f *FakeStore) FindByID(ctx context.Context, id int64) (*model.Post, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, false, f.Err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, false, nil
	}
	return clonePost(p), true, nil
}

func (f *FakeStore) FindByAuthorID(ctx context.Context, authorID int64) ([]*model.Post, error) {
	return f.list(func(p *model.Post) bool { return p.Author.Id == authorID })
}

func (f *FakeStore) Search(ctx context.Context, keyword string) ([]*model.Post, error) {
	keyword = strings.ToLower(keyword)
	return f.list(func(p *model.Post) bool {
		return strings.Contains(strings.ToLower(p.Content), keyword)
	})
}

func (f *FakeStore) Save(ctx context.Context, post *model.Post) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if post == nil || strings.TrimSpace(post.Content) == "" {
		return nil, model.NewValidationError("content is required")
	}

	var stored *model.Post
	if post.Id == nil {
		if post.Author == nil || post.Author.Id == 0 {
			return nil, model.NewValidationError("author is required")
		}
		author, ok := f.users[post.Author.Id]
		if !ok {
			return nil, model.NewValidationError("insert post: referenced row does not exist")
		}
		f.nextID++
		f.now = f.now.Add(time.Minute)
		id := f.nextID
		stored = &model.Post{
			Id:        &id,
			CreatedAt: f.now,
			Author:    author,
			Comments:  []model.Comment{},
			Reactions: []model.Reaction{},
		}
	} else {
		existing, ok := f.posts[*post.Id]
		if !ok {
			return nil, model.NewNotFoundError("post %d not found", *post.Id)
		}
		stored = clonePost(existing)
	}

	attachments := []model.Media{}
	for _, id := range utils.DedupInt64(post.AttachmentIDs()) {
		m, ok := f.media[id]
		if !ok {
			return nil, model.NewValidationError("insert post_attachments: referenced row does not exist")
		}
		attachments = append(attachments, m)
	}
	tags := []model.Tag{}
	for _, id := range utils.DedupInt64(post.TagIDs()) {
		t, ok := f.tags[id]
		if !ok {
			return nil, model.NewValidationError("insert post_tags: referenced row does not exist")
		}
		tags = append(tags, t)
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].Id < attachments[j].Id })
	sort.Slice(tags, func(i, j int) bool { return tags[i].Id < tags[j].Id })

	stored.Content = post.Content
	stored.Draft = post.Draft
	stored.Visibility = post.Visibility
	if stored.Visibility == "" {
		stored.Visibility = model.VisibilityPublic
	}
	stored.Attachments = attachments
	stored.Tags = tags
	f.posts[*stored.Id] = stored
	return clonePost(stored), nil
}

func (f *FakeStore) DeleteByID(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	delete(f.posts, id)
	return nil
}

func (f *FakeStore) list(match func(*model.Post) bool) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	res := []*model.Post{}
	for _, p := range f.posts {
		if match(p) {
			res = append(res, clonePost(p))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return *res[i].Id > *res[j].Id
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	id := *p.Id
	c.Id = &id
	c.Attachments = append([]model.Media{}, p.Attachments...)
	c.Comments = append([]model.Comment{}, p.Comments...)
	c.Reactions = append([]model.Reaction{}, p.Reactions...)
	c.Tags = append([]model.Tag{}, p.Tags...)
	return &c
}

// AddComment appends a comment to a stored post, standing in for the comment
// collaborator.
func (f *FakeStore) AddComment(postID int64, c model.Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[postID]; ok {
		if c.Reactions == nil {
			c.Reactions = []model.Reaction{}
		}
		p.Comments = append(p.Comments, c)
	}
}

// AddReaction appends a post reaction to a stored post.
func (f *FakeStore) AddReaction(postID int64, r model.Reaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[postID]; ok {
		id := postID
		r.PostId = &id
		p.Reactions = append(p.Reactions, r)
	}
}
