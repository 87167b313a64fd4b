package resolver

import (
	"context"

	"github.com/Luismorlan/socialpost/model"
	"github.com/graph-gophers/graphql-go"
)

type CreatePostInput struct {
	Content       string
	AuthorID      graphql.ID
	Draft         *bool
	Visibility    *string
	AttachmentIDs *[]graphql.ID
	TagIDs        *[]graphql.ID
}

type UpdatePostInput struct {
	Content       *string
	Draft         *bool
	Visibility    *string
	AttachmentIDs *[]graphql.ID
	TagIDs        *[]graphql.ID
}

func (r *Resolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.Repo.FindAll(ctx)
	if err != nil {
		return nil, newQueryError(err)
	}
	return wrapPosts(posts), nil
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, newQueryError(err)
	}
	post, found, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, newQueryError(err)
	}
	if !found {
		return nil, newQueryError(model.NewNotFoundError("Post not found: %d", id))
	}
	return &postResolver{p: post}, nil
}

func (r *Resolver) PostsByAuthor(ctx context.Context, args struct{ AuthorID graphql.ID }) ([]*postResolver, error) {
	authorID, err := parseID(args.AuthorID)
	if err != nil {
		return nil, newQueryError(err)
	}
	posts, err := r.Repo.FindByAuthorID(ctx, authorID)
	if err != nil {
		return nil, newQueryError(err)
	}
	return wrapPosts(posts), nil
}

func (r *Resolver) SearchPosts(ctx context.Context, args struct{ Keyword string }) ([]*postResolver, error) {
	posts, err := r.Repo.Search(ctx, args.Keyword)
	if err != nil {
		return nil, newQueryError(err)
	}
	return wrapPosts(posts), nil
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input CreatePostInput }) (*postResolver, error) {
	in := args.Input
	authorID, err := parseID(in.AuthorID)
	if err != nil {
		return nil, newQueryError(err)
	}
	visibility, err := parseVisibility(in.Visibility)
	if err != nil {
		return nil, newQueryError(err)
	}
	post := &model.Post{
		Content:     in.Content,
		Author:      &model.User{Id: authorID},
		Visibility:  visibility,
		Attachments: []model.Media{},
		Tags:        []model.Tag{},
	}
	if in.Draft != nil {
		post.Draft = *in.Draft
	}
	if in.AttachmentIDs != nil {
		ids, err := parseIDs(*in.AttachmentIDs)
		if err != nil {
			return nil, newQueryError(err)
		}
		post.Attachments = mediaRefs(ids)
	}
	if in.TagIDs != nil {
		ids, err := parseIDs(*in.TagIDs)
		if err != nil {
			return nil, newQueryError(err)
		}
		post.Tags = tagRefs(ids)
	}

	saved, err := r.Repo.Save(ctx, post)
	if err != nil {
		return nil, newQueryError(err)
	}
	return &postResolver{p: saved}, nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID    graphql.ID
	Input UpdatePostInput
}) (*postResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, newQueryError(err)
	}
	existing, found, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, newQueryError(err)
	}
	if !found {
		return nil, newQueryError(model.NewNotFoundError("Post not found: %d", id))
	}
	if err := applyUpdate(existing, args.Input); err != nil {
		return nil, newQueryError(err)
	}
	saved, err := r.Repo.Save(ctx, existing)
	if err != nil {
		return nil, newQueryError(err)
	}
	return &postResolver{p: saved}, nil
}

// DeletePost is idempotent: deleting a missing post still returns true.
func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return false, newQueryError(err)
	}
	if err := r.Repo.DeleteByID(ctx, id); err != nil {
		return false, newQueryError(err)
	}
	return true, nil
}
