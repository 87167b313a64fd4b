package resolver

import (
	"github.com/Luismorlan/socialpost/model"
	"github.com/graph-gophers/graphql-go"
)

type postResolver struct{ p *model.Post }

func (r *postResolver) ID() graphql.ID {
	return toID(r.p.PostID())
}

func (r *postResolver) Content() string { return r.p.Content }

func (r *postResolver) CreatedAt() DateTime { return DateTime{r.p.CreatedAt} }

func (r *postResolver) Draft() bool { return r.p.Draft }

func (r *postResolver) Visibility() string { return string(r.p.Visibility) }

func (r *postResolver) Author() *userResolver { return newUserResolver(r.p.Author) }

func (r *postResolver) Attachments() []*mediaResolver {
	res := make([]*mediaResolver, 0, len(r.p.Attachments))
	for i := range r.p.Attachments {
		res = append(res, &mediaResolver{m: &r.p.Attachments[i]})
	}
	return res
}

func (r *postResolver) Comments() []*commentResolver {
	res := make([]*commentResolver, 0, len(r.p.Comments))
	for i := range r.p.Comments {
		res = append(res, &commentResolver{c: &r.p.Comments[i]})
	}
	return res
}

func (r *postResolver) Reactions() []*reactionResolver {
	return wrapReactions(r.p.Reactions)
}

func (r *postResolver) Tags() []*tagResolver {
	res := make([]*tagResolver, 0, len(r.p.Tags))
	for i := range r.p.Tags {
		res = append(res, &tagResolver{t: &r.p.Tags[i]})
	}
	return res
}

func (r *postResolver) CommentCount() int32 { return int32(len(r.p.Comments)) }

func (r *postResolver) ReactionCount() int32 { return int32(len(r.p.Reactions)) }

type userResolver struct{ u *model.User }

// newUserResolver returns nil for a missing user so the nullable field
// resolves to null.
func newUserResolver(u *model.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: u}
}

func (r *userResolver) ID() graphql.ID { return toID(r.u.Id) }

func (r *userResolver) Username() string { return r.u.Username }

func (r *userResolver) Email() string { return r.u.Email }

func (r *userResolver) Role() *string {
	if r.u.Role == "" {
		return nil
	}
	role := string(r.u.Role)
	return &role
}

type mediaResolver struct{ m *model.Media }

func (r *mediaResolver) ID() graphql.ID { return toID(r.m.Id) }

func (r *mediaResolver) Url() string { return r.m.Url }

func (r *mediaResolver) Type() string { return string(r.m.Type) }

func (r *mediaResolver) Size() Long { return Long(r.m.Size) }

func (r *mediaResolver) ContentType() string { return r.m.ContentType }

type tagResolver struct{ t *model.Tag }

func (r *tagResolver) ID() graphql.ID { return toID(r.t.Id) }

func (r *tagResolver) Name() string { return r.t.Name }

func (r *tagResolver) UsageCount() Long { return Long(r.t.UsageCount) }

type commentResolver struct{ c *model.Comment }

func (r *commentResolver) ID() graphql.ID { return toID(r.c.Id) }

func (r *commentResolver) Content() string { return r.c.Content }

func (r *commentResolver) CreatedAt() DateTime { return DateTime{r.c.CreatedAt} }

func (r *commentResolver) Author() *userResolver { return newUserResolver(r.c.Author) }

func (r *commentResolver) Reactions() []*reactionResolver {
	return wrapReactions(r.c.Reactions)
}

type reactionResolver struct{ r *model.Reaction }

func wrapReactions(reactions []model.Reaction) []*reactionResolver {
	res := make([]*reactionResolver, 0, len(reactions))
	for i := range reactions {
		res = append(res, &reactionResolver{r: &reactions[i]})
	}
	return res
}

func (r *reactionResolver) ID() graphql.ID { return toID(r.r.Id) }

func (r *reactionResolver) Type() string { return string(r.r.Type) }

func (r *reactionResolver) User() *userResolver { return newUserResolver(r.r.User) }

func (r *reactionResolver) CreatedAt() DateTime { return DateTime{r.r.CreatedAt} }
