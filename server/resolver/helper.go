package resolver

import (
	"math"
	"strconv"
	"time"

	"github.com/Luismorlan/socialpost/model"
	"github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
)

// DateTime is the DateTime scalar, serialized as RFC 3339.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch input := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, input)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case time.Time:
		t.Time = input
		return nil
	default:
		return errors.Errorf("wrong type for DateTime: %T", input)
	}
}

// Long is the Long scalar. Int is 32 bits in GraphQL, media sizes and usage
// counts are not.
type Long int64

func (Long) ImplementsGraphQLType(name string) bool {
	return name == "Long"
}

func (l *Long) UnmarshalGraphQL(input interface{}) error {
	switch input := input.(type) {
	case int32:
		*l = Long(input)
	case int64:
		*l = Long(input)
	case float64:
		if input != math.Trunc(input) {
			return errors.Errorf("Long must be an integer: %v", input)
		}
		*l = Long(input)
	case string:
		v, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return err
		}
		*l = Long(v)
	default:
		return errors.Errorf("wrong type for Long: %T", input)
	}
	return nil
}

// queryError carries the error kind into the "extensions.code" of a field
// error.
type queryError struct {
	err error
}

func (e *queryError) Error() string { return e.err.Error() }

func (e *queryError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(model.KindOf(e.err))}
}

func newQueryError(err error) error {
	if err == nil {
		return nil
	}
	return &queryError{err: err}
}

func toID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

func parseID(id graphql.ID) (int64, error) {
	v, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, model.NewValidationError("invalid id %q", string(id))
	}
	return v, nil
}

func parseIDs(ids []graphql.ID) ([]int64, error) {
	res := make([]int64, 0, len(ids))
	for _, id := range ids {
		v, err := parseID(id)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func parseVisibility(v *string) (model.Visibility, error) {
	if v == nil {
		return model.VisibilityPublic, nil
	}
	return model.ParseVisibility(*v)
}

func mediaRefs(ids []int64) []model.Media {
	res := make([]model.Media, 0, len(ids))
	for _, id := range ids {
		res = append(res, model.Media{Id: id})
	}
	return res
}

func tagRefs(ids []int64) []model.Tag {
	res := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		res = append(res, model.Tag{Id: id})
	}
	return res
}

// applyUpdate merges the non-null fields of input onto post. Relation lists
// are replaced only when the input names them.
func applyUpdate(post *model.Post, input UpdatePostInput) error {
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Draft != nil {
		post.Draft = *input.Draft
	}
	if input.Visibility != nil {
		v, err := model.ParseVisibility(*input.Visibility)
		if err != nil {
			return err
		}
		post.Visibility = v
	}
	if input.AttachmentIDs != nil {
		ids, err := parseIDs(*input.AttachmentIDs)
		if err != nil {
			return err
		}
		post.Attachments = mediaRefs(ids)
	}
	if input.TagIDs != nil {
		ids, err := parseIDs(*input.TagIDs)
		if err != nil {
			return err
		}
		post.Tags = tagRefs(ids)
	}
	return nil
}

func wrapPosts(posts []*model.Post) []*postResolver {
	res := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		res = append(res, &postResolver{p: p})
	}
	return res
}
