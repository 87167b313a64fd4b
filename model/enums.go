package model

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// json is the codec of the domain model; the store mapper uses the same
// jsoniter configuration.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Role is the permission level of a user, stored as postgres enum user_role.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// MediaType is stored as postgres enum media_type.
type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeDocument MediaType = "DOCUMENT"
)

// Visibility is the access scope of a post, stored as postgres enum
// post_visibility.
type Visibility string

const (
	VisibilityPublic        Visibility = "PUBLIC"
	VisibilityPrivate       Visibility = "PRIVATE"
	VisibilityFollowersOnly Visibility = "FOLLOWERS_ONLY"
)

// ReactionType is stored as postgres enum reaction_type.
type ReactionType string

const (
	ReactionTypeLike  ReactionType = "LIKE"
	ReactionTypeLove  ReactionType = "LOVE"
	ReactionTypeLaugh ReactionType = "LAUGH"
	ReactionTypeSad   ReactionType = "SAD"
	ReactionTypeAngry ReactionType = "ANGRY"
)

var (
	allRoles         = []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
	allMediaTypes    = []string{string(MediaTypeImage), string(MediaTypeVideo), string(MediaTypeDocument)}
	allVisibilities  = []string{string(VisibilityPublic), string(VisibilityPrivate), string(VisibilityFollowersOnly)}
	allReactionTypes = []string{
		string(ReactionTypeLike),
		string(ReactionTypeLove),
		string(ReactionTypeLaugh),
		string(ReactionTypeSad),
		string(ReactionTypeAngry),
	}
)

// parseEnum matches name exactly (case sensitive) against one of valid.
func parseEnum(kind string, name string, valid []string) (string, error) {
	for _, v := range valid {
		if v == name {
			return v, nil
		}
	}
	return "", errors.Errorf("unknown %s %q", kind, name)
}

func ParseRole(name string) (Role, error) {
	v, err := parseEnum("role", name, allRoles)
	return Role(v), err
}

func ParseMediaType(name string) (MediaType, error) {
	v, err := parseEnum("media type", name, allMediaTypes)
	return MediaType(v), err
}

func ParseVisibility(name string) (Visibility, error) {
	v, err := parseEnum("visibility", name, allVisibilities)
	return Visibility(v), err
}

func ParseReactionType(name string) (ReactionType, error) {
	v, err := parseEnum("reaction type", name, allReactionTypes)
	return ReactionType(v), err
}

// unmarshalEnum decodes a JSON string and validates it. A JSON null leaves
// the target untouched.
func unmarshalEnum(data []byte, parse func(string) error) error {
	if string(data) == "null" {
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return parse(name)
}

func (r *Role) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, func(name string) (err error) {
		*r, err = ParseRole(name)
		return
	})
}

func (m *MediaType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, func(name string) (err error) {
		*m, err = ParseMediaType(name)
		return
	})
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, func(name string) (err error) {
		*v, err = ParseVisibility(name)
		return
	})
}

func (t *ReactionType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, func(name string) (err error) {
		*t, err = ParseReactionType(name)
		return
	})
}
