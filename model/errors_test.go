package model

import (
	stdjson "encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(NewNotFoundError("post %d", 1)))
	assert.Equal(t, ValidationFailure, KindOf(errors.Wrap(NewValidationError("content is required"), "save")))
	assert.Equal(t, MappingFailure, KindOf(NewMappingError(7, errors.New("bad json"), "author")))
	assert.Equal(t, StorageFailure, KindOf(errors.New("connection refused")))
	assert.False(t, IsKind(nil, StorageFailure))
}

func TestMappingErrorNamesRow(t *testing.T) {
	err := NewMappingError(42, errors.New("unexpected end of JSON input"), "decode %s", "author")
	assert.Contains(t, err.Error(), "row 42")
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}

func TestStorageErrorCause(t *testing.T) {
	root := errors.New("tx aborted")
	err := NewStorageError(root, "save post")
	assert.Equal(t, root, errors.Cause(err))
}

func TestParseVisibility(t *testing.T) {
	v, err := ParseVisibility("FOLLOWERS_ONLY")
	require.NoError(t, err)
	assert.Equal(t, VisibilityFollowersOnly, v)

	_, err = ParseVisibility("public")
	assert.Error(t, err)
	_, err = ParseVisibility("")
	assert.Error(t, err)
}

func TestEnumUnmarshalJSON(t *testing.T) {
	var m Media
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"type":"VIDEO"}`), &m))
	assert.Equal(t, MediaTypeVideo, m.Type)

	var r Reaction
	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"type":"MEH"}`), &r))

	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"content":"x","visibility":null}`), &p))
	assert.Equal(t, Visibility(""), p.Visibility)
}

// gin binds request bodies with encoding/json, the store decodes with
// jsoniter; both must accept and reject the same enum values.
func TestEnumDecodingAgreesAcrossCodecs(t *testing.T) {
	for _, body := range []string{
		`{"visibility":"PRIVATE"}`,
		`{"visibility":"FRIENDS"}`,
		`{"visibility":"private"}`,
		`{"visibility":null}`,
		`{"visibility":3}`,
	} {
		var fromStd, fromIter Post
		stdErr := stdjson.Unmarshal([]byte(body), &fromStd)
		iterErr := json.Unmarshal([]byte(body), &fromIter)
		assert.Equal(t, stdErr == nil, iterErr == nil, body)
		assert.Equal(t, fromStd.Visibility, fromIter.Visibility, body)
	}
}

func TestHashedPasswordNotSerialized(t *testing.T) {
	b, err := json.Marshal(User{Id: 1, Username: "dan", HashedPassword: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}

func TestPostRelationIDs(t *testing.T) {
	id := int64(3)
	p := &Post{
		Id:          &id,
		Attachments: []Media{{Id: 10}, {Id: 11}},
		Tags:        []Tag{{Id: 3}, {Id: 4}},
	}
	assert.Equal(t, int64(3), p.PostID())
	assert.Equal(t, []int64{10, 11}, p.AttachmentIDs())
	assert.Equal(t, []int64{3, 4}, p.TagIDs())
	assert.Equal(t, int64(0), (&Post{}).PostID())
}
