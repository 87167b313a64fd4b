package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luismorlan/socialpost/model"
	"github.com/Luismorlan/socialpost/store/storetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepareRESTTest(t *testing.T) (*gin.Engine, *storetest.FakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fake := storetest.NewFakeStore()
	fake.AddUser(model.User{Id: 1, Username: "Author 1", Email: "author1@example.com", Role: model.RoleUser})
	fake.AddUser(model.User{Id: 2, Username: "Author 2", Email: "author2@example.com", Role: model.RoleUser})
	fake.AddTag(model.Tag{Id: 3, Name: "spring"})
	fake.AddTag(model.Tag{Id: 4, Name: "java"})
	fake.AddMedia(model.Media{Id: 10, Url: "https://cdn/a.png", Type: model.MediaTypeImage})

	router := gin.New()
	NewPostHandler(fake).RegisterRoutes(router)
	return router, fake
}

func doRequest(router http.Handler, method string, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePost(t *testing.T, w *httptest.ResponseRecorder) model.Post {
	t.Helper()
	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

func seedPost(t *testing.T, router http.Handler, content string, authorID int64) model.Post {
	t.Helper()
	w := doRequest(router, http.MethodPost, BasePath, map[string]interface{}{
		"content": content,
		"author":  map[string]interface{}{"id": authorID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodePost(t, w)
}

func TestFindAllReturnsPosts(t *testing.T) {
	router, _ := prepareRESTTest(t)
	seedPost(t, router, "Content 1", 1)
	seedPost(t, router, "Content 2", 2)

	w := doRequest(router, http.MethodGet, BasePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var posts []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "Content 2", posts[0].Content, "newest first")
	assert.Equal(t, "Content 1", posts[1].Content)
}

func TestFindAllEmptyIsArray(t *testing.T) {
	router, _ := prepareRESTTest(t)
	w := doRequest(router, http.MethodGet, BasePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFindByID(t *testing.T) {
	router, _ := prepareRESTTest(t)
	created := seedPost(t, router, "Content 1", 1)

	w := doRequest(router, http.MethodGet, BasePath+"/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	post := decodePost(t, w)
	assert.Equal(t, *created.Id, *post.Id)
	assert.Equal(t, "Content 1", post.Content)
	assert.NotNil(t, post.Comments)
	assert.NotNil(t, post.Reactions)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, []interface{}{}, raw["attachments"])
	assert.NotContains(t, raw["author"], "hashedPassword")
}

func TestFindByIDNotFound(t *testing.T) {
	router, _ := prepareRESTTest(t)
	w := doRequest(router, http.MethodGet, BasePath+"/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), string(model.NotFound))
}

func TestInvalidPathID(t *testing.T) {
	router, _ := prepareRESTTest(t)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := doRequest(router, method, BasePath+"/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
	}
	w := doRequest(router, http.MethodGet, BasePath+"/author/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindByAuthorID(t *testing.T) {
	router, _ := prepareRESTTest(t)
	seedPost(t, router, "mine", 1)
	seedPost(t, router, "theirs", 2)
	seedPost(t, router, "mine again", 1)

	w := doRequest(router, http.MethodGet, BasePath+"/author/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "mine again", posts[0].Content)

	w = doRequest(router, http.MethodGet, BasePath+"/author/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearch(t *testing.T) {
	router, _ := prepareRESTTest(t)
	seedPost(t, router, "Spring Boot tips", 1)
	seedPost(t, router, "Go tips", 1)

	w := doRequest(router, http.MethodGet, BasePath+"/search?keyword=spring", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Spring Boot tips", posts[0].Content)

	w = doRequest(router, http.MethodGet, BasePath+"/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost(t *testing.T) {
	router, _ := prepareRESTTest(t)
	w := doRequest(router, http.MethodPost, BasePath, map[string]interface{}{
		"id":          77,
		"content":     "New Content",
		"author":      map[string]interface{}{"id": 1},
		"visibility":  "PRIVATE",
		"draft":       true,
		"tags":        []map[string]interface{}{{"id": 4}, {"id": 3}},
		"attachments": []map[string]interface{}{{"id": 10}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	post := decodePost(t, w)
	require.NotNil(t, post.Id)
	assert.Equal(t, int64(1), *post.Id, "body id is ignored on create")
	assert.Equal(t, "New Content", post.Content)
	assert.Equal(t, model.VisibilityPrivate, post.Visibility)
	assert.True(t, post.Draft)
	assert.Equal(t, []int64{3, 4}, post.TagIDs())
	assert.Equal(t, []int64{10}, post.AttachmentIDs())
	assert.Equal(t, "Author 1", post.Author.Username)
}

func TestCreatePostInvalid(t *testing.T) {
	router, _ := prepareRESTTest(t)
	for name, body := range map[string]interface{}{
		"blank content":  map[string]interface{}{"content": " ", "author": map[string]interface{}{"id": 1}},
		"missing author": map[string]interface{}{"content": "Hello"},
		"bad visibility": map[string]interface{}{"content": "Hello", "author": map[string]interface{}{"id": 1}, "visibility": "FRIENDS"},
		"malformed json": `{"content": `,
		"unknown tag":    map[string]interface{}{"content": "Hello", "author": map[string]interface{}{"id": 1}, "tags": []map[string]interface{}{{"id": 99}}},
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, BasePath, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), string(model.ValidationFailure))
		})
	}
}

func TestUpdatePost(t *testing.T) {
	router, _ := prepareRESTTest(t)
	created := seedPost(t, router, "Content 1", 1)

	w := doRequest(router, http.MethodPut, BasePath+"/1", map[string]interface{}{
		"id":      999,
		"content": "Updated Content",
		"tags":    []map[string]interface{}{{"id": 3}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	post := decodePost(t, w)
	assert.Equal(t, *created.Id, *post.Id, "path id wins over body id")
	assert.Equal(t, "Updated Content", post.Content)
	assert.Equal(t, []int64{3}, post.TagIDs())
	assert.Equal(t, "Author 1", post.Author.Username)
}

func TestUpdatePostNotFound(t *testing.T) {
	router, _ := prepareRESTTest(t)
	w := doRequest(router, http.MethodPut, BasePath+"/5", map[string]interface{}{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	router, _ := prepareRESTTest(t)
	seedPost(t, router, "Content 1", 1)

	w := doRequest(router, http.MethodDelete, BasePath+"/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// Deleting again is still fine.
	w = doRequest(router, http.MethodDelete, BasePath+"/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, BasePath+"/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStorageFailureIs500(t *testing.T) {
	router, fake := prepareRESTTest(t)
	fake.Err = model.NewStorageError(errors.New("connection refused"), "find all posts")

	w := doRequest(router, http.MethodGet, BasePath, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(model.StorageFailure))

	fake.Err = model.NewMappingError(3, errors.New("bad json"), "decode author")
	w = doRequest(router, http.MethodGet, BasePath+"/3", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), string(model.MappingFailure))
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForKind(model.NotFound))
	assert.Equal(t, http.StatusBadRequest, StatusForKind(model.ValidationFailure))
	assert.Equal(t, http.StatusInternalServerError, StatusForKind(model.MappingFailure))
	assert.Equal(t, http.StatusInternalServerError, StatusForKind(model.StorageFailure))
}
