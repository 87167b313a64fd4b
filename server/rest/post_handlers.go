package rest

import (
	"net/http"
	"strconv"

	"github.com/Luismorlan/socialpost/model"
	"github.com/Luismorlan/socialpost/store"
	. "github.com/Luismorlan/socialpost/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const BasePath = "/api/posts"

// PostHandler serves the post resource over REST. It holds no state besides
// the repository it delegates to.
type PostHandler struct {
	repo store.Repository
}

func NewPostHandler(repo store.Repository) *PostHandler {
	return &PostHandler{repo: repo}
}

func (h *PostHandler) RegisterRoutes(router gin.IRouter) {
	posts := router.Group(BasePath)
	posts.GET("", h.FindAll)
	posts.GET("/search", h.Search)
	posts.GET("/author/:authorId", h.FindByAuthorID)
	posts.GET("/:id", h.FindByID)
	posts.POST("", h.Create)
	posts.PUT("/:id", h.Update)
	posts.DELETE("/:id", h.Delete)
}

// StatusForKind is the HTTP status of each error kind.
func StatusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.NotFound:
		return http.StatusNotFound
	case model.ValidationFailure:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	kind := model.KindOf(err)
	status := StatusForKind(kind)
	if status == http.StatusInternalServerError {
		Log.WithFields(logrus.Fields{"path": c.Request.URL.Path, "kind": kind}).Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"code": kind,
		"msg":  err.Error(),
	})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		abortWithError(c, model.NewValidationError("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

func bindPost(c *gin.Context) (*model.Post, bool) {
	var post model.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		abortWithError(c, model.NewValidationError("invalid post body: %s", err.Error()))
		return nil, false
	}
	return &post, true
}

func (h *PostHandler) FindAll(c *gin.Context) {
	posts, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) FindByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, found, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !found {
		abortWithError(c, model.NewNotFoundError("Post not found: %d", id))
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) FindByAuthorID(c *gin.Context) {
	authorID, ok := pathID(c, "authorId")
	if !ok {
		return
	}
	posts, err := h.repo.FindByAuthorID(c.Request.Context(), authorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Search(c *gin.Context) {
	keyword, ok := c.GetQuery("keyword")
	if !ok {
		abortWithError(c, model.NewValidationError("query parameter keyword is required"))
		return
	}
	posts, err := h.repo.Search(c.Request.Context(), keyword)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create always inserts; an id in the body is ignored.
func (h *PostHandler) Create(c *gin.Context) {
	post, ok := bindPost(c)
	if !ok {
		return
	}
	post.Id = nil
	saved, err := h.repo.Save(c.Request.Context(), post)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update replaces the post at the path id with the body. The body's own id,
// if any, is overridden by the path.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	_, found, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !found {
		abortWithError(c, model.NewNotFoundError("Post not found: %d", id))
		return
	}
	post, ok := bindPost(c)
	if !ok {
		return
	}
	post.Id = &id
	saved, err := h.repo.Save(c.Request.Context(), post)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.repo.DeleteByID(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
