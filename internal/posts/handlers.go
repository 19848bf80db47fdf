package posts

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/crazyLixxx/yatube-backend/internal/auth"
	"github.com/crazyLixxx/yatube-backend/internal/feedcache"
	"github.com/crazyLixxx/yatube-backend/internal/follow"
	"github.com/crazyLixxx/yatube-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	PageSize int
	LoginURL string
}

type pageMeta struct {
	Number     int  `json:"number"`
	TotalCount int  `json:"total_count"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type listingResponse struct {
	Posts []Post   `json:"posts"`
	Page  pageMeta `json:"page"`
}

func RegisterRoutes(r fiber.Router, svc *Service, follows *follow.Service, cache *feedcache.Cache, opts Options) {
	requireLogin := auth.RequireLogin(opts.LoginURL)
	requireUser := auth.RequireUser()

	// Site-wide listing. The only cached scope: the rendered page is
	// viewer-independent, so the whole response body is stored under the
	// page signature and served as-is until ttl expiry or Clear.
	r.Get("/", func(c *fiber.Ctx) error {
		number, err := pageNumber(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid page number")
		}

		key := feedcache.PageKey(number, opts.PageSize)
		if body, ok := cache.Get(c.Context(), key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		}

		items, err := svc.List(c.Context(), All())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		page, err := pagination.Paginate(items, opts.PageSize, number)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := json.Marshal(render(page))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		cache.Put(c.Context(), key, body)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})

	r.Get("/group/:slug", func(c *fiber.Ctx) error {
		number, err := pageNumber(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid page number")
		}

		items, err := svc.List(c.Context(), ByGroup(c.Params("slug")))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "group not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		page, err := pagination.Paginate(items, opts.PageSize, number)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(render(page))
	})

	r.Get("/profile/:username", func(c *fiber.Ctx) error {
		number, err := pageNumber(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid page number")
		}

		items, err := svc.List(c.Context(), ByAuthor(c.Params("username")))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "author not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		page, err := pagination.Paginate(items, opts.PageSize, number)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(render(page))
	})

	// Personal feed: everything from followed authors, never cached.
	r.Get("/follow", requireLogin, func(c *fiber.Ctx) error {
		number, err := pageNumber(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid page number")
		}

		items, err := svc.List(c.Context(), FeedOf(auth.UserID(c)))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		page, err := pagination.Paginate(items, opts.PageSize, number)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(render(page))
	})

	r.Get("/profile/:username/follow", requireLogin, func(c *fiber.Ctx) error {
		username := c.Params("username")
		author, err := svc.GetUserByUsername(c.Context(), username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "author not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		err = follows.Follow(c.Context(), auth.UserID(c), author.ID)
		if errors.Is(err, follow.ErrSelfFollow) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/profile/"+username, fiber.StatusFound)
	})

	r.Get("/profile/:username/unfollow", requireLogin, func(c *fiber.Ctx) error {
		username := c.Params("username")
		author, err := svc.GetUserByUsername(c.Context(), username)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "author not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := follows.Unfollow(c.Context(), auth.UserID(c), author.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/profile/"+username, fiber.StatusFound)
	})

	r.Get("/posts/:id", func(c *fiber.Ctx) error {
		id, err := postID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}

		post, err := svc.GetPost(c.Context(), id)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	})

	// Comment submission itself lives in a separate service; this endpoint
	// only checks identity and hands the caller back to the post detail.
	r.Get("/posts/:id/comment", requireLogin, func(c *fiber.Ctx) error {
		id, err := postID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}

		if _, err := svc.GetPost(c.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect("/posts/"+c.Params("id"), fiber.StatusFound)
	})

	r.Post("/posts", requireUser, func(c *fiber.Ctx) error {
		var req struct {
			Text     string `json:"text"`
			Group    string `json:"group"`
			ImageURL string `json:"image_url"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Text == "" {
			return fiber.NewError(fiber.StatusBadRequest, "text required")
		}

		input := Post{
			Author:   User{ID: auth.UserID(c), Username: auth.Username(c)},
			Text:     req.Text,
			ImageURL: req.ImageURL,
		}
		if req.Group != "" {
			group, err := svc.GetGroupBySlug(c.Context(), req.Group)
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown group")
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			input.Group = &group
		}

		post, err := svc.CreatePost(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/groups", requireUser, func(c *fiber.Ctx) error {
		var req Group
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || req.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title and slug required")
		}

		group, err := svc.CreateGroup(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(group)
	})

	r.Delete("/posts/:id", requireUser, func(c *fiber.Ctx) error {
		id, err := postID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}

		post, err := svc.GetPost(c.Context(), id)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if post.Author.ID != auth.UserID(c) {
			return fiber.NewError(fiber.StatusForbidden, "only the author can delete a post")
		}

		if err := svc.DeletePost(c.Context(), id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func pageNumber(c *fiber.Ctx) (int, error) {
	number, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || number < 1 {
		return 0, pagination.ErrInvalidPage
	}
	return number, nil
}

func postID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func render(page pagination.Page[Post]) listingResponse {
	items := page.Items
	if items == nil {
		items = []Post{}
	}
	return listingResponse{
		Posts: items,
		Page: pageMeta{
			Number:     page.Number,
			TotalCount: page.TotalCount,
			HasNext:    page.HasNext,
			HasPrev:    page.HasPrev,
		},
	}
}
