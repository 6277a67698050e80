package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/book-hunter/pkg/middleware"
	"github.com/DjordjeVuckovic/book-hunter/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const APIPrefix = "/api/v1"

// HomepageResponse is the body of the homepage feed.
type HomepageResponse struct {
	IsHomepageFeed bool                `json:"is_homepage_feed"`
	Feed           []catalog.FeedGroup `json:"feed"`
}

type BookRouter struct {
	e       *echo.Echo
	catalog *catalog.Catalog
}

func NewBookRouter(e *echo.Echo, c *catalog.Catalog) *BookRouter {
	return &BookRouter{
		e:       e,
		catalog: c,
	}
}

func (r *BookRouter) Bind() {
	g := r.e.Group(APIPrefix, middleware.NoCache())

	g.GET("/books", r.indexHandler)
	g.GET("/books/search", r.searchHandler)
	g.GET("/books/tags/:tag", r.tagHandler)
	g.GET("/books/:id", r.bookHandler)
	g.GET("/books/:id/similar", r.similarHandler)
	g.GET("/homepage_feed", r.homepageHandler)
	g.GET("/genres", r.genresHandler)
	g.GET("/all_tags", r.tagsHandler)
}

// indexHandler serves the homepage feed when no search parameter is present and a search
// otherwise.
//
//	@Summary		Browse books
//	@Description	Returns the homepage feed when query, genre, rating and sort are all blank, a search page otherwise
//	@Tags			books
//	@Produce		json
//	@Param			query	query	string	false	"Free text"
//	@Param			genre	query	string	false	"Genre"
//	@Param			rating	query	number	false	"Minimum average rating"
//	@Param			sort	query	string	false	"popularity | rating | title"
//	@Param			page	query	int		false	"Page, starting at 1"
//	@Success		200		{object}	HomepageResponse
//	@Router			/api/v1/books [get]
func (r *BookRouter) indexHandler(c echo.Context) error {
	var p query.Params
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}

	if p.IsBlank() {
		return r.homepageHandler(c)
	}
	return r.search(c, p)
}

// searchHandler godoc
//
//	@Summary		Search books
//	@Description	Faceted search. Without query, genre and rating the result is empty. Page metadata is returned in X-Total-Count, X-Per-Page and X-Page
//	@Tags			books
//	@Produce		json
//	@Param			query	query	string	false	"Case-insensitive substring of title, author, ISBN or description"
//	@Param			genre	query	string	false	"Genre"
//	@Param			rating	query	number	false	"Minimum average rating"
//	@Param			sort	query	string	false	"popularity | rating | title"
//	@Param			page	query	int		false	"Page, starting at 1"
//	@Success		200		{array}		domain.Book
//	@Failure		503		{object}	map[string]string
//	@Router			/api/v1/books/search [get]
func (r *BookRouter) searchHandler(c echo.Context) error {
	var p query.Params
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}
	return r.search(c, p)
}

func (r *BookRouter) search(c echo.Context, p query.Params) error {
	page, err := r.catalog.Search(c.Request().Context(), query.Parse(p))
	if err != nil {
		return err
	}
	return writePage(c, page)
}

// tagHandler godoc
//
//	@Summary	Books by tag
//	@Tags		books
//	@Produce	json
//	@Param		tag		path	string	true	"Tag"
//	@Param		sort	query	string	false	"popularity | rating | title"
//	@Param		page	query	int		false	"Page, starting at 1"
//	@Success	200		{array}	domain.Book
//	@Router		/api/v1/books/tags/{tag} [get]
func (r *BookRouter) tagHandler(c echo.Context) error {
	page, err := r.catalog.SearchByTag(
		c.Request().Context(),
		c.Param("tag"),
		query.ParseSortKey(c.QueryParam("sort")),
		query.ParsePage(c.QueryParam("page")),
	)
	if err != nil {
		return err
	}
	return writePage(c, page)
}

// bookHandler godoc
//
//	@Summary	Book detail
//	@Tags		books
//	@Produce	json
//	@Param		id	path		string	true	"Book ID"
//	@Success	200	{object}	domain.Book
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/books/{id} [get]
func (r *BookRouter) bookHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	b, err := r.catalog.Book(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// similarHandler godoc
//
//	@Summary		Similar books
//	@Description	Up to 10 books sharing a genre with the reference, best score first
//	@Tags			books
//	@Produce		json
//	@Param			id	path	string	true	"Reference book ID"
//	@Success		200	{array}		domain.ScoredBook
//	@Failure		404	{object}	map[string]string
//	@Router			/api/v1/books/{id}/similar [get]
func (r *BookRouter) similarHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	similar, err := r.catalog.Similar(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, similar)
}

// homepageHandler godoc
//
//	@Summary		Homepage feed
//	@Description	Top genres with their most popular books, or the most recent books when no genre exists
//	@Tags			books
//	@Produce		json
//	@Success		200	{object}	HomepageResponse
//	@Router			/api/v1/homepage_feed [get]
func (r *BookRouter) homepageHandler(c echo.Context) error {
	feed, err := r.catalog.HomepageFeed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, HomepageResponse{
		IsHomepageFeed: true,
		Feed:           feed.Groups,
	})
}

// genresHandler godoc
//
//	@Summary	All genres
//	@Tags		facets
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/v1/genres [get]
func (r *BookRouter) genresHandler(c echo.Context) error {
	values, err := r.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// tagsHandler godoc
//
//	@Summary	All tags
//	@Tags		facets
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/v1/all_tags [get]
func (r *BookRouter) tagsHandler(c echo.Context) error {
	values, err := r.catalog.Tags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

// parseID treats a malformed identifier as a missing book.
func parseID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NewNotFound("book", raw)
	}
	return id, nil
}

func writePage(c echo.Context, page *pagination.OffsetResult[domain.Book]) error {
	pagination.WriteHeaders(c.Response().Header(), page)
	return c.JSON(http.StatusOK, page.Items)
}
