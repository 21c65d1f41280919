package library

import (
	"github.com/gin-gonic/gin"

	"github.com/mchmarny/shelfd/pkg/sidebar"
)

// DefaultSort is the sort parameter of sidebar links to book lists.
const DefaultSort = "stored"

// Paths of the routes that do not take parameters.
var routePaths = map[string]string{
	sidebar.RouteIndex:         "/",
	sidebar.RouteDownloadList:  "/downloadlist",
	sidebar.RouteCategoryList:  "/category",
	sidebar.RouteSeriesList:    "/series",
	sidebar.RouteAuthorList:    "/author",
	sidebar.RoutePublisherList: "/publisher",
	sidebar.RouteLanguages:     "/language",
	sidebar.RouteRatingsList:   "/ratings",
	sidebar.RouteFormatsList:   "/formats",
	sidebar.RouteBooksTable:    "/table",
}

// page describes a page reachable from the sidebar.
type page struct {
	id     string
	title  string
	member bool // requires a logged-in user
	admin  bool // requires an administrator
}

// bookLists are served by web.books_list under /<id>/<sort>.
var bookLists = []page{
	{id: "hot", title: "Hot Books"},
	{id: "download", title: "Downloaded Books", member: true},
	{id: "rated", title: "Top Rated Books"},
	{id: "read", title: "Read Books", member: true},
	{id: "unread", title: "Unread Books", member: true},
	{id: "discover", title: "Discover"},
	{id: "archived", title: "Archived Books", member: true},
}

// overviews are served by the parameterless routes.
var overviews = map[string]page{
	sidebar.RouteIndex:         {id: "root", title: "Books"},
	sidebar.RouteDownloadList:  {id: "download", title: "Downloaded Books", admin: true},
	sidebar.RouteCategoryList:  {id: "category", title: "Categories"},
	sidebar.RouteSeriesList:    {id: "series", title: "Series"},
	sidebar.RouteAuthorList:    {id: "author", title: "Authors"},
	sidebar.RoutePublisherList: {id: "publisher", title: "Publishers"},
	sidebar.RouteLanguages:     {id: "language", title: "Languages"},
	sidebar.RouteRatingsList:   {id: "rating", title: "Ratings"},
	sidebar.RouteFormatsList:   {id: "format", title: "File formats"},
	sidebar.RouteBooksTable:    {id: "list", title: "Books List", member: true},
}

// URLFor returns the path a sidebar entry links to.
func URLFor(e sidebar.Entry) string {
	if e.Route == sidebar.RouteBooksList {
		return "/" + e.Page + "/" + DefaultSort
	}
	if p, ok := routePaths[e.Route]; ok {
		return p
	}
	return "#"
}

// RegisterRoutes registers the library pages on the given gin.Engine.
func (l *Library) RegisterRoutes(router *gin.Engine) {
	for route, p := range overviews {
		router.GET(routePaths[route], l.handlePage(p))
	}
	for _, p := range bookLists {
		router.GET("/"+p.id+"/:sort_param", l.handlePage(p))
	}

	router.GET("/admin/viewconfig", l.handleViewConfig)
	router.GET("/me", l.handleProfile)
	router.GET("/api/sidebar", l.handleSidebar)
}
