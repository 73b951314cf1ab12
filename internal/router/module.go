package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on the two
// route surfaces: pages for the gated dashboard routes at the root, api for
// the JSON routes under /api.
type Module interface {
	Register(pages, api *gin.RouterGroup)
}
