package router

import "github.com/gin-gonic/gin"

type Registry struct {
	Engine         *gin.Engine
	Pages          *gin.RouterGroup
	API            *gin.RouterGroup
	apiMiddlewares []gin.HandlerFunc
	modules        []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		Pages:  engine.Group("/"),
		API:    engine.Group("/api"),
	}
}

// UseAPI attaches middleware to the /api group only; page routes are covered
// by the global gate instead.
func (r *Registry) UseAPI(mw ...gin.HandlerFunc) {
	r.apiMiddlewares = append(r.apiMiddlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.apiMiddlewares) > 0 {
		r.API.Use(r.apiMiddlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Pages, r.API)
	}
}
