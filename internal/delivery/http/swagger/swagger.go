package http_swagger

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinoswipe/internal/delivery/http/common"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const docRoute = "/doc.json"

// Controller serves the swagger UI. doc.json is read from docPath, which
// `go generate ./cmd/app` writes with swag.
type Controller struct {
	docPath string
}

func New(docPath string) *Controller {
	return &Controller{docPath: docPath}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	ui := ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("doc.json"))
	router.GET("/swagger/*any", func(ctx *gin.Context) {
		if ctx.Param("any") == docRoute {
			c.serveDoc(ctx)
			return
		}
		ui(ctx)
	})
}

func (c *Controller) serveDoc(ctx *gin.Context) {
	doc, err := os.ReadFile(c.docPath)
	if err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "api docs are not generated",
		})
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
