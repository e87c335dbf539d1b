package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	appgraphql "github.com/invodesk/invoice_analytics_app/internal/graphql"
	"github.com/invodesk/invoice_analytics_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// registerGraphQLRoutes builds the schema once and serves it at /graphql.
func registerGraphQLRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	schema, err := appgraphql.NewSchema(services)
	if err != nil {
		// A broken schema is a programming error, not a runtime condition.
		panic("failed to build GraphQL schema: " + err.Error())
	}

	r.POST("/graphql", func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind GraphQL request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})

		if len(result.Errors) > 0 {
			logger.Warn("GraphQL query completed with errors", slog.Int("error_count", len(result.Errors)))
		}
		c.JSON(http.StatusOK, result)
	})
}
