package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bizledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware reports each successful API call as a PostHog event attributed to
// the tenant. The event is named after the route template, never the concrete path,
// so entry numbers and period ids do not leak into event names.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !posthogClient.IsInitialized() || len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		tenantID, ok := GetTenantIDFromContext(c)
		if !ok {
			return
		}
		event := routeEventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if userID, ok := GetUserIDFromContext(c); ok {
			props["user_id"] = userID
		}
		posthogClient.Enqueue(tenantID, event, props)
	}
}

// routeEventName turns "POST" + "/api/v1/ledger/entries/:entryNumber/post" into
// "post_ledger_entries_entrynumber_post". Unmatched routes yield "".
func routeEventName(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	parts := strings.FieldsFunc(route, func(r rune) bool { return r == '/' || r == ':' })
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(method + "_" + strings.Join(parts, "_"))
}
