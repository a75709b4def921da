// Package resources declares the upstream resources forwarded by the console.
package resources

import (
	"net/http"

	"github.com/irevlogix/irevlogix-console/internal/gateway"
)

// crud declares list/get/create/update/delete for a collection.
func crud(name, pattern, upstream string) []gateway.Route {
	item := pattern + "/{id}"
	upstreamItem := upstream + "/{id}"
	return []gateway.Route{
		{Name: name + ".list", Method: http.MethodGet, Pattern: pattern, Upstream: upstream},
		{Name: name + ".get", Method: http.MethodGet, Pattern: item, Upstream: upstreamItem},
		{Name: name + ".create", Method: http.MethodPost, Pattern: pattern, Upstream: upstream},
		{Name: name + ".update", Method: http.MethodPut, Pattern: item, Upstream: upstreamItem},
		{Name: name + ".delete", Method: http.MethodDelete, Pattern: item, Upstream: upstreamItem},
	}
}

// Routes returns every forwarded resource, relative to the /api mount point.
func Routes() []gateway.Route {
	var routes []gateway.Route

	// Public, unauthenticated.
	routes = append(routes,
		gateway.Route{Name: "auth.login", Method: http.MethodPost, Pattern: "/auth/login", Upstream: "/api/auth/login", Public: true, Policy: gateway.PassThrough()},
		gateway.Route{Name: "auth.forgot_password", Method: http.MethodPost, Pattern: "/auth/forgot-password", Upstream: "/api/auth/forgot-password", Public: true, Policy: gateway.PassThrough()},
		gateway.Route{Name: "contact.submit", Method: http.MethodPost, Pattern: "/public/contact", Upstream: "/api/public/contact", Public: true, Policy: gateway.PassThrough()},
	)

	routes = append(routes,
		gateway.Route{Name: "auth.me", Method: http.MethodGet, Pattern: "/auth/me", Upstream: "/api/auth/me"},
		gateway.Route{Name: "auth.change_password", Method: http.MethodPost, Pattern: "/auth/change-password", Upstream: "/api/auth/change-password", Acknowledge: true},
	)

	// Shipments and receiving.
	routes = append(routes, crud("shipments", "/shipments", "/api/shipments")...)
	routes = append(routes,
		gateway.Route{Name: "shipments.items.list", Method: http.MethodGet, Pattern: "/shipments/{id}/items", Upstream: "/api/shipments/{id}/items"},
		gateway.Route{Name: "shipments.items.create", Method: http.MethodPost, Pattern: "/shipments/{id}/items", Upstream: "/api/shipments/{id}/items"},
		gateway.Route{Name: "shipments.items.delete", Method: http.MethodDelete, Pattern: "/shipments/{id}/items/{itemId}", Upstream: "/api/shipments/{id}/items/{itemId}"},
		gateway.Route{Name: "shipments.documents.list", Method: http.MethodGet, Pattern: "/shipments/{id}/documents", Upstream: "/api/shipments/{id}/documents"},
		gateway.Route{Name: "shipments.documents.upload", Method: http.MethodPost, Pattern: "/shipments/{id}/documents", Upstream: "/api/shipments/{id}/documents"},
		gateway.Route{Name: "shipments.documents.download", Method: http.MethodGet, Pattern: "/shipments/{id}/documents/{documentId}", Upstream: "/api/shipments/{id}/documents/{documentId}", Policy: gateway.PassThrough()},
		gateway.Route{Name: "shipments.documents.delete", Method: http.MethodDelete, Pattern: "/shipments/{id}/documents/{documentId}", Upstream: "/api/shipments/{id}/documents/{documentId}"},
	)

	// Processing.
	routes = append(routes, crud("processing_lots", "/processing-lots", "/api/processinglots")...)
	routes = append(routes,
		gateway.Route{Name: "processing_lots.steps.create", Method: http.MethodPost, Pattern: "/processing-lots/{id}/steps", Upstream: "/api/processinglots/{id}/steps"},
		gateway.Route{Name: "processing_lots.steps.delete", Method: http.MethodDelete, Pattern: "/processing-lots/{id}/steps/{stepId}", Upstream: "/api/processinglots/{id}/steps/{stepId}"},
		gateway.Route{Name: "processing.contamination_insights", Method: http.MethodGet, Pattern: "/processing/contamination-insights", Upstream: "/api/analytics/contamination-insights", Policy: gateway.NormalizeShape(ContaminationInsightShape)},
	)
	routes = append(routes, crud("material_types", "/material-types", "/api/materialtypes")...)

	// Asset recovery.
	routes = append(routes, crud("assets", "/assets", "/api/assets")...)
	routes = append(routes,
		gateway.Route{Name: "assets.import", Method: http.MethodPost, Pattern: "/assets/import", Upstream: "/api/assets/import"},
		gateway.Route{Name: "assets.data_destruction.create", Method: http.MethodPost, Pattern: "/assets/{id}/data-destruction", Upstream: "/api/assets/{id}/datadestruction"},
		gateway.Route{Name: "assets.certificate", Method: http.MethodGet, Pattern: "/assets/{id}/certificate", Upstream: "/api/assets/{id}/certificate", Policy: gateway.PassThrough()},
	)

	// Downstream materials.
	routes = append(routes, crud("vendors", "/vendors", "/api/vendors")...)
	routes = append(routes,
		gateway.Route{Name: "vendors.scorecards", Method: http.MethodGet, Pattern: "/vendors/scorecards", Upstream: "/api/vendors/scorecards", Policy: gateway.NormalizeShape(VendorScorecardShape)},
	)
	routes = append(routes, crud("clients", "/clients", "/api/clients")...)

	// Administration.
	routes = append(routes, crud("users", "/users", "/api/users")...)
	routes = append(routes, crud("roles", "/roles", "/api/roles")...)
	routes = append(routes,
		gateway.Route{Name: "permissions.list", Method: http.MethodGet, Pattern: "/permissions", Upstream: "/api/permissions"},
		gateway.Route{Name: "roles.permissions.list", Method: http.MethodGet, Pattern: "/roles/{id}/permissions", Upstream: "/api/roles/{id}/permissions"},
		gateway.Route{Name: "roles.permissions.assign", Method: http.MethodPost, Pattern: "/roles/{id}/permissions/{permissionId}", Upstream: "/api/roles/{id}/permissions/{permissionId}", Acknowledge: true},
		gateway.Route{Name: "roles.permissions.revoke", Method: http.MethodDelete, Pattern: "/roles/{id}/permissions/{permissionId}", Upstream: "/api/roles/{id}/permissions/{permissionId}", Acknowledge: true},
		gateway.Route{Name: "roles.users.assign", Method: http.MethodPost, Pattern: "/roles/{id}/users/{userId}", Upstream: "/api/roles/{id}/users/{userId}", Acknowledge: true},
		gateway.Route{Name: "roles.users.remove", Method: http.MethodDelete, Pattern: "/roles/{id}/users/{userId}", Upstream: "/api/roles/{id}/users/{userId}", Acknowledge: true},
	)

	// Reports.
	routes = append(routes,
		gateway.Route{Name: "reports.export", Method: http.MethodGet, Pattern: "/reports/{report}/export", Upstream: "/api/reports/{report}/export", Policy: gateway.PassThrough()},
	)
	return routes
}
