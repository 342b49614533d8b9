// Package web provides the HTTP server and web interface for go-islands
package web

/*

	### **Core Files:**
	1. **`webserver_core_routes.go`** - Server setup, middleware, route configuration
	2. **`web_utils.go`** - Template loading, base template data, error pages
	3. **`embedded_static.go`** - /dist serving from disk or the embedded bundle

	### **Page Handler Files:**
	4. **`web_homePage.go`** - Home/root page handler
	5. **`web_components.go`** - Component endpoints (slow stream, hello fragment)

*/
