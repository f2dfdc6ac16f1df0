// Package api serves stored trees and their drawings over HTTP.
//
// # Routes
//
//	GET    /health                 liveness probe
//	GET    /drawers                available drawers and their capabilities
//	GET    /drawers/{name}         one drawer
//	GET    /trees                  list stored trees
//	POST   /trees                  store a tree ({"name", "description", "newick"})
//	GET    /trees/{id}             one stored tree
//	PUT    /trees/{id}             replace a stored tree
//	DELETE /trees/{id}             delete a stored tree
//	GET    /trees/{id}/draw        draw primitives (or another format)
//	GET    /trees/{id}/size        width and height of the whole drawing
//	GET    /trees/{id}/newick      the tree as Newick text
//	GET    /trees/{id}/stream      websocket: draw the views the client asks for
//	GET    /id/trees/{name}        the id of the tree with the given name
//
// The draw endpoint takes the viewport as x, y, w and h (all of them or
// none), the zoom as zx and zy (default 1), and optionally drawer, limit
// and format.
//
// Errors are JSON objects {"error": message, "code": code}; invalid input
// answers 400, unknown trees 404 and duplicate names 409.
package api
