// Package backend hosts the group implementations behind the public curve
// package. Each supported curve is served by an existing Go library; this
// package only adapts them to one small Group/Element contract so the rest of
// the module never touches library-specific types.
package backend
