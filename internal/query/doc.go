// Package query turns raw listing query parameters into filter descriptors
// and page windows.
//
// Builders never fail: a malformed optional parameter is dropped and a
// malformed page or limit falls back to its default. The same input always
// yields the same descriptor, and repositories apply a descriptor with bound
// parameters only.
package query
