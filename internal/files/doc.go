// Package files locates citation export spreadsheets on disk. It keeps
// the filesystem scanning concerns out of the loader, which only ever
// sees an ordered list of paths.
package files
