// Package services wires the citation loader and analyzer into a
// single stateful service consumed by the HTTP transport and the CLI
// tools. The service owns the loaded dataset; everything downstream
// reads it through aggregate accessors.
package services
