// Package capability defines the optional script-facing packages that can be
// mounted into the engine under dedicated namespaces (rand, fs, url, ml, sci),
// and the registry used to resolve namespace identifiers to packages.
package capability
