// Package session owns the single live engine instance. The Manager
// reconfigures enabled capability packages by building and atomically swapping
// in a replacement instance, executes untrusted script text with ordered
// output capture, and derives the completion catalog offered to the editor.
package session
