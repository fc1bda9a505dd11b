// Package perch captures the readable content and the discussion sections of
// arbitrary web pages.
//
// The heuristic engine in this package works on an abstract document tree
// (Node) and has no knowledge of parsing, networking or storage. Those
// collaborators are declared here as interfaces and implemented in
// subdirectories named after their primary dependency (goquery/, sqlite/,
// rod/, gemini/), following Ben Johnson's Standard Package Layout.
package perch
