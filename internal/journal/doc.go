// Package journal records the requests served during a single run.
//
// Entries live in a private in-memory SQLite database opened by [Open]; nothing
// survives the process. At shutdown the launcher reads a [Summary] back out to
// report how many requests were served, how many failed and which paths were
// requested most.
package journal
