// Package inventory builds the subfolder inventory of a content tree: a sorted
// mapping from each directory below the content root to the names of its
// immediate children. Templates use it to render navigation and index listings.
//
// Two key modes exist. ModeRoot (the default) makes every key a slash-separated
// path relative to a fixed reference root. ModePerLevel reproduces sites that
// were generated with keys relative to the directory being visited, so each key
// is a bare directory name and a deeper directory with the same name replaces a
// shallower one.
package inventory
