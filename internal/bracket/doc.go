// Package bracket parses bracket text such as
//
//	cute::Layout<cute::tuple<cute::_16, cute::_1>, int>
//
// into a tree of Leaf and List nodes. Each matched '<' ... '>' pair becomes a
// List holding its comma separated contents in source order. Text between
// separators becomes a Leaf with plain spaces removed, so "unsigned int" is
// read as "unsignedint".
//
// The parser keeps its frame stack local to the call; Parse is safe for
// concurrent use.
package bracket
