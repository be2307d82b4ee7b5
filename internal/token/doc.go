// Package token defines the lexical tokens of bracket text, the value part
// of a template argument such as `cute::tuple<int, cute::_0>`.
// Invariants:
//   - Only '<', '>' and ',' are separators; every other byte belongs to a
//     Text token.
//   - Token.Text has plain spaces removed, so it is not always a slice of
//     the source. Token.Span still covers the raw run, first to last
//     non-space byte.
//   - Text tokens are never empty.
package token
