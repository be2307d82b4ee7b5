// Package message splits a C++ template instantiation diagnostic of the form
//
//	void f(const T &, U) [with T=cute::tuple<int, cute::_0>, U=int]
//
// into the function signature and an ordered list of template arguments,
// each value parsed into a bracket.Node.
//
// Names and values are recovered textually: the clause is cut at every '=',
// and every field between the first and the last is split at its last comma
// into the value of the previous name and the next name. A value whose own
// top-level text contains a comma outside brackets is therefore attributed
// partly to the following name. This mirrors how the compilers print the
// clause and is kept on purpose.
package message
