// Package token interns the keyword and operator spellings of every supported
// grammar. Engines compare Kind values instead of strings once a word or
// operator has been matched.
package token
