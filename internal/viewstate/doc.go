// Package viewstate holds the presentation state of the profile tool as a
// plain value. Every transition is a method returning a new State; maps are
// copied on write so earlier states stay valid. Nothing here does I/O.
package viewstate
