// Package weavetest provides mocks and helpers used by the tests of every
// bountyd extension.
package weavetest
