// Package feedback keeps inline validation messages in a view tree in sync
// with the latest set of rule failures.
package feedback
