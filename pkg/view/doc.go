// Package view models the visual form tree the validation engine works on.
// A tree is made of container nodes (ordered, mutable children laid out
// vertically or horizontally) and leaf nodes (controls, labels, buttons).
// Leaves carry their data-binding declaration and role flags as plain fields
// so the locator and the feedback registry can inspect them without a side
// table keyed by node identity.
package view
