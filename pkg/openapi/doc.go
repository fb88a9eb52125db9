// Package openapi derives validated forms from OpenAPI request bodies. An
// operation's JSON request schema becomes a rule set for map[string]any
// models and a default view tree with one control per property.
//
// Rule hints beyond `required`, `minimum` and `maximum` live under the
// x-formcheck schema extension:
//
//	accept:
//	  type: boolean
//	  x-formcheck: { requiredTrue: true, order: 9 }
//	notes:
//	  type: string
//	  x-formcheck: { requiredIf: hasNotes, widget: editor }
package openapi
