// Package layout loads form layouts from JSON or YAML documents and builds
// them into view trees. A document maps layout ids to a root node; nodes name
// a widget, an optional binding path, role flags and children:
//
//	layouts:
//	  basic:
//	    title: Basic
//	    root:
//	      widget: stack
//	      children:
//	        - { widget: entry, bind: Value1 }
//	        - { widget: label, roles: [placeholder], visible: false }
//	        - { widget: button, text: Commit, roles: [commitTrigger] }
package layout
