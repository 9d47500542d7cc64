// Package schema reads and writes type descriptor files.
//
// A schema file lists the classes and enums of a model without any source
// code behind it, so the extractor can run on models described by hand or
// exported from another tool. YAML, JSON and TOML are supported; the format
// is chosen by file extension.
//
// Example YAML:
//
//	version: "1"
//	types:
//	  - name: Order
//	    properties:
//	      - name: CustomerId
//	        type: int
//	      - name: Items
//	        type: List
//	        collection: true
//	        element: OrderItem
//	  - name: Status
//	    kind: enum
//	    members: [Pending, Paid]
//
// A type without a kind is a class.
package schema
