// Package mapping provides the YAML schema for mapping directive files,
// their loader, and structural validation.
//
// A directive file lists mapping operations. Each operation names the
// explicit field directives that the metadata extractor turns into a rule
// tree.
//
// # Schema Overview
//
//	version: "1"
//	source_content_type: application/json
//	target_content_type: application/json
//	operations:
//	  - name: employeeToEmployeeDTO
//	    returns: collection          # scalar | collection | auto
//	    source_type: hr.Employee     # optional, resolved against loaded Go packages
//	    target_type: payroll.EmployeeDTO
//	    # Simplified 1:1 directives, applied first, in file order
//	    121:
//	      employeeId: employeeId
//	    directives:
//	      - source: address.country
//	        target: emplocation
//	      - target: fullName
//	        expression: firstName + " " + lastName
//	    # Accessor names for the name-intersection fallback
//	    source_fields: [employeeId, name]
//	    target_fields: [employeeId, name]
//
// # Directive Semantics
//
// A directive with a non-empty expression maps custom logic; otherwise the
// source path is copied to the target path. A directive with no source,
// target or expression carries no information and is skipped by the
// extractor. When an operation produces no rules at all, the extractor
// intersects source_fields and target_fields instead.
//
// # Path Syntax
//
// Locators are dotted paths:
//   - Simple fields: "name"
//   - Nested fields: "address.country"
//   - Collection marker: "workExperience[]"
package mapping
