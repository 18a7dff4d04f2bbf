// Package rules defines the conversion-rule tree shared by every rule
// builder and its canonical JSON form.
//
// A RuleNode describes how one source locator becomes one target locator.
// Composite rules carry Items describing the fields of a nested object, or
// of one element when IsArray is set; the element shape is described once,
// never per index. Terminal rules have nil Items and serialize them as an
// explicit null.
//
// The JSON key order is fixed:
//
//	{
//	  "propID": "RootObject",
//	  "sourceLocation": "$",
//	  "targetLocation": "$",
//	  "isArray": false,
//	  "items": [ ... ]
//	}
//
// A RuleSet wraps one or more root rules with content types:
//
//	{
//	  "sourceContentType": "application/json",
//	  "targetContentType": "application/json",
//	  "conversionRules": [ ... ]
//	}
package rules
