// Package extract builds conversion rule trees from mapping directives.
//
// Every non-empty directive of an operation becomes one rule under a
// synthetic "$" root. Dotted source paths get one terminal child per segment
// after the first. When no directive produces a rule, the accessor names
// shared by the source and target shapes are mapped one to one.
package extract
