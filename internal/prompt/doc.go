// Package prompt asks a text-completion collaborator for conversion rules.
//
// Build renders a deterministic prompt grounded on the rules extracted from
// the mapping directives. ExtractJSON takes the substring between the first
// '{' and the last '}' of the answer; nothing else about the answer is
// interpreted. A failed or unusable answer is reported as a
// *CollaboratorError and never replaced by a guessed tree.
package prompt
