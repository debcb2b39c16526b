// Package sanitizer cleans user input before validation and user
// content before rendering.
//
// Form structs declare rules in a `sanitize` tag, applied by
// SanitizeStruct; SanitizeHTML is the bluemonday policy used for
// rendered post bodies.
package sanitizer
