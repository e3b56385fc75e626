// Package merge implements placeholder substitution for mail-merge templates.
//
// Templates carry tokens of the form {{ name }} or {{ name|default:'literal' }}.
// Tokenize splits a template into literal and placeholder segments, and
// Render resolves each placeholder against recipient fields with layered
// fallbacks:
//
//  1. The recipient field value, when non-blank after trimming.
//  2. The inline default, when non-empty.
//  3. The template-level default for greeting_first_name and message,
//     the empty string for every other name.
//
// Both functions are pure and never fail; text that does not match the
// token syntax passes through untouched, and substitution runs exactly
// once, so inserted values are never re-scanned for tokens.
package merge
