// Package vim defines the vocabulary of modal command composition.
//
// The package holds closed enumerations for the three command categories
// and the token type produced by keystroke classification:
//   - Operator: actions applied to a range (c, d, y, >, <, gu, gU, g~)
//   - Motion: rules computing a cursor target (w, b, e, 0, $, gg, f{char}, ...)
//   - TextObject: structured selections used after an operator (iw, a", i( ...)
//   - Token: a classified keystroke
//
// # Grammar
//
// Normal mode commands follow this grammar:
//
//	[count]["x][operator][count][motion|text-object]
//	[count]["x][operator][operator]  (linewise: dd, yy, cc, g~~)
//	[count][motion]
//	[count]["x][command]             (x, p, J, r{char}, ...)
//
// The effective count of a command is the product of the two counts, an
// absent count counting as 1. A leading 0 is never a count; it is the line
// start motion.
//
// Every enumeration is closed: adding a variant means adding it to the
// lookup tables here and to the switch statements of the resolver and the
// executor, which is what keeps dispatch exhaustive.
package vim
