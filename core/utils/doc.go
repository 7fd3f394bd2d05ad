// Package utils holds loose coercions over sheet cell content: cells
// are free text, so JSON scalars and flag values need a tolerant reading
// before domain code can act on them.
package utils
