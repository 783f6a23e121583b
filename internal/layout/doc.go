// Package layout places widget content boxes inside the panel's padded
// interior. The only policy implemented is a vertical stack.
package layout
