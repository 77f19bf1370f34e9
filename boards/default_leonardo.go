//go:build !board_micro

package boards

// Default is the board firmware builds target unless a board tag says
// otherwise.
var Default = Leonardo
