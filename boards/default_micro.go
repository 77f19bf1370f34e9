//go:build board_micro

package boards

var Default = Micro
