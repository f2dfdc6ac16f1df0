package newick

import "strings"

// IsValid does a quick structural check of a Newick text without building
// the tree: a single final ";", balanced parentheses, and well-formed NHX
// brackets. A text can pass IsValid and still fail Read (bad lengths, for
// example), but not the other way around.
func IsValid(text string) bool {
	text = strings.TrimSpace(text)
	return strings.Index(text, ";") == len(text)-1 &&
		hasCorrectParentheses(text) &&
		hasCorrectBrackets(text)
}

// hasCorrectParentheses checks that () nest properly and that "(" only
// follows "(" or ",".
func hasCorrectParentheses(text string) bool {
	open := 0
	var previous byte
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '(':
			if i > 0 && previous != '(' && previous != ',' {
				return false
			}
			open++
		case ')':
			open--
			if open < 0 {
				return false
			}
		}
		previous = text[i]
	}
	return open == 0
}

// hasCorrectBrackets checks that [] start with "[&&NHX:", do not nest, do
// not contain "," or ")", and are followed by one of ",);".
func hasCorrectBrackets(text string) bool {
	open := false
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '[':
			if open || !strings.HasPrefix(text[i:], nhxOpening) {
				return false
			}
			open = true
		case c == ']':
			if !open || i+1 >= len(text) || !strings.ContainsRune(",);", rune(text[i+1])) {
				return false
			}
			open = false
		case open && (c == ',' || c == ')'):
			return false
		}
	}
	return !open
}
