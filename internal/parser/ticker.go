package parser

import "strings"

// ExtractTicker derives a trading code from a free-text product description:
// the substring before the first '-', trimmed. "SAPR4 - COMPANHIA ..."
// yields "SAPR4"; a description with no hyphen is returned trimmed as-is.
func ExtractTicker(produto string) string {
	if i := strings.IndexRune(produto, '-'); i >= 0 {
		return strings.TrimSpace(produto[:i])
	}
	return strings.TrimSpace(produto)
}
