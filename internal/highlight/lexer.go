package highlight

import (
	"github.com/alecthomas/chroma/v2"
)

var keywords = []string{
	"contains", "like", "matches", "rlike", "irlike", "regex", "in", "if", "then", "else", "end",
}

var constants = []string{"true", "false", "null"}

var functions = []string{
	"length", "lcase", "ucase", "ccnorm", "ccnorm_contains_any", "ccnorm_contains_all",
	"rmdoubles", "rmspecials", "rmwhitespace", "norm", "count", "rcount", "specialratio",
	"get_matches", "equals_to_any", "contains_any", "contains_all", "ip_in_range",
	"ip_in_ranges", "sanitize", "string", "int", "float", "bool", "set_var", "set",
}

func filterLexer() (chroma.Lexer, error) {
	return chroma.NewLexer(
		&chroma.Config{
			Name:            "AbuseFilter",
			Aliases:         []string{"abusefilter", "filter"},
			CaseInsensitive: true,
			EnsureNL:        true,
		},
		filterRules,
	)
}

func filterRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `/\*`, Type: chroma.CommentMultiline, Mutator: chroma.Push("comment")},
			{Pattern: `"(\\\\|\\"|[^"])*"`, Type: chroma.LiteralStringDouble},
			{Pattern: `'(\\\\|\\'|[^'])*'`, Type: chroma.LiteralStringSingle},
			{Pattern: `0x[0-9a-fA-F]+|\d+(\.\d+)?`, Type: chroma.LiteralNumber},
			{Pattern: chroma.Words(`\b`, `\b`, constants...), Type: chroma.KeywordConstant},
			{Pattern: chroma.Words(`\b`, `\b`, keywords...), Type: chroma.OperatorWord},
			{Pattern: chroma.Words(`\b`, `(?=\s*\()`, functions...), Type: chroma.NameBuiltin},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.NameVariable},
			{Pattern: `===|!==|==|!=|<=|>=|:=|\*\*|[&|^!<>=+\-*/%?:]`, Type: chroma.Operator},
			{Pattern: `[()\[\],;]`, Type: chroma.Punctuation},
			{Pattern: `.`, Type: chroma.Error},
		},
		"comment": {
			{Pattern: `\*/`, Type: chroma.CommentMultiline, Mutator: chroma.Pop(1)},
			{Pattern: `[^*]+`, Type: chroma.CommentMultiline},
			{Pattern: `\*`, Type: chroma.CommentMultiline},
		},
	}
}
