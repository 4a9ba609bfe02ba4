package token

var display = map[Type]string{
	IDENTIFIER: "identifier",
	STRING:     "string",
	NUMBER:     "number",

	AND: "'and'", CLASS: "'class'", ELSE: "'else'", FALSE: "'false'",
	FOR: "'for'", FUN: "'fun'", IF: "'if'", NIL: "'nil'", OR: "'or'",
	PRINT: "'print'", RETURN: "'return'", SUPER: "'super'", THIS: "'this'",
	TRUE: "'true'", VAR: "'var'", WHILE: "'while'",

	LPAREN: "'('", RPAREN: "')'", LBRACE: "'{'", RBRACE: "'}'",
	COMMA: "','", DOT: "'.'", MINUS: "'-'", PLUS: "'+'",
	SEMICOLON: "';'", SLASH: "'/'", STAR: "'*'",
	BANG: "'!'", BANG_EQUAL: "'!='", EQUAL: "'='", EQUAL_EQUAL: "'=='",
	GREATER: "'>'", GREATER_EQUAL: "'>='", LESS: "'<'", LESS_EQUAL: "'<='",

	EOF: "end of input",
}

// Display renders a token kind for use in a diagnostic message.
func Display(t Type) string {
	if s, ok := display[t]; ok {
		return s
	}
	return t.String()
}
