package scenefile

import "testing"

func TestLexerBasicCommand(t *testing.T) {
	l := NewLexer("sphere 1.5 0 -2 3\n")
	want := []Token{
		{Type: TokenIdent, Literal: "sphere", Line: 1},
		{Type: TokenNumber, Literal: "1.5", Line: 1},
		{Type: TokenNumber, Literal: "0", Line: 1},
		{Type: TokenNumber, Literal: "-2", Line: 1},
		{Type: TokenNumber, Literal: "3", Line: 1},
		{Type: TokenNewline, Literal: "\n", Line: 1},
		{Type: TokenEOF, Line: 2},
	}
	for i, w := range want {
		got := l.NextToken()
		if got != w {
			t.Fatalf("token %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestLexerSkipsCommentsAndBlankLines(t *testing.T) {
	l := NewLexer("# a comment\n\nlight 0 0 0 1 1 1 # trailing\n")
	var got []Token
	for {
		tok := l.NextToken()
		got = append(got, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	wantTypes := []TokenType{
		TokenNewline, TokenNewline,
		TokenIdent, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNewline,
		TokenEOF,
	}
	if len(got) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %+v", len(got), len(wantTypes), got)
	}
	for i, tok := range got {
		if tok.Type != wantTypes[i] {
			t.Errorf("token %d: type = %v, want %v (%+v)", i, tok.Type, wantTypes[i], tok)
		}
	}
}

func TestLexerIllegalBareSign(t *testing.T) {
	l := NewLexer("- \n")
	tok := l.NextToken()
	if tok.Type != TokenIllegal {
		t.Errorf("bare '-' should be illegal, got %+v", tok)
	}
}

func TestLexerExponentNumber(t *testing.T) {
	l := NewLexer("1.5e-3")
	tok := l.NextToken()
	if tok.Type != TokenNumber || tok.Literal != "1.5e-3" {
		t.Errorf("got %+v, want Number \"1.5e-3\"", tok)
	}
}

func TestLexerTracksLineNumbers(t *testing.T) {
	l := NewLexer("fov 60\nlight 0 0 0 1 1 1\n")
	_ = l.NextToken() // fov
	_ = l.NextToken() // 60
	nl := l.NextToken()
	if nl.Line != 1 {
		t.Errorf("newline Line = %d, want 1", nl.Line)
	}
	lightTok := l.NextToken()
	if lightTok.Line != 2 {
		t.Errorf("light Line = %d, want 2", lightTok.Line)
	}
}
