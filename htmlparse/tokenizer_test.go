package htmlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectTokens(src string) []Token {
	z := NewTokenizer(src)
	var toks []Token
	for {
		tok := z.Next()
		toks = append(toks, tok)
		if tok.Type == EOFToken {
			return toks
		}
	}
}

func TestTokenizerSimpleTag(t *testing.T) {
	toks := collectTokens("<div>hi</div>")
	if !assert.Len(t, toks, 4) {
		return
	}
	assert.Equal(t, StartTagToken, toks[0].Type)
	assert.Equal(t, "div", toks[0].Name)
	assert.Equal(t, CharacterToken, toks[1].Type)
	assert.Equal(t, "hi", toks[1].Data)
	assert.Equal(t, EndTagToken, toks[2].Type)
	assert.Equal(t, "div", toks[2].Name)
	assert.Equal(t, EOFToken, toks[3].Type)
}

func TestTokenizerAttributes(t *testing.T) {
	toks := collectTokens(`<a href="http://example.com" class='x'>`)
	if !assert.Len(t, toks, 2) {
		return
	}
	assert.Equal(t, StartTagToken, toks[0].Type)
	href, ok := toks[0].Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com", href)
	class, ok := toks[0].Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "x", class)
}

func TestTokenizerSelfClosing(t *testing.T) {
	toks := collectTokens(`<br/>`)
	if !assert.Len(t, toks, 2) {
		return
	}
	assert.True(t, toks[0].SelfClosing)
}

func TestTokenizerComment(t *testing.T) {
	toks := collectTokens(`<!-- hello -->`)
	if !assert.Len(t, toks, 2) {
		return
	}
	assert.Equal(t, CommentToken, toks[0].Type)
	assert.Equal(t, " hello ", toks[0].Data)
}

func TestTokenizerDoctype(t *testing.T) {
	toks := collectTokens(`<!DOCTYPE html>`)
	if !assert.Len(t, toks, 2) {
		return
	}
	assert.Equal(t, DoctypeToken, toks[0].Type)
	assert.Equal(t, "html", toks[0].Name)
}

func TestTokenizerRawTextScriptIgnoresMarkup(t *testing.T) {
	toks := collectTokens(`<script>var x = "<div>";</script>`)
	if !assert.Len(t, toks, 4) {
		return
	}
	assert.Equal(t, StartTagToken, toks[0].Type)
	assert.Equal(t, CharacterToken, toks[1].Type)
	assert.Equal(t, `var x = "<div>";`, toks[1].Data)
	assert.Equal(t, EndTagToken, toks[2].Type)
	assert.Equal(t, "script", toks[2].Name)
}

func TestTokenizerCDataSection(t *testing.T) {
	toks := collectTokens(`<![CDATA[raw & stuff]]>`)
	if !assert.Len(t, toks, 2) {
		return
	}
	assert.Equal(t, CharacterToken, toks[0].Type)
	assert.Equal(t, "raw & stuff", toks[0].Data)
}
