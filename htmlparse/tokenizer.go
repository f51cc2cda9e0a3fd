package htmlparse

import "strings"

// tokState enumerates the tokenizer states this engine implements: data,
// tag-open, tag-name, the attribute-name/value family (quoted and
// unquoted), markup-declaration-open, comment, DOCTYPE, CDATA and
// raw-text. Character-reference decoding ("&amp;" and friends) is not
// implemented — entities pass through as literal text, a documented
// limitation of this minimal engine.
type tokState int

const (
	stateData tokState = iota
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueQuoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateBogusComment
	stateMarkupDeclarationOpen
	stateCommentStart
	stateComment
	stateCommentEndDash
	stateCommentEnd
	stateDoctype
	stateBeforeDoctypeName
	stateDoctypeName
	stateAfterDoctypeName
	stateCDataSection
	stateRawText
	stateRawTextLessThanSign
	stateRawTextEndTagOpen
	stateRawTextEndTagName
)

const eof rune = -1

// Tokenizer consumes an HTML source string and emits a lazy sequence of
// tokens via Next, advancing exactly one token per call.
type Tokenizer struct {
	input []rune
	pos   int
	state tokState

	rawTextTag string // end tag name that terminates the current raw-text run

	tag     *Token     // tag/comment/doctype token currently being assembled
	curAttr *Attribute // attribute currently being assembled
	quote   rune       // quote character for the current quoted attribute value

	done bool
}

// NewTokenizer creates a Tokenizer over src, starting in the data state.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{input: []rune(src), state: stateData}
}

func (z *Tokenizer) peek(offset int) rune {
	i := z.pos + offset
	if i < 0 || i >= len(z.input) {
		return eof
	}
	return z.input[i]
}

func (z *Tokenizer) c() rune { return z.peek(0) }

func (z *Tokenizer) advance() rune {
	r := z.c()
	if r != eof {
		z.pos++
	}
	return r
}

// Next returns the next token. Once an EOF token has been returned, Next
// keeps returning an EOF token, so callers should stop on seeing a token
// whose Type is EOFToken.
func (z *Tokenizer) Next() Token {
	if z.done {
		return Token{Type: EOFToken}
	}
	for {
		tok, produced := z.step()
		if produced {
			if tok.Type == EOFToken {
				z.done = true
			}
			return tok
		}
	}
}

// step runs one tokenizer iteration, returning a token when a complete
// one has been recognized.
func (z *Tokenizer) step() (Token, bool) {
	switch z.state {
	case stateData:
		return z.data()
	case stateTagOpen:
		return z.tagOpen()
	case stateEndTagOpen:
		return z.endTagOpen()
	case stateTagName:
		return z.tagName()
	case stateBeforeAttributeName:
		return z.beforeAttributeName()
	case stateAttributeName:
		return z.attributeName()
	case stateAfterAttributeName:
		return z.afterAttributeName()
	case stateBeforeAttributeValue:
		return z.beforeAttributeValue()
	case stateAttributeValueQuoted:
		return z.attributeValueQuoted()
	case stateAttributeValueUnquoted:
		return z.attributeValueUnquoted()
	case stateAfterAttributeValueQuoted:
		return z.afterAttributeValueQuoted()
	case stateSelfClosingStartTag:
		return z.selfClosingStartTag()
	case stateBogusComment:
		return z.bogusComment()
	case stateMarkupDeclarationOpen:
		return z.markupDeclarationOpen()
	case stateCommentStart, stateComment, stateCommentEndDash, stateCommentEnd:
		return z.comment()
	case stateDoctype, stateBeforeDoctypeName, stateDoctypeName, stateAfterDoctypeName:
		return z.doctype()
	case stateCDataSection:
		return z.cdataSection()
	case stateRawText, stateRawTextLessThanSign, stateRawTextEndTagOpen, stateRawTextEndTagName:
		return z.rawText()
	}
	return Token{}, false
}

func (z *Tokenizer) data() (Token, bool) {
	if z.c() == eof {
		return Token{Type: EOFToken}, true
	}
	if z.c() == '<' {
		z.advance()
		z.state = stateTagOpen
		return Token{}, false
	}
	var sb strings.Builder
	for z.c() != eof && z.c() != '<' {
		sb.WriteRune(z.advance())
	}
	return Token{Type: CharacterToken, Data: sb.String()}, true
}

func (z *Tokenizer) tagOpen() (Token, bool) {
	switch {
	case z.c() == '!':
		z.advance()
		z.state = stateMarkupDeclarationOpen
		return Token{}, false
	case z.c() == '/':
		z.advance()
		z.state = stateEndTagOpen
		return Token{}, false
	case isASCIIAlpha(z.c()):
		z.state = stateTagName
		z.tag = &Token{Type: StartTagToken}
		return Token{}, false
	case z.c() == '?':
		z.state = stateBogusComment
		return Token{}, false
	default:
		// not a valid tag start: emit '<' as a literal character and
		// reprocess the current character in the data state.
		z.state = stateData
		return Token{Type: CharacterToken, Data: "<"}, true
	}
}

func (z *Tokenizer) endTagOpen() (Token, bool) {
	if isASCIIAlpha(z.c()) {
		z.state = stateTagName
		z.tag = &Token{Type: EndTagToken}
		return Token{}, false
	}
	if z.c() == '>' {
		z.advance()
		z.state = stateData
		return Token{}, false
	}
	z.state = stateBogusComment
	return Token{}, false
}

func (z *Tokenizer) tagName() (Token, bool) {
	var sb strings.Builder
	for isTagNameChar(z.c()) {
		sb.WriteRune(z.advance())
	}
	z.tag.Name = strings.ToLower(sb.String())
	switch z.c() {
	case eof:
		z.state = stateData
		return *z.tag, true
	case '/':
		z.advance()
		z.state = stateSelfClosingStartTag
		return Token{}, false
	case '>':
		z.advance()
		return z.finishTag()
	default:
		z.state = stateBeforeAttributeName
		return Token{}, false
	}
}

// finishTag emits the tag currently being built and, for a start tag
// naming a raw-text element, switches the tokenizer into raw-text mode.
func (z *Tokenizer) finishTag() (Token, bool) {
	tok := *z.tag
	z.tag = nil
	if tok.Type == StartTagToken && rawTextElements[tok.Name] {
		z.state = stateRawText
		z.rawTextTag = tok.Name
	} else {
		z.state = stateData
	}
	return tok, true
}

func (z *Tokenizer) beforeAttributeName() (Token, bool) {
	for isWhitespace(z.c()) {
		z.advance()
	}
	switch z.c() {
	case '/', '>', eof:
		z.state = stateAfterAttributeName
		return Token{}, false
	}
	z.curAttr = &Attribute{}
	z.state = stateAttributeName
	return Token{}, false
}

func (z *Tokenizer) attributeName() (Token, bool) {
	var sb strings.Builder
	for z.c() != eof && !isWhitespace(z.c()) && z.c() != '/' && z.c() != '>' && z.c() != '=' {
		sb.WriteRune(z.advance())
	}
	z.curAttr.Name = strings.ToLower(sb.String())
	if z.c() == '=' {
		z.advance()
		z.state = stateBeforeAttributeValue
		return Token{}, false
	}
	z.state = stateAfterAttributeName
	return Token{}, false
}

func (z *Tokenizer) afterAttributeName() (Token, bool) {
	for isWhitespace(z.c()) {
		z.advance()
	}
	if z.curAttr != nil {
		z.appendCurAttr()
	}
	switch z.c() {
	case eof:
		z.state = stateData
		return *z.tag, true
	case '/':
		z.advance()
		z.state = stateSelfClosingStartTag
		return Token{}, false
	case '>':
		z.advance()
		return z.finishTag()
	case '=':
		z.advance()
		z.curAttr = &Attribute{}
		z.state = stateBeforeAttributeValue
		return Token{}, false
	default:
		z.curAttr = &Attribute{}
		z.state = stateAttributeName
		return Token{}, false
	}
}

func (z *Tokenizer) appendCurAttr() {
	if z.curAttr.Name == "" {
		z.curAttr = nil
		return
	}
	if _, dup := z.tag.Attr(z.curAttr.Name); !dup {
		z.tag.Attrs = append(z.tag.Attrs, *z.curAttr)
	}
	z.curAttr = nil
}

func (z *Tokenizer) beforeAttributeValue() (Token, bool) {
	for isWhitespace(z.c()) {
		z.advance()
	}
	switch z.c() {
	case '"', '\'':
		z.quote = z.advance()
		z.state = stateAttributeValueQuoted
	default:
		z.state = stateAttributeValueUnquoted
	}
	return Token{}, false
}

func (z *Tokenizer) attributeValueQuoted() (Token, bool) {
	var sb strings.Builder
	for z.c() != eof && z.c() != z.quote {
		sb.WriteRune(z.advance())
	}
	z.curAttr.Value = sb.String()
	if z.c() == z.quote {
		z.advance()
	}
	z.appendCurAttr()
	z.state = stateAfterAttributeValueQuoted
	return Token{}, false
}

func (z *Tokenizer) attributeValueUnquoted() (Token, bool) {
	var sb strings.Builder
	for z.c() != eof && !isWhitespace(z.c()) && z.c() != '>' {
		sb.WriteRune(z.advance())
	}
	z.curAttr.Value = sb.String()
	z.appendCurAttr()
	z.state = stateBeforeAttributeName
	return Token{}, false
}

func (z *Tokenizer) afterAttributeValueQuoted() (Token, bool) {
	switch z.c() {
	case eof:
		z.state = stateData
		return *z.tag, true
	case '>':
		z.advance()
		return z.finishTag()
	case '/':
		z.advance()
		z.state = stateSelfClosingStartTag
		return Token{}, false
	default:
		if isWhitespace(z.c()) {
			z.state = stateBeforeAttributeName
			return Token{}, false
		}
		// missing whitespace before next attribute: reparse here anyway
		z.state = stateBeforeAttributeName
		return Token{}, false
	}
}

func (z *Tokenizer) selfClosingStartTag() (Token, bool) {
	z.tag.SelfClosing = true
	if z.c() == '>' {
		z.advance()
	}
	return z.finishTag()
}

func (z *Tokenizer) bogusComment() (Token, bool) {
	var sb strings.Builder
	for z.c() != eof && z.c() != '>' {
		sb.WriteRune(z.advance())
	}
	if z.c() == '>' {
		z.advance()
	}
	z.state = stateData
	return Token{Type: CommentToken, Data: sb.String()}, true
}

func (z *Tokenizer) markupDeclarationOpen() (Token, bool) {
	if z.remainingFoldedEquals("--") {
		z.pos += 2
		z.state = stateCommentStart
		z.tag = &Token{Type: CommentToken}
		return Token{}, false
	}
	if z.remainingFoldedEquals("doctype") {
		z.pos += len("doctype")
		z.state = stateBeforeDoctypeName
		z.tag = &Token{Type: DoctypeToken}
		return Token{}, false
	}
	if z.remainingFoldedEquals("[cdata[") {
		z.pos += len("[cdata[")
		z.state = stateCDataSection
		return Token{}, false
	}
	z.state = stateBogusComment
	return Token{}, false
}

func (z *Tokenizer) remainingFoldedEquals(s string) bool {
	if z.pos+len(s) > len(z.input) {
		return false
	}
	for i, r := range []rune(s) {
		if toLowerRune(z.input[z.pos+i]) != r {
			return false
		}
	}
	return true
}

func (z *Tokenizer) comment() (Token, bool) {
	var sb strings.Builder
	sb.WriteString(z.tag.Data)
	for {
		if z.c() == eof {
			z.tag.Data = sb.String()
			tok := *z.tag
			z.tag = nil
			z.state = stateData
			return tok, true
		}
		if z.c() == '-' && z.peek(1) == '-' && z.peek(2) == '>' {
			z.pos += 3
			z.tag.Data = sb.String()
			tok := *z.tag
			z.tag = nil
			z.state = stateData
			return tok, true
		}
		sb.WriteRune(z.advance())
	}
}

func (z *Tokenizer) doctype() (Token, bool) {
	for isWhitespace(z.c()) {
		z.advance()
	}
	var sb strings.Builder
	for z.c() != eof && z.c() != '>' {
		sb.WriteRune(z.advance())
	}
	fields := strings.Fields(sb.String())
	if len(fields) > 0 {
		z.tag.Name = strings.ToLower(fields[0])
	}
	if z.c() == '>' {
		z.advance()
	}
	tok := *z.tag
	z.tag = nil
	z.state = stateData
	return tok, true
}

func (z *Tokenizer) cdataSection() (Token, bool) {
	var sb strings.Builder
	for {
		if z.c() == eof {
			z.state = stateData
			return Token{Type: CharacterToken, Data: sb.String()}, true
		}
		if z.c() == ']' && z.peek(1) == ']' && z.peek(2) == '>' {
			z.pos += 3
			z.state = stateData
			return Token{Type: CharacterToken, Data: sb.String()}, true
		}
		sb.WriteRune(z.advance())
	}
}

// rawText consumes raw-text content (script/style/title/textarea bodies)
// up to and including the matching end tag, which is emitted as a
// separate EndTagToken on the following Next() call.
func (z *Tokenizer) rawText() (Token, bool) {
	var sb strings.Builder
	for {
		if z.c() == eof {
			z.state = stateData
			if sb.Len() == 0 {
				return Token{Type: EOFToken}, true
			}
			return Token{Type: CharacterToken, Data: sb.String()}, true
		}
		if z.c() == '<' && z.peek(1) == '/' && z.rawTextEndTagFollows() {
			if sb.Len() > 0 {
				z.state = stateRawTextEndTagOpen
				return Token{Type: CharacterToken, Data: sb.String()}, true
			}
			z.pos += 2
			return z.consumeRawTextEndTag()
		}
		sb.WriteRune(z.advance())
	}
}

func (z *Tokenizer) rawTextEndTagFollows() bool {
	i := z.pos + 2
	for _, r := range []rune(z.rawTextTag) {
		if i >= len(z.input) || toLowerRune(z.input[i]) != r {
			return false
		}
		i++
	}
	if i >= len(z.input) {
		return false
	}
	after := z.input[i]
	return after == '>' || isWhitespace(after) || after == '/'
}

func (z *Tokenizer) consumeRawTextEndTag() (Token, bool) {
	z.pos += len(z.rawTextTag)
	for z.c() != eof && z.c() != '>' {
		z.advance()
	}
	if z.c() == '>' {
		z.advance()
	}
	name := z.rawTextTag
	z.rawTextTag = ""
	z.state = stateData
	return Token{Type: EndTagToken, Name: name}, true
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isTagNameChar(r rune) bool {
	return r != eof && !isWhitespace(r) && r != '/' && r != '>'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
