package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/courseguard/crosscheck/domain"
)

// Parser turns raw source into the parser-independent Node tree and a token
// stream, one tree-sitter front-end per language.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// ParseResult represents the result of parsing a submission.
type ParseResult struct {
	Root   *Node
	Source []byte
}

// Parse parses source code into the language-neutral tree. It returns an
// error for unsupported languages and for source with syntax errors; callers
// degrade to token/line-based analysis in that case.
func (p *Parser) Parse(ctx context.Context, lang domain.Language, source []byte) (*ParseResult, error) {
	spec := specFor(lang)
	if spec == nil {
		return nil, domain.NewUnsupportedLanguageError(string(lang))
	}

	tree, err := p.parseTree(ctx, spec, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax errors found in source code")
	}

	return &ParseResult{
		Root:   buildNode(spec, root, source),
		Source: source,
	}, nil
}

func (p *Parser) parseTree(ctx context.Context, spec *languageSpec, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(spec.grammar)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return tree, nil
}

// buildNode recursively converts a tree-sitter node into the neutral shape.
// Only named grammar nodes are kept; unmapped named types pass through with
// their raw type as the kind.
func buildNode(spec *languageSpec, tsNode *sitter.Node, source []byte) *Node {
	nodeType := tsNode.Type()

	node := &Node{
		Kind: kindFor(spec, nodeType),
		Location: Location{
			StartLine: int(tsNode.StartPoint().Row) + 1,
			StartCol:  int(tsNode.StartPoint().Column),
			EndLine:   int(tsNode.EndPoint().Row) + 1,
			EndCol:    int(tsNode.EndPoint().Column),
		},
	}

	switch node.Kind {
	case KindName:
		node.Name = tsNode.Content(source)
		return node
	case KindNumber, KindString:
		node.Literal = tsNode.Content(source)
		return node
	case KindBinOp, KindUnaryOp, KindBoolOp, KindCompare, KindAugAssign:
		node.Op = operatorOf(tsNode, source)
	}

	if field, ok := spec.nameField[nodeType]; ok {
		if nameNode := tsNode.ChildByFieldName(field); nameNode != nil {
			node.Name = trailingIdentifier(nameNode.Content(source))
		}
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		child := tsNode.NamedChild(i)
		if _, isComment := spec.comments[child.Type()]; isComment {
			continue
		}
		node.AddChild(buildNode(spec, child, source))
	}

	return node
}

func kindFor(spec *languageSpec, nodeType string) NodeKind {
	if kind, ok := spec.kinds[nodeType]; ok {
		return kind
	}
	return NodeKind(nodeType)
}

// operatorOf finds the first anonymous leaf under an operator node, which in
// tree-sitter grammars is the operator lexeme itself.
func operatorOf(tsNode *sitter.Node, source []byte) string {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if !child.IsNamed() && child.ChildCount() == 0 {
			return child.Content(source)
		}
	}
	return ""
}

// trailingIdentifier reduces a qualified target like `obj.helper` or
// `pkg.Func` to its final segment.
func trailingIdentifier(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.LastIndexAny(text, "."); idx >= 0 && idx+1 < len(text) {
		text = text[idx+1:]
	}
	// Drop any call arguments that leaked into the field content.
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		text = text[:idx]
	}
	return text
}

// TokenKind classifies lexed tokens.
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenIdentifier
	TokenNumber
	TokenString
	TokenComment
)

// Token is one lexeme with its position in the original source.
type Token struct {
	Kind      TokenKind
	Text      string
	Line      int // 1-based
	StartByte int
	EndByte   int
}

// Lex extracts the token stream for a submission. Unlike Parse, lexing
// tolerates syntax errors: tree-sitter still produces leaves under ERROR
// nodes, so a malformed file degrades instead of failing.
func (p *Parser) Lex(ctx context.Context, lang domain.Language, source []byte) ([]Token, error) {
	spec := specFor(lang)
	if spec == nil {
		return nil, domain.NewUnsupportedLanguageError(string(lang))
	}

	tree, err := p.parseTree(ctx, spec, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var tokens []Token
	collectTokens(spec, tree.RootNode(), source, &tokens)
	return tokens, nil
}

func collectTokens(spec *languageSpec, tsNode *sitter.Node, source []byte, out *[]Token) {
	nodeType := tsNode.Type()

	if _, ok := spec.comments[nodeType]; ok {
		*out = append(*out, token(TokenComment, tsNode, source))
		return
	}
	// Strings can be composite (prefix, content, end); emit one token.
	if _, ok := spec.strings[nodeType]; ok {
		*out = append(*out, token(TokenString, tsNode, source))
		return
	}

	if tsNode.ChildCount() == 0 {
		kind := TokenOther
		if _, ok := spec.identifiers[nodeType]; ok {
			kind = TokenIdentifier
		} else if _, ok := spec.numbers[nodeType]; ok {
			kind = TokenNumber
		}
		*out = append(*out, token(kind, tsNode, source))
		return
	}

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		collectTokens(spec, tsNode.Child(i), source, out)
	}
}

func token(kind TokenKind, tsNode *sitter.Node, source []byte) Token {
	return Token{
		Kind:      kind,
		Text:      tsNode.Content(source),
		Line:      int(tsNode.StartPoint().Row) + 1,
		StartByte: int(tsNode.StartByte()),
		EndByte:   int(tsNode.EndByte()),
	}
}
