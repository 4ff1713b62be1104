package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/courseguard/crosscheck/domain"
)

// languageSpec describes one tree-sitter front-end: the grammar itself plus
// the tables that normalize its node types into the language-neutral shape.
type languageSpec struct {
	grammar *sitter.Language

	// kinds maps grammar node types to language-neutral kinds.
	kinds map[string]NodeKind

	// nameField maps definition/call node types to the field holding their name.
	nameField map[string]string

	comments    map[string]struct{}
	strings     map[string]struct{}
	numbers     map[string]struct{}
	identifiers map[string]struct{}
}

func set(types ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

var languageSpecs = map[domain.Language]*languageSpec{
	domain.LanguagePython: {
		grammar: python.GetLanguage(),
		kinds: map[string]NodeKind{
			"module":                KindModule,
			"function_definition":   KindFunction,
			"class_definition":      KindClass,
			"if_statement":          KindIf,
			"elif_clause":           KindElif,
			"else_clause":           KindElse,
			"for_statement":         KindFor,
			"while_statement":       KindWhile,
			"try_statement":         KindTry,
			"except_clause":         KindExcept,
			"finally_clause":        KindFinally,
			"with_statement":        KindWith,
			"match_statement":       KindSwitch,
			"case_clause":           KindCase,
			"return_statement":      KindReturn,
			"break_statement":       KindBreak,
			"continue_statement":    KindContinue,
			"raise_statement":       KindRaise,
			"assert_statement":      KindAssert,
			"assignment":            KindAssign,
			"augmented_assignment":  KindAugAssign,
			"binary_operator":       KindBinOp,
			"unary_operator":        KindUnaryOp,
			"boolean_operator":      KindBoolOp,
			"not_operator":          KindUnaryOp,
			"comparison_operator":   KindCompare,
			"call":                  KindCall,
			"lambda":                KindLambda,
			"attribute":             KindAttribute,
			"subscript":             KindSubscript,
			"identifier":            KindName,
			"integer":               KindNumber,
			"float":                 KindNumber,
			"string":                KindString,
			"list":                  KindList,
			"dictionary":            KindDict,
			"tuple":                 KindTuple,
			"import_statement":      KindImport,
			"import_from_statement": KindImport,
			"block":                 KindBlock,
			"expression_statement":  KindExpr,
			"pass_statement":        KindPass,
		},
		nameField: map[string]string{
			"function_definition": "name",
			"class_definition":    "name",
			"call":                "function",
		},
		comments:    set("comment"),
		strings:     set("string", "concatenated_string"),
		numbers:     set("integer", "float"),
		identifiers: set("identifier"),
	},
	domain.LanguageJavaScript: {
		grammar: javascript.GetLanguage(),
		kinds: map[string]NodeKind{
			"program":                          KindModule,
			"function_declaration":             KindFunction,
			"function_expression":              KindFunction,
			"arrow_function":                   KindLambda,
			"method_definition":                KindFunction,
			"generator_function_declaration":   KindFunction,
			"class_declaration":                KindClass,
			"if_statement":                     KindIf,
			"else_clause":                      KindElse,
			"for_statement":                    KindFor,
			"for_in_statement":                 KindFor,
			"while_statement":                  KindWhile,
			"do_statement":                     KindWhile,
			"try_statement":                    KindTry,
			"catch_clause":                     KindExcept,
			"finally_clause":                   KindFinally,
			"switch_statement":                 KindSwitch,
			"switch_case":                      KindCase,
			"switch_default":                   KindCase,
			"return_statement":                 KindReturn,
			"break_statement":                  KindBreak,
			"continue_statement":               KindContinue,
			"throw_statement":                  KindRaise,
			"variable_declaration":             KindAssign,
			"lexical_declaration":              KindAssign,
			"assignment_expression":            KindAssign,
			"augmented_assignment_expression":  KindAugAssign,
			"binary_expression":                KindBinOp,
			"unary_expression":                 KindUnaryOp,
			"ternary_expression":               KindIf,
			"call_expression":                  KindCall,
			"member_expression":                KindAttribute,
			"subscript_expression":             KindSubscript,
			"identifier":                       KindName,
			"property_identifier":              KindName,
			"number":                           KindNumber,
			"string":                           KindString,
			"template_string":                  KindString,
			"array":                            KindList,
			"object":                           KindDict,
			"import_statement":                 KindImport,
			"statement_block":                  KindBlock,
			"expression_statement":             KindExpr,
		},
		nameField: map[string]string{
			"function_declaration":           "name",
			"generator_function_declaration": "name",
			"method_definition":              "name",
			"class_declaration":              "name",
			"call_expression":                "function",
		},
		comments:    set("comment"),
		strings:     set("string", "template_string"),
		numbers:     set("number"),
		identifiers: set("identifier", "property_identifier", "shorthand_property_identifier"),
	},
	domain.LanguageJava: {
		grammar: java.GetLanguage(),
		kinds: map[string]NodeKind{
			"program":                        KindModule,
			"method_declaration":             KindFunction,
			"constructor_declaration":        KindFunction,
			"class_declaration":              KindClass,
			"interface_declaration":          KindClass,
			"if_statement":                   KindIf,
			"for_statement":                  KindFor,
			"enhanced_for_statement":         KindFor,
			"while_statement":                KindWhile,
			"do_statement":                   KindWhile,
			"try_statement":                  KindTry,
			"try_with_resources_statement":   KindTry,
			"catch_clause":                   KindExcept,
			"finally_clause":                 KindFinally,
			"switch_expression":              KindSwitch,
			"switch_block_statement_group":   KindCase,
			"switch_rule":                    KindCase,
			"return_statement":               KindReturn,
			"break_statement":                KindBreak,
			"continue_statement":             KindContinue,
			"throw_statement":                KindRaise,
			"assert_statement":               KindAssert,
			"local_variable_declaration":     KindAssign,
			"assignment_expression":          KindAssign,
			"binary_expression":              KindBinOp,
			"unary_expression":               KindUnaryOp,
			"ternary_expression":             KindIf,
			"method_invocation":              KindCall,
			"object_creation_expression":     KindCall,
			"field_access":                   KindAttribute,
			"array_access":                   KindSubscript,
			"lambda_expression":              KindLambda,
			"identifier":                     KindName,
			"decimal_integer_literal":        KindNumber,
			"hex_integer_literal":            KindNumber,
			"decimal_floating_point_literal": KindNumber,
			"string_literal":                 KindString,
			"array_initializer":              KindList,
			"import_declaration":             KindImport,
			"block":                          KindBlock,
			"expression_statement":           KindExpr,
		},
		nameField: map[string]string{
			"method_declaration":      "name",
			"constructor_declaration": "name",
			"class_declaration":       "name",
			"interface_declaration":   "name",
			"method_invocation":       "name",
		},
		comments: set("line_comment", "block_comment"),
		strings:  set("string_literal", "character_literal"),
		numbers: set("decimal_integer_literal", "hex_integer_literal",
			"octal_integer_literal", "binary_integer_literal",
			"decimal_floating_point_literal", "hex_floating_point_literal"),
		identifiers: set("identifier", "type_identifier"),
	},
	domain.LanguageGo: {
		grammar: golang.GetLanguage(),
		kinds: map[string]NodeKind{
			"source_file":                 KindModule,
			"function_declaration":        KindFunction,
			"method_declaration":          KindFunction,
			"func_literal":                KindLambda,
			"type_declaration":            KindClass,
			"if_statement":                KindIf,
			"for_statement":               KindFor,
			"expression_switch_statement": KindSwitch,
			"type_switch_statement":       KindSwitch,
			"select_statement":            KindSwitch,
			"expression_case":             KindCase,
			"type_case":                   KindCase,
			"default_case":                KindCase,
			"communication_case":          KindCase,
			"return_statement":            KindReturn,
			"break_statement":             KindBreak,
			"continue_statement":          KindContinue,
			"go_statement":                KindExpr,
			"defer_statement":             KindFinally,
			"assignment_statement":        KindAssign,
			"short_var_declaration":       KindAssign,
			"var_declaration":             KindAssign,
			"const_declaration":           KindAssign,
			"binary_expression":           KindBinOp,
			"unary_expression":            KindUnaryOp,
			"call_expression":             KindCall,
			"selector_expression":         KindAttribute,
			"index_expression":            KindSubscript,
			"identifier":                  KindName,
			"field_identifier":            KindName,
			"int_literal":                 KindNumber,
			"float_literal":               KindNumber,
			"interpreted_string_literal":  KindString,
			"raw_string_literal":          KindString,
			"composite_literal":           KindList,
			"import_declaration":          KindImport,
			"block":                       KindBlock,
			"expression_statement":        KindExpr,
		},
		nameField: map[string]string{
			"function_declaration": "name",
			"method_declaration":   "name",
			"call_expression":      "function",
		},
		comments: set("comment"),
		strings:  set("interpreted_string_literal", "raw_string_literal", "rune_literal"),
		numbers:  set("int_literal", "float_literal", "imaginary_literal"),
		identifiers: set("identifier", "field_identifier", "package_identifier",
			"type_identifier"),
	},
}

// specFor returns the front-end spec for a language, nil if unsupported.
func specFor(lang domain.Language) *languageSpec {
	return languageSpecs[lang]
}

// Supported reports whether a language has a registered front-end.
func Supported(lang domain.Language) bool {
	return specFor(lang) != nil
}
