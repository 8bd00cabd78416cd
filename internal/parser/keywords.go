package parser

// Reserved words per language. Words listed here never enter identifier sets.
// C and C++ also carry the preprocessor directive names since the identifier
// pattern picks them up from lines like "#include".

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "_Bool", "_Complex", "_Imaginary",
	"include", "define", "undef", "ifdef", "ifndef", "endif", "elif", "pragma",
}

var cppKeywords = append(append([]string(nil), cKeywords...),
	"alignas", "alignof", "and", "bool", "catch", "class", "constexpr",
	"const_cast", "decltype", "delete", "dynamic_cast", "explicit", "export",
	"false", "final", "friend", "mutable", "namespace", "new", "noexcept",
	"not", "nullptr", "operator", "or", "override", "private", "protected",
	"public", "reinterpret_cast", "static_assert", "static_cast", "template",
	"this", "thread_local", "throw", "true", "try", "typeid", "typename",
	"using", "virtual", "wchar_t", "xor",
)

var csharpKeywords = []string{
	"abstract", "as", "async", "await", "base", "bool", "break", "byte",
	"case", "catch", "char", "checked", "class", "const", "continue",
	"decimal", "default", "delegate", "do", "double", "else", "enum", "event",
	"explicit", "extern", "false", "finally", "fixed", "float", "for",
	"foreach", "goto", "if", "implicit", "in", "int", "interface", "internal",
	"is", "lock", "long", "namespace", "new", "null", "object", "operator",
	"out", "override", "params", "private", "protected", "public", "readonly",
	"ref", "return", "sbyte", "sealed", "short", "sizeof", "stackalloc",
	"static", "string", "struct", "switch", "this", "throw", "true", "try",
	"typeof", "uint", "ulong", "unchecked", "unsafe", "ushort", "using", "var",
	"virtual", "void", "volatile", "while",
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var", "true", "false", "nil",
}

var javaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "false", "final", "finally", "float", "for", "goto", "if",
	"implements", "import", "instanceof", "int", "interface", "long",
	"native", "new", "null", "package", "private", "protected", "public",
	"record", "return", "short", "static", "strictfp", "super", "switch",
	"synchronized", "this", "throw", "throws", "transient", "true", "try",
	"var", "void", "volatile", "while", "yield",
}

var javascriptKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends",
	"false", "finally", "for", "function", "if", "import", "in", "instanceof",
	"let", "new", "null", "of", "return", "static", "super", "switch", "this",
	"throw", "true", "try", "typeof", "undefined", "var", "void", "while",
	"with", "yield",
}

var typescriptKeywords = append(append([]string(nil), javascriptKeywords...),
	"abstract", "any", "as", "boolean", "constructor", "declare", "enum",
	"implements", "interface", "keyof", "module", "namespace", "never",
	"number", "private", "protected", "public", "readonly", "string",
	"symbol", "type", "unknown",
)

var kotlinKeywords = []string{
	"as", "break", "by", "catch", "class", "constructor", "continue", "do",
	"else", "false", "finally", "for", "fun", "get", "if", "import", "in",
	"init", "interface", "is", "null", "object", "package", "return", "set",
	"super", "this", "throw", "true", "try", "typealias", "typeof", "val",
	"var", "when", "where", "while",
}

var phpKeywords = []string{
	"abstract", "and", "array", "as", "break", "callable", "case", "catch",
	"class", "clone", "const", "continue", "declare", "default", "do", "echo",
	"else", "elseif", "empty", "enddeclare", "endfor", "endforeach", "endif",
	"endswitch", "endwhile", "extends", "false", "final", "finally", "fn",
	"for", "foreach", "function", "global", "goto", "if", "implements",
	"include", "include_once", "instanceof", "insteadof", "interface",
	"isset", "list", "match", "namespace", "new", "null", "or", "print",
	"private", "protected", "public", "readonly", "require", "require_once",
	"return", "static", "switch", "throw", "trait", "true", "try", "unset",
	"use", "var", "while", "xor", "yield", "php",
}

var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"case", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is", "lambda",
	"match", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

var rubyKeywords = []string{
	"BEGIN", "END", "alias", "and", "begin", "break", "case", "class", "def",
	"defined", "do", "else", "elsif", "end", "ensure", "false", "for", "if",
	"in", "module", "next", "nil", "not", "or", "redo", "rescue", "retry",
	"return", "self", "super", "then", "true", "undef", "unless", "until",
	"when", "while", "yield",
}

var rustKeywords = []string{
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in", "let",
	"loop", "match", "mod", "move", "mut", "pub", "ref", "return", "self",
	"Self", "static", "struct", "super", "trait", "true", "type", "unsafe",
	"use", "where", "while",
}

var scalaKeywords = []string{
	"abstract", "case", "catch", "class", "def", "do", "else", "enum",
	"export", "extends", "false", "final", "finally", "for", "forSome",
	"given", "if", "implicit", "import", "lazy", "match", "new", "null",
	"object", "override", "package", "private", "protected", "return",
	"sealed", "super", "then", "this", "throw", "trait", "true", "try",
	"type", "using", "val", "var", "while", "with", "yield",
}
