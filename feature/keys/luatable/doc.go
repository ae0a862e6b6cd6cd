// Package luatable decodes Lua table constructors, as written by WoW
// SavedVariables, into a tagged variant.
//
// Decoding goes through the gopher-lua parser and walks the resulting AST;
// nothing is evaluated. Callers read fields through the fallible As*
// conversions and must not assume a field's type.
//
//	t, err := luatable.DecodeTable(`{ { unit = "Name-Realm", key_level = 12 } }`)
//	for _, entry := range t.Entries() {
//	    row, ok := entry.AsTable()
//	    ...
//	}
package luatable
