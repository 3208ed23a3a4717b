package csharp

import "github.com/cmmoran/creatorgen/internal/model"

// keywords maps C# predefined type keywords to whether they are value types.
var keywords = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "char": true,
	"decimal": true, "double": true, "float": true,
	"int": true, "uint": true, "long": true, "ulong": true,
	"short": true, "ushort": true, "nint": true, "nuint": true,
	"string": false, "object": false, "dynamic": false,
}

// systemAliases are framework types that display as their keyword.
var systemAliases = map[string]string{
	"System.Boolean": "bool", "System.Byte": "byte", "System.SByte": "sbyte",
	"System.Char": "char", "System.Decimal": "decimal", "System.Double": "double",
	"System.Single": "float", "System.Int32": "int", "System.UInt32": "uint",
	"System.Int64": "long", "System.UInt64": "ulong", "System.Int16": "short",
	"System.UInt16": "ushort", "System.IntPtr": "nint", "System.UIntPtr": "nuint",
	"System.String": "string", "System.Object": "object",
}

// systemValueTypes are framework structs that keep their namespace.
var systemValueTypes = []model.TypeRef{
	{Name: "Guid", Namespace: "System"},
	{Name: "DateTime", Namespace: "System"},
	{Name: "DateTimeOffset", Namespace: "System"},
	{Name: "DateOnly", Namespace: "System"},
	{Name: "TimeOnly", Namespace: "System"},
	{Name: "TimeSpan", Namespace: "System"},
	{Name: "Half", Namespace: "System"},
	{Name: "Index", Namespace: "System"},
	{Name: "Range", Namespace: "System"},
	{Name: "Nullable", Namespace: "System"},
	{Name: "CancellationToken", Namespace: "System.Threading"},
	{Name: "ValueTask", Namespace: "System.Threading.Tasks"},
}

// entry is a resolved type name.
type entry struct {
	ref    model.TypeRef
	value  bool
	str    bool
	symbol *typeSymbol // nil for framework and marker types
}

func keywordEntry(kw string) entry {
	return entry{
		ref:   model.TypeRef{Name: kw, Syntax: kw, Kind: model.KindKeyword},
		value: keywords[kw],
		str:   kw == "string",
	}
}

func builtins(marker model.TypeRef) map[string]entry {
	m := make(map[string]entry, len(systemAliases)+len(systemValueTypes)+1)
	for full, kw := range systemAliases {
		m[full] = keywordEntry(kw)
	}
	for _, ref := range systemValueTypes {
		ref.Kind = model.KindStruct
		m[ref.FullName()] = entry{ref: ref, value: true}
	}
	if !marker.IsZero() {
		marker.Kind = model.KindClass
		m[marker.FullName()] = entry{ref: marker}
	}
	return m
}
