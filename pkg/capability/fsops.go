package capability

import (
	"os"

	"github.com/dop251/goja"
)

// FSPackage provides filesystem helpers under the fs namespace.
func FSPackage() Package {
	return Package{
		Namespace:   "fs",
		Description: "Filesystem access helpers",
		Repository:  "https://github.com/cmccomb/pastrami/tree/main/pkg/capability",
		table: []Function{
			{Name: "read_string", Impl: fsReadString},
			{Name: "write", Impl: fsWrite},
			{Name: "append", Impl: fsAppend},
			{Name: "exists", Impl: fsExists},
			{Name: "list_dir", Impl: fsListDir},
		},
	}
}

func fsReadString(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "fs::read_string", 1)
	path := strArg(rt, call, "fs::read_string", 0)
	data, err := os.ReadFile(path)
	if err != nil {
		throwErr(rt, err)
	}
	return rt.ToValue(string(data))
}

func fsWrite(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "fs::write", 2)
	path := strArg(rt, call, "fs::write", 0)
	text := strArg(rt, call, "fs::write", 1)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		throwErr(rt, err)
	}
	return goja.Undefined()
}

func fsAppend(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "fs::append", 2)
	path := strArg(rt, call, "fs::append", 0)
	text := strArg(rt, call, "fs::append", 1)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		throwErr(rt, err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		throwErr(rt, err)
	}
	return goja.Undefined()
}

func fsExists(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "fs::exists", 1)
	path := strArg(rt, call, "fs::exists", 0)
	_, err := os.Stat(path)
	return rt.ToValue(err == nil)
}

func fsListDir(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "fs::list_dir", 1)
	path := strArg(rt, call, "fs::list_dir", 0)
	entries, err := os.ReadDir(path)
	if err != nil {
		throwErr(rt, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return rt.ToValue(names)
}
