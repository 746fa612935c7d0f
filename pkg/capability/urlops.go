package capability

import (
	"net/url"

	"github.com/dop251/goja"
)

// URLPackage provides URL parsing and encoding helpers under the url
// namespace.
func URLPackage() Package {
	return Package{
		Namespace:   "url",
		Description: "URL parsing and encoding helpers",
		Repository:  "https://github.com/cmccomb/pastrami/tree/main/pkg/capability",
		table: []Function{
			{Name: "encode", Impl: urlEncode},
			{Name: "decode", Impl: urlDecode},
			{Name: "scheme", Impl: urlScheme},
			{Name: "host", Impl: urlHost},
			{Name: "path", Impl: urlPath},
			{Name: "query", Impl: urlQuery},
			{Name: "join", Impl: urlJoin},
		},
	}
}

func parseURL(rt *goja.Runtime, name, raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(rt.NewTypeError("%s: invalid URL %q: %v", name, raw, err))
	}
	return u
}

func urlEncode(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::encode", 1)
	return rt.ToValue(url.QueryEscape(strArg(rt, call, "url::encode", 0)))
}

func urlDecode(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::decode", 1)
	s, err := url.QueryUnescape(strArg(rt, call, "url::decode", 0))
	if err != nil {
		throwErr(rt, err)
	}
	return rt.ToValue(s)
}

func urlScheme(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::scheme", 1)
	return rt.ToValue(parseURL(rt, "url::scheme", strArg(rt, call, "url::scheme", 0)).Scheme)
}

func urlHost(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::host", 1)
	return rt.ToValue(parseURL(rt, "url::host", strArg(rt, call, "url::host", 0)).Host)
}

func urlPath(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::path", 1)
	return rt.ToValue(parseURL(rt, "url::path", strArg(rt, call, "url::path", 0)).Path)
}

func urlQuery(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::query", 1)
	return rt.ToValue(parseURL(rt, "url::query", strArg(rt, call, "url::query", 0)).RawQuery)
}

func urlJoin(rt *goja.Runtime, call goja.FunctionCall) goja.Value {
	argCount(rt, call, "url::join", 2)
	base := parseURL(rt, "url::join", strArg(rt, call, "url::join", 0))
	joined, err := base.Parse(strArg(rt, call, "url::join", 1))
	if err != nil {
		throwErr(rt, err)
	}
	return rt.ToValue(joined.String())
}
