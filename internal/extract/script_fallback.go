package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
)

// ScriptFields mines inline scripts for profile data to fill fields the
// selector pass left Unknown. Pages that hydrate client-side often park the
// profile object in a global before rendering it, so executing the inline
// scripts in a sandboxed VM and scanning the resulting globals recovers
// fields the static markup does not carry.
//
// Like Extract this performs no I/O and is deterministic for a given markup
// document. Scripts that need a real DOM simply fail and are ignored.
func ScriptFields(markup string, f Fields) Fields {
	if f.DisplayName != Unknown && f.Headline != Unknown && f.Location != Unknown && f.Summary != Unknown {
		return f
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return f
	}

	vm := goja.New()

	// Minimal browser shims; just enough for data-assignment scripts to run.
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{})
	vm.Set("console", map[string]interface{}{
		"log": func(call goja.FunctionCall) goja.Value {
			return nil
		},
		"error": func(call goja.FunctionCall) goja.Value {
			return nil
		},
	})

	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}
		if body := sel.Text(); body != "" {
			// Most page scripts fail without a full DOM; that's expected.
			_, _ = vm.RunString(body)
		}
	})

	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		obj, ok := vm.Get(key).Export().(map[string]interface{})
		if !ok {
			continue
		}
		f.DisplayName = pickGlobal(f.DisplayName, obj, "name", "displayName", "fullName")
		f.Headline = pickGlobal(f.Headline, obj, "headline", "tagline")
		f.Location = pickGlobal(f.Location, obj, "location", "geoLocation")
		f.Summary = pickGlobal(f.Summary, obj, "summary", "about")
	}

	return f
}

// pickGlobal fills a still-Unknown field from the first matching key that
// holds non-empty string data.
func pickGlobal(current string, obj map[string]interface{}, keys ...string) string {
	if current != Unknown {
		return current
	}
	for _, k := range keys {
		if v, ok := obj[k].(string); ok {
			if text := strings.TrimSpace(v); text != "" {
				return text
			}
		}
	}
	return Unknown
}

func isStandardGlobal(key string) bool {
	standards := map[string]bool{
		"window": true, "self": true, "document": true, "location": true, "console": true,
		"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
		"Date": true, "Math": true, "JSON": true, "RegExp": true, "Error": true,
		"Function": true, "parseInt": true, "parseFloat": true, "isNaN": true,
		"isFinite": true, "encodeURI": true, "decodeURI": true, "encodeURIComponent": true,
		"decodeURIComponent": true, "undefined": true, "NaN": true, "Infinity": true,
	}
	return standards[key]
}
