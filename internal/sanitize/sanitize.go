// Package sanitize applies the optional apostrophe escaping some
// downstream consumers of the tax service require. It is off by default
// and never mutates the caller's bytes when disabled.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Strings doubles every apostrophe inside string values of the payload,
// recursing through nested objects and arrays. Non-string values and key
// names are left untouched.
func Strings(payload []byte) ([]byte, error) {
	out := payload
	var walkErr error

	var walk func(path string, value gjson.Result)
	walk = func(path string, value gjson.Result) {
		if walkErr != nil {
			return
		}
		switch {
		case value.IsObject():
			value.ForEach(func(key, child gjson.Result) bool {
				walk(joinPath(path, escapeKey(key.Str)), child)
				return walkErr == nil
			})
		case value.IsArray():
			index := 0
			value.ForEach(func(_, child gjson.Result) bool {
				walk(joinPath(path, fmt.Sprintf("%d", index)), child)
				index++
				return walkErr == nil
			})
		case value.Type == gjson.String:
			if strings.Contains(value.Str, "'") {
				escaped := strings.ReplaceAll(value.Str, "'", "''")
				out, walkErr = sjson.SetBytes(out, path, escaped)
			}
		}
	}

	walkRoot := gjson.ParseBytes(payload)
	walkRoot.ForEach(func(key, child gjson.Result) bool {
		walk(escapeKey(key.Str), child)
		return walkErr == nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to sanitize payload: %w", walkErr)
	}
	return out, nil
}

// escapeKey escapes gjson path metacharacters inside an object key so the
// path addresses the literal key. Pipes, queries, and leading modifier
// characters are all significant to the path syntax.
func escapeKey(key string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		".", `\.`,
		"*", `\*`,
		"?", `\?`,
		"|", `\|`,
		"#", `\#`,
		"@", `\@`,
	).Replace(key)
}

func joinPath(prefix, part string) string {
	if prefix == "" {
		return part
	}
	return prefix + "." + part
}
