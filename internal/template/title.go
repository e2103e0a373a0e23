package template

import (
	"regexp"
	"strings"
)

// ConfigFile is the project manifest whose window title is rewritten.
const ConfigFile = "conf.lua"

// The second group is the quoted value, which may contain Lua escapes.
var (
	windowTitlePattern = regexp.MustCompile(`(t\.window\.title\s*=\s*)("(?:[^"\\\n]|\\.)*")`)
	bareTitlePattern   = regexp.MustCompile(`(?m)^([ \t]*title[ \t]*=[ \t]*)("(?:[^"\\\n]|\\.)*")`)
)

var luaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// SubstituteTitle replaces the value of the first window title assignment
// in content with name. `t.window.title = "..."` is preferred; a bare
// `title = "..."` line is used when the former is absent. It reports
// whether a substitution happened; when it did not, content is returned
// as is.
func SubstituteTitle(content []byte, name string) ([]byte, bool) {
	loc := windowTitlePattern.FindSubmatchIndex(content)
	if loc == nil {
		loc = bareTitlePattern.FindSubmatchIndex(content)
	}
	if loc == nil {
		return content, false
	}

	start, end := loc[4], loc[5]
	quoted := `"` + luaEscaper.Replace(name) + `"`

	out := make([]byte, 0, len(content)+len(quoted))
	out = append(out, content[:start]...)
	out = append(out, quoted...)
	out = append(out, content[end:]...)
	return out, true
}
